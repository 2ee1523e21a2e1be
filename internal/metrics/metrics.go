package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GridsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fieldspectra_grids_generated_total",
			Help: "Total synthetic grids generated",
		},
	)

	RecordsPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldspectra_records_persisted_total",
			Help: "Total spectral records written, by sink",
		},
		[]string{"sink"},
	)

	HeatmapsRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fieldspectra_heatmaps_rendered_total",
			Help: "Total NDVI heatmaps rendered",
		},
	)

	GenerateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fieldspectra_generate_duration_seconds",
			Help:    "Grid generation wall time in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldspectra_http_requests_total",
			Help: "Total HTTP requests served, by path and status",
		},
		[]string{"path", "status"},
	)
)
