// Package api serves a generated field over HTTP: the NDVI table as JSON,
// the rendered heatmap, health and Prometheus metrics. The synthesis core
// stays network-free; this is host-program plumbing around its output.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fieldspectra/internal/analysis"
	"fieldspectra/internal/heatmap"
	"fieldspectra/internal/metrics"
	"fieldspectra/internal/models"
)

type Server struct {
	port    string
	rows    int
	cols    int
	seed    int64
	results []analysis.PlotIndex
	stats   analysis.Stats
}

// NewServer computes the index table once and serves it.
func NewServer(records []models.SpectralRecord, rows, cols int, seed int64, port string) *Server {
	results := analysis.Compute(records)
	return &Server{
		port:    port,
		rows:    rows,
		cols:    cols,
		seed:    seed,
		results: results,
		stats:   analysis.Summarize(results),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.instrument("/health", s.handleHealth))
	mux.HandleFunc("/api/field", s.instrument("/api/field", s.handleField))
	mux.HandleFunc("/api/stats", s.instrument("/api/stats", s.handleStats))
	mux.HandleFunc("/heatmap.png", s.instrument("/heatmap.png", s.handleHeatmap))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// statusRecorder captures the response code for the request counter.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(path string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		metrics.HTTPRequests.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"plots":  len(s.results),
	})
}

// fieldResponse is the JSON shape for /api/field. Undefined NDVI values are
// transported as null since JSON has no NaN.
type fieldResponse struct {
	Rows  int            `json:"rows"`
	Cols  int            `json:"cols"`
	Seed  int64          `json:"seed"`
	Stats statsResponse  `json:"stats"`
	Plots []plotResponse `json:"plots"`
}

type plotResponse struct {
	PlotID string   `json:"plot_id"`
	Row    int      `json:"row"`
	Col    int      `json:"col"`
	NDVI   *float64 `json:"ndvi"`
	NDRE   *float64 `json:"ndre"`
}

type statsResponse struct {
	Valid     int      `json:"valid"`
	Undefined int      `json:"undefined"`
	Mean      *float64 `json:"mean"`
	Min       *float64 `json:"min"`
	Max       *float64 `json:"max"`
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func (s *Server) statsJSON() statsResponse {
	return statsResponse{
		Valid:     s.stats.Valid,
		Undefined: s.stats.Undefined,
		Mean:      nullable(s.stats.Mean),
		Min:       nullable(s.stats.Min),
		Max:       nullable(s.stats.Max),
	}
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	resp := fieldResponse{
		Rows:  s.rows,
		Cols:  s.cols,
		Seed:  s.seed,
		Stats: s.statsJSON(),
		Plots: make([]plotResponse, 0, len(s.results)),
	}
	for _, p := range s.results {
		resp.Plots = append(resp.Plots, plotResponse{
			PlotID: p.PlotID,
			Row:    p.Row,
			Col:    p.Col,
			NDVI:   nullable(p.NDVI),
			NDRE:   nullable(p.NDRE),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("encode field response: %v", err)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.statsJSON())
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if err := heatmap.EncodePNG(w, s.results, s.rows, s.cols); err != nil {
		log.Printf("render heatmap: %v", err)
		http.Error(w, fmt.Sprintf("render heatmap: %v", err), http.StatusInternalServerError)
		return
	}
	metrics.HeatmapsRendered.Inc()
}
