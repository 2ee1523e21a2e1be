// Package analysis derives vegetation indices from spectral records. Records
// are never mutated; indices are computed on demand and keyed by plot.
package analysis

import (
	"math"

	"fieldspectra/internal/models"
)

// PlotIndex is one plot's derived vegetation indices. An index is NaN when
// its denominator is exactly zero.
type PlotIndex struct {
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	PlotID string  `json:"plot_id"`
	NDVI   float64 `json:"ndvi"`
	NDRE   float64 `json:"ndre"`
}

// NDVI computes (nir - red) / (nir + red), NaN on a zero denominator.
func NDVI(red, nir float64) float64 {
	return normalizedDifference(nir, red)
}

// NDRE computes the red-edge analogue (nir - redEdge) / (nir + redEdge),
// more sensitive than NDVI in dense canopy.
func NDRE(redEdge, nir float64) float64 {
	return normalizedDifference(nir, redEdge)
}

func normalizedDifference(a, b float64) float64 {
	denom := a + b
	if denom == 0 {
		return math.NaN()
	}
	return (a - b) / denom
}

// Compute derives indices for every record, preserving input order.
func Compute(records []models.SpectralRecord) []PlotIndex {
	results := make([]PlotIndex, 0, len(records))
	for i := range records {
		rec := &records[i]
		results = append(results, PlotIndex{
			Row:    rec.Row,
			Col:    rec.Col,
			PlotID: rec.PlotID,
			NDVI:   NDVI(rec.Red665, rec.NIR842),
			NDRE:   NDRE(rec.RedEdge705, rec.NIR842),
		})
	}
	return results
}

// Stats aggregates NDVI over a set of plots. Undefined (NaN) values are
// counted but excluded from Mean, Min and Max; with no valid plots those
// three are NaN.
type Stats struct {
	Valid     int
	Undefined int
	Mean      float64
	Min       float64
	Max       float64
}

// Summarize computes aggregate NDVI statistics.
func Summarize(results []PlotIndex) Stats {
	st := Stats{Mean: math.NaN(), Min: math.NaN(), Max: math.NaN()}
	var sum float64
	for _, p := range results {
		if math.IsNaN(p.NDVI) {
			st.Undefined++
			continue
		}
		if st.Valid == 0 {
			st.Min, st.Max = p.NDVI, p.NDVI
		} else {
			if p.NDVI < st.Min {
				st.Min = p.NDVI
			}
			if p.NDVI > st.Max {
				st.Max = p.NDVI
			}
		}
		sum += p.NDVI
		st.Valid++
	}
	if st.Valid > 0 {
		st.Mean = sum / float64(st.Valid)
	}
	return st
}

// StressThreshold is the NDVI level below which a plot is flagged as
// potentially stressed.
const StressThreshold = 0.30

// StressedPlots lists plot IDs with NDVI below threshold, in input order.
// Undefined values never qualify.
func StressedPlots(results []PlotIndex, threshold float64) []string {
	var ids []string
	for _, p := range results {
		if !math.IsNaN(p.NDVI) && p.NDVI < threshold {
			ids = append(ids, p.PlotID)
		}
	}
	return ids
}
