package models

import "fmt"

// SpectralRecord is one plot's simulated multispectral observation.
// Band fields carry their nominal center wavelength in nanometres, matching
// the dataset column names. Values are fractional reflectance, nominally in
// [0, 1]; a thin-cloud perturbation may push individual bands slightly past
// their clamp ranges.
type SpectralRecord struct {
	PlotID     string
	Row        int
	Col        int
	Blue480    float64
	Green560   float64
	Red665     float64
	RedEdge705 float64
	RedEdge740 float64
	NIR842     float64
	NIR2865    float64
	SWIR1610   float64
	SWIR2190   float64
}

// PlotID returns the canonical plot identifier for a zero-based grid cell,
// e.g. (0, 0) -> "R001C001".
func PlotID(row, col int) string {
	return fmt.Sprintf("R%03dC%03d", row+1, col+1)
}

// Bands returns the nine reflectance values in dataset column order.
func (r *SpectralRecord) Bands() [9]float64 {
	return [9]float64{
		r.Blue480, r.Green560, r.Red665,
		r.RedEdge705, r.RedEdge740,
		r.NIR842, r.NIR2865,
		r.SWIR1610, r.SWIR2190,
	}
}
