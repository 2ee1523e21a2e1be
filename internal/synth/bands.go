package synth

import (
	"math/rand/v2"

	"fieldspectra/internal/models"
)

// cellFields are the three scalar field values driving band synthesis for
// one cell.
type cellFields struct {
	stress       float64
	fertility    float64
	illumination float64
}

// synthesizeBands fills rec's nine reflectance bands from the cell's field
// values.
//
// Draw order is a contract, not an implementation detail: target NDVI,
// reflectance split, NIR noise, red noise, then blue, green, red_edge_705,
// red_edge_740, nir2_865, swir_1610, swir_2190, and finally the cloud roll.
// Reordering any draw changes every subsequent cell for a given seed.
func synthesizeBands(rng *rand.Rand, f cellFields, cloudProb float64, rec *models.SpectralRecord) {
	// Healthy vegetation sits near 0.70; fertility raises it, stress pulls
	// it down. Used only to correlate the bands, never persisted.
	targetNDVI := clamp(0.70+f.fertility-0.40*f.stress+gauss(rng, 0, 0.02), 0.05, 0.92)

	totalReflectance := f.illumination * uniform(rng, 0.42, 0.80)
	nir := (targetNDVI + 1.0) * totalReflectance / 2.0
	red := totalReflectance - nir

	nir = clamp(nir+gauss(rng, 0, 0.006), 0.01, 0.95)
	red = clamp(red+gauss(rng, 0, 0.006), 0.01, 0.95)

	blue := clamp(0.04+0.07*(1.1-targetNDVI)+gauss(rng, 0, 0.006), 0.02, 0.22)
	green := clamp(0.20+0.12*(0.9-f.stress)+gauss(rng, 0, 0.01), 0.12, 0.42)
	redEdge := clamp(0.18+0.40*targetNDVI+gauss(rng, 0, 0.008), 0.10, 0.70)
	redEdge2 := clamp(redEdge+0.05*(targetNDVI-0.5)+gauss(rng, 0, 0.006), 0.10, 0.75)
	nir2 := clamp(nir+gauss(rng, 0, 0.004)+0.02*(1.0-f.stress), 0.05, 0.95)

	swir1 := clamp(0.22+0.28*f.stress+gauss(rng, 0, 0.01), 0.10, 0.70)
	swir2 := clamp(swir1+0.05*f.stress+gauss(rng, 0, 0.01), 0.10, 0.75)

	// Occasional thin cloud: brighten the visible bands, mute NIR. Applied
	// after clamping and deliberately not re-clamped, so affected cells can
	// sit slightly outside the nominal ranges. The roll is drawn even when
	// cloudProb is zero to keep the stream position fixed.
	if rng.Float64() < cloudProb {
		factorVis := uniform(rng, 1.05, 1.12)
		factorNIR := uniform(rng, 0.90, 0.96)
		blue *= factorVis
		green *= factorVis
		red *= factorVis
		redEdge *= factorVis
		redEdge2 *= factorVis
		nir *= factorNIR
		nir2 *= factorNIR
		swir1 *= factorVis * 0.9
		swir2 *= factorVis * 0.9
	}

	rec.Blue480 = blue
	rec.Green560 = green
	rec.Red665 = red
	rec.RedEdge705 = redEdge
	rec.RedEdge740 = redEdge2
	rec.NIR842 = nir
	rec.NIR2865 = nir2
	rec.SWIR1610 = swir1
	rec.SWIR2190 = swir2
}
