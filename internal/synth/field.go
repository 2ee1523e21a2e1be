package synth

import (
	"math"
	"math/rand/v2"
)

// StressPocket is a Gaussian region of elevated simulated plant stress,
// centered at fractional grid coordinates with spread sigma2 (the square of
// the pocket radius in rows).
type StressPocket struct {
	CenterRow float64
	CenterCol float64
	Sigma2    float64
}

// defaultPockets places two stress pockets scaled to the grid: a larger one
// in the southeast quadrant and a tighter one in the northwest.
func defaultPockets(rows, cols int) []StressPocket {
	fr, fc := float64(rows), float64(cols)
	return []StressPocket{
		{CenterRow: fr * 0.65, CenterCol: fc * 0.68, Sigma2: (fr * 0.20) * (fr * 0.20)},
		{CenterRow: fr * 0.30, CenterCol: fc * 0.25, Sigma2: (fr * 0.18) * (fr * 0.18)},
	}
}

const maxStress = 1.6

// stressAt sums the Gaussian contribution of every pocket at cell (r, c).
func stressAt(pockets []StressPocket, r, c int) float64 {
	var stress float64
	for _, p := range pockets {
		dr := float64(r) - p.CenterRow
		dc := float64(c) - p.CenterCol
		stress += math.Exp(-(dr*dr + dc*dc) / (2 * p.Sigma2))
	}
	return clamp(stress, 0, maxStress)
}

// fertilityAt is a deterministic northwest-to-southeast soil fertility
// gradient, highest in the top-left corner of the grid.
func fertilityAt(rows, cols, r, c int) float64 {
	return 0.15*(1-float64(r)/float64(rows)) + 0.05*(float64(c)/float64(cols))
}

// columnBias draws one multiplicative striping factor per column, simulating
// fixed sensor banding. The same factor applies to every row of a column, so
// the vector is drawn once before the cell loop.
func columnBias(rng *rand.Rand, cols int) []float64 {
	bias := make([]float64, cols)
	for c := range bias {
		bias[c] = gauss(rng, 1.0, 0.01)
	}
	return bias
}

// rowGradient is a smooth sinusoidal illumination variation along rows.
// It consumes no randomness.
func rowGradient(rows int) []float64 {
	grad := make([]float64, rows)
	for r := range grad {
		grad[r] = 1.0 + 0.04*math.Sin(float64(r)/11.0)
	}
	return grad
}
