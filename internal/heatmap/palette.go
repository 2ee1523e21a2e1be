package heatmap

import (
	"image/color"
	"math"
)

// Scale bounds for the NDVI color ramp. Values outside are clamped to the
// ramp ends; NaN renders as blank.
const (
	ScaleMin = 0.0
	ScaleMax = 0.9
)

// rampStop anchors a color at a position in [0, 1] along the ramp.
type rampStop struct {
	pos float64
	c   color.RGBA
}

// Yellow-to-green ramp, pale yellow for sparse vegetation through deep green
// for dense canopy.
var ramp = []rampStop{
	{0.00, color.RGBA{255, 255, 229, 255}},
	{0.25, color.RGBA{217, 240, 163, 255}},
	{0.50, color.RGBA{120, 198, 121, 255}},
	{0.75, color.RGBA{35, 132, 67, 255}},
	{1.00, color.RGBA{0, 69, 41, 255}},
}

// Blank marks cells with no defined NDVI value.
var Blank = color.RGBA{236, 236, 236, 255}

// colorAt maps an NDVI value onto the ramp.
func colorAt(v float64) color.RGBA {
	if math.IsNaN(v) {
		return Blank
	}
	t := (v - ScaleMin) / (ScaleMax - ScaleMin)
	if t <= 0 {
		return ramp[0].c
	}
	if t >= 1 {
		return ramp[len(ramp)-1].c
	}
	for i := 1; i < len(ramp); i++ {
		if t > ramp[i].pos {
			continue
		}
		lo, hi := ramp[i-1], ramp[i]
		f := (t - lo.pos) / (hi.pos - lo.pos)
		return lerp(lo.c, hi.c, f)
	}
	return ramp[len(ramp)-1].c
}

func lerp(a, b color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(float64(a.R) + f*(float64(b.R)-float64(a.R)))),
		G: uint8(math.Round(float64(a.G) + f*(float64(b.G)-float64(a.G)))),
		B: uint8(math.Round(float64(a.B) + f*(float64(b.B)-float64(a.B)))),
		A: 255,
	}
}
