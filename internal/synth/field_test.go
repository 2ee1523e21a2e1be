package synth

import (
	"math"
	"testing"
)

func TestStressField(t *testing.T) {
	pockets := defaultPockets(100, 100)
	if len(pockets) != 2 {
		t.Fatalf("len(pockets) = %d, want 2", len(pockets))
	}

	// Near a pocket center the field is dominated by that pocket; far from
	// both it decays towards zero.
	atCenter := stressAt(pockets, 65, 68)
	if atCenter < 0.9 || atCenter > maxStress {
		t.Errorf("stress at pocket center = %f, want near 1", atCenter)
	}
	atCorner := stressAt(pockets, 99, 0)
	if atCorner >= atCenter {
		t.Errorf("stress at far corner (%f) not below pocket center (%f)", atCorner, atCenter)
	}
	for r := 0; r < 100; r += 7 {
		for c := 0; c < 100; c += 7 {
			if s := stressAt(pockets, r, c); s < 0 || s > maxStress {
				t.Fatalf("stress(%d,%d) = %f outside [0, %f]", r, c, s, float64(maxStress))
			}
		}
	}
}

func TestFertilityGradient(t *testing.T) {
	const rows, cols = 50, 50
	nw := fertilityAt(rows, cols, 0, 0)
	se := fertilityAt(rows, cols, rows-1, cols-1)
	if nw <= se {
		t.Errorf("fertility northwest (%f) not above southeast (%f)", nw, se)
	}
	if math.Abs(nw-0.15) > 1e-12 {
		t.Errorf("fertility at (0,0) = %f, want 0.15", nw)
	}
	// East is mildly better than west on the same row.
	if fertilityAt(rows, cols, 10, cols-1) <= fertilityAt(rows, cols, 10, 0) {
		t.Error("fertility should rise west to east within a row")
	}
}

func TestRowGradient(t *testing.T) {
	grad := rowGradient(120)
	if len(grad) != 120 {
		t.Fatalf("len(grad) = %d, want 120", len(grad))
	}
	for r, g := range grad {
		if g < 0.96 || g > 1.04 {
			t.Fatalf("row gradient[%d] = %f outside [0.96, 1.04]", r, g)
		}
		if want := 1.0 + 0.04*math.Sin(float64(r)/11.0); math.Abs(g-want) > 1e-12 {
			t.Fatalf("row gradient[%d] = %f, want %f", r, g, want)
		}
	}
}

func TestColumnBiasDeterministic(t *testing.T) {
	a := columnBias(NewRand(5), 64)
	b := columnBias(NewRand(5), 64)
	if len(a) != 64 {
		t.Fatalf("len(bias) = %d, want 64", len(a))
	}
	for c := range a {
		if a[c] != b[c] {
			t.Fatalf("column bias not reproducible at col %d: %f vs %f", c, a[c], b[c])
		}
		// N(1, 0.01) draws; anything past 6 sigma indicates a broken scale.
		if a[c] < 0.94 || a[c] > 1.06 {
			t.Errorf("column bias[%d] = %f implausibly far from 1", c, a[c])
		}
	}
}
