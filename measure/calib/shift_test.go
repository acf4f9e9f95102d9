package calib

import (
	"math"
	"testing"
)

func TestRamanShiftAtExcitation(t *testing.T) {
	out := RamanShift([]float64{532.0}, 532.0)

	if len(out) != 1 || out[0] != 0 {
		t.Fatalf("shift at the excitation line must be zero, got %v", out)
	}
}

func TestRamanShiftHeNeLine(t *testing.T) {
	out := RamanShift([]float64{632.8}, 532.0)

	want := (1.0/532.0 - 1.0/632.8) * 1e7
	if math.Abs(out[0]-want) > 1e-9 {
		t.Fatalf("got %f want %f", out[0], want)
	}

	// Sanity anchor: the 532 -> 632.8 nm gap is just under 3000 cm⁻¹.
	if out[0] < 2990 || out[0] > 2999 {
		t.Fatalf("shift outside expected band: %f", out[0])
	}
}

func TestRamanShiftElementWise(t *testing.T) {
	in := []float64{540, 560, 580, 600}
	out := RamanShift(in, 532.0)

	if len(out) != len(in) {
		t.Fatalf("length mismatch: got %d want %d", len(out), len(in))
	}

	for i := 1; i < len(out); i++ {
		if out[i] <= out[i-1] {
			t.Fatalf("shift must grow with wavelength: %v", out)
		}
	}
}
