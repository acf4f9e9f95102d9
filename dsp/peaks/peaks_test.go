package peaks

import (
	"math"
	"testing"
)

// gaussian adds a Gaussian peak of the given amplitude, center and width to dst.
func gaussian(dst []float64, amplitude, center, sigma float64) {
	for i := range dst {
		x := float64(i)
		dst[i] += amplitude * math.Exp(-(x-center)*(x-center)/(2*sigma*sigma))
	}
}

func TestDetectThreeGaussians(t *testing.T) {
	signal := make([]float64, 400)
	gaussian(signal, 1.0, 80, 3)
	gaussian(signal, 0.7, 200, 3)
	gaussian(signal, 0.4, 320, 3)

	found, err := Detect(signal, DefaultMinProminence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(found) != 3 {
		t.Fatalf("peak count: got %d want 3", len(found))
	}

	want := []int{80, 200, 320}
	for i, p := range found {
		if abs(p.Index-want[i]) > 1 {
			t.Fatalf("peak %d position: got %d want %d", i, p.Index, want[i])
		}
	}
}

func TestDetectProminenceOnSlopedBaseline(t *testing.T) {
	// A small peak on a steep ramp: height is large, prominence is small.
	signal := make([]float64, 200)
	for i := range signal {
		signal[i] = float64(i) * 0.01
	}
	gaussian(signal, 0.02, 100, 2)

	found, err := Detect(signal, DefaultMinProminence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(found) != 0 {
		t.Fatalf("low-prominence bump must be rejected, got %+v", found)
	}
}

func TestDetectFlatSignal(t *testing.T) {
	signal := make([]float64, 100)

	found, err := Detect(signal, DefaultMinProminence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(found) != 0 {
		t.Fatalf("flat signal must yield no peaks, got %d", len(found))
	}
}

func TestDetectShortSignal(t *testing.T) {
	if _, err := Detect([]float64{1, 2}, 0.05); err != ErrShortSignal {
		t.Fatalf("got %v want ErrShortSignal", err)
	}
}

func TestTopProminentOrdersByProminence(t *testing.T) {
	signal := make([]float64, 500)
	gaussian(signal, 0.4, 100, 3)
	gaussian(signal, 1.0, 250, 3)
	gaussian(signal, 0.7, 400, 3)

	indices, err := TopProminent(signal, 3, 5, DefaultMinProminence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(indices) != 3 {
		t.Fatalf("index count: got %d want 3", len(indices))
	}

	want := []int{250, 400, 100}
	for i := range want {
		if abs(indices[i]-want[i]) > 1 {
			t.Fatalf("rank %d: got index %d want %d", i, indices[i], want[i])
		}
	}
}

func TestTopProminentFewerThanRequested(t *testing.T) {
	signal := make([]float64, 300)
	gaussian(signal, 1.0, 150, 3)

	indices, err := TopProminent(signal, 15, 5, DefaultMinProminence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(indices) != 1 {
		t.Fatalf("index count: got %d want 1", len(indices))
	}

	if abs(indices[0]-150) > 1 {
		t.Fatalf("peak index: got %d want 150", indices[0])
	}
}

func TestTopProminentNoPeaks(t *testing.T) {
	signal := make([]float64, 100)

	indices, err := TopProminent(signal, 5, 5, DefaultMinProminence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(indices) != 0 {
		t.Fatalf("flat signal must yield empty result, got %v", indices)
	}
}

func TestRefineGaussianSubPixel(t *testing.T) {
	signal := make([]float64, 200)
	gaussian(signal, 1.0, 100.37, 4)

	center, err := RefineGaussian(signal, 100, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(center-100.37) > 0.05 {
		t.Fatalf("refined center: got %f want 100.37", center)
	}
}

func TestRefineGaussianWindowBounds(t *testing.T) {
	signal := make([]float64, 50)
	gaussian(signal, 1.0, 3, 2)

	if _, err := RefineGaussian(signal, 3, 10); err != ErrRefineWindow {
		t.Fatalf("got %v want ErrRefineWindow", err)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
