package calib

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
)

// Synthetic detector geometry shared by the calibration tests.
const (
	testPixels    = 2048
	testSlope     = 0.0525 // nm per pixel
	testIntercept = 555.0  // nm at pixel 0
)

// addGaussian adds a unit-width peak at the given fractional pixel center.
func addGaussian(dst []float64, center, amplitude, sigma float64) {
	for i := range dst {
		x := float64(i)
		dst[i] += amplitude * math.Exp(-(x-center)*(x-center)/(2*sigma*sigma))
	}
}

// wavelengthToPixel inverts the ground-truth axis map.
func wavelengthToPixel(nm float64) float64 {
	return (nm - testIntercept) / testSlope
}

// wavenumberToWavelength inverts the Raman shift for the test excitation.
func wavenumberToWavelength(cm1, excitationNm float64) float64 {
	return 1.0 / (1.0/excitationNm - cm1/1e7)
}

// syntheticNeon builds a neon lamp spectrum with peaks at the pixel
// positions implied by the ground-truth axis map.
func syntheticNeon() []float64 {
	spectrum := make([]float64, testPixels)
	for _, nm := range NeonPeaksNm {
		addGaussian(spectrum, math.Round(wavelengthToPixel(nm)), 1.0, 2.0)
	}

	return spectrum
}

// syntheticAcetonitrile builds an acetonitrile spectrum on the same axis.
func syntheticAcetonitrile(excitationNm float64) []float64 {
	spectrum := make([]float64, testPixels)
	for _, cm1 := range AcetonitrilePeaksCm1 {
		nm := wavenumberToWavelength(cm1, excitationNm)
		addGaussian(spectrum, math.Round(wavelengthToPixel(nm)), 1.0, 2.0)
	}

	return spectrum
}

func calibrateSynthetic(t *testing.T) *Calibrator {
	t.Helper()

	c := New()

	_, err := c.Calibrate(syntheticNeon(), syntheticAcetonitrile(c.Config().ExcitationWavelengthNm))
	if err != nil {
		t.Fatalf("calibration failed: %v", err)
	}

	return c
}

func TestCalibrateRoundTrip(t *testing.T) {
	c := calibrateSynthetic(t)

	// Re-projecting the acetonitrile peak pixels must reproduce the
	// reference wavenumbers.
	exc := c.Config().ExcitationWavelengthNm

	pixels := make([]float64, len(AcetonitrilePeaksCm1))
	for i, cm1 := range AcetonitrilePeaksCm1 {
		pixels[i] = math.Round(wavelengthToPixel(wavenumberToWavelength(cm1, exc)))
	}

	got, err := c.Apply(pixels)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	for i, cm1 := range AcetonitrilePeaksCm1 {
		if math.Abs(got[i]-cm1) > 5 {
			t.Fatalf("peak %d: got %f cm⁻¹ want %f", i, got[i], cm1)
		}
	}
}

func TestCalibrateReturnsFullAxis(t *testing.T) {
	c := New()

	wavenumbers, err := c.Calibrate(syntheticNeon(), syntheticAcetonitrile(DefaultExcitationWavelengthNm))
	if err != nil {
		t.Fatalf("calibration failed: %v", err)
	}

	if len(wavenumbers) != testPixels {
		t.Fatalf("axis length: got %d want %d", len(wavenumbers), testPixels)
	}

	for i := 1; i < len(wavenumbers); i++ {
		if wavenumbers[i] <= wavenumbers[i-1] {
			t.Fatalf("wavenumber axis must be monotonic at %d", i)
		}
	}

	stored, err := c.Wavenumbers()
	if err != nil {
		t.Fatalf("stored axis: %v", err)
	}

	if len(stored) != testPixels || stored[0] != wavenumbers[0] {
		t.Fatal("stored axis does not match returned axis")
	}
}

func TestApplySupportsSubsetAxis(t *testing.T) {
	c := calibrateSynthetic(t)

	full, err := c.Apply([]float64{0, 100, 200})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	single, err := c.Apply([]float64{100})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if math.Abs(full[1]-single[0]) > 1e-12 {
		t.Fatal("apply must be element-wise independent")
	}
}

func TestCalibrateFlatNeonSpectrum(t *testing.T) {
	c := New()

	_, err := c.Calibrate(make([]float64, testPixels), syntheticAcetonitrile(DefaultExcitationWavelengthNm))
	if !errors.Is(err, ErrInsufficientPeaks) {
		t.Fatalf("got %v want ErrInsufficientPeaks", err)
	}
}

func TestCalibrateFlatAcetonitrileSpectrum(t *testing.T) {
	c := New()

	_, err := c.Calibrate(syntheticNeon(), make([]float64, testPixels))
	if !errors.Is(err, ErrInsufficientPeaks) {
		t.Fatalf("got %v want ErrInsufficientPeaks", err)
	}
}

func TestCalibrateRejectsNonlinearPeakLayout(t *testing.T) {
	// Peaks placed on a quadratic cannot be fit by an affine map within the
	// rough threshold.
	neon := make([]float64, testPixels)
	for i := 0; i < len(NeonPeaksNm); i++ {
		addGaussian(neon, float64(60+40*i+6*i*i), 1.0, 2.0)
	}

	c := New()

	_, err := c.Calibrate(neon, syntheticAcetonitrile(DefaultExcitationWavelengthNm))
	if !errors.Is(err, ErrResidualTooHigh) {
		t.Fatalf("got %v want ErrResidualTooHigh", err)
	}

	var resErr *ResidualError
	if !errors.As(err, &resErr) {
		t.Fatalf("error is not a *ResidualError: %v", err)
	}

	if resErr.Stage != StageRough {
		t.Fatalf("stage: got %s want %s", resErr.Stage, StageRough)
	}

	if resErr.Residual <= resErr.Threshold {
		t.Fatalf("reported residual %g not above threshold %g", resErr.Residual, resErr.Threshold)
	}
}

func TestFailedRecalibrationKeepsPriorState(t *testing.T) {
	c := calibrateSynthetic(t)

	probe := []float64{0, 512, 1024, 1536, 2047}

	before, err := c.Apply(probe)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	// A flat neon spectrum fails in stage one; the committed calibration
	// must survive untouched.
	_, err = c.Calibrate(make([]float64, testPixels), syntheticAcetonitrile(DefaultExcitationWavelengthNm))
	if !errors.Is(err, ErrInsufficientPeaks) {
		t.Fatalf("got %v want ErrInsufficientPeaks", err)
	}

	after, err := c.Apply(probe)
	if err != nil {
		t.Fatalf("apply after failed recalibration: %v", err)
	}

	for i := range probe {
		if before[i] != after[i] {
			t.Fatalf("state mutated by failed recalibration at %d: %f != %f", i, before[i], after[i])
		}
	}
}

func TestApplyBeforeCalibrate(t *testing.T) {
	c := New()

	if _, err := c.Apply([]float64{0, 1, 2}); err != ErrNotCalibrated {
		t.Fatalf("got %v want ErrNotCalibrated", err)
	}

	if c.Calibrated() {
		t.Fatal("fresh calibrator reports calibrated")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := calibrateSynthetic(t)

	path := filepath.Join(t.TempDir(), "calibration.bin")
	if err := c.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	fresh := New()
	if err := fresh.Load(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	probe := []float64{0, 17, 256, 1023.5, 2047}

	want, err := c.Apply(probe)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	got, err := fresh.Apply(probe)
	if err != nil {
		t.Fatalf("apply after load failed: %v", err)
	}

	for i := range probe {
		if want[i] != got[i] {
			t.Fatalf("loaded calibration diverges at %d: %g != %g", i, got[i], want[i])
		}
	}
}

func TestSaveBeforeCalibrate(t *testing.T) {
	c := New()

	path := filepath.Join(t.TempDir(), "calibration.bin")
	if err := c.Save(path); err != ErrNotCalibrated {
		t.Fatalf("got %v want ErrNotCalibrated", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c := New()

	if err := c.Load(filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Fatal("loading a missing file must fail")
	}
}

func TestOptions(t *testing.T) {
	c := New(
		WithExcitationWavelength(785),
		WithKernelSize(7),
		WithMinProminence(0.1),
		WithResidualThresholds(2, 200),
	)

	cfg := c.Config()
	if cfg.ExcitationWavelengthNm != 785 || cfg.KernelSize != 7 ||
		cfg.MinProminence != 0.1 || cfg.RoughResidualThreshold != 2 ||
		cfg.FineResidualThreshold != 200 {
		t.Fatalf("options not applied: %+v", cfg)
	}

	// Invalid values fall back to defaults.
	d := New(WithExcitationWavelength(-1), WithKernelSize(4)).Config()
	if d.ExcitationWavelengthNm != DefaultExcitationWavelengthNm || d.KernelSize != DefaultKernelSize {
		t.Fatalf("invalid options must be ignored: %+v", d)
	}
}
