// Package calib implements two-stage wavelength/wavenumber calibration for
// pixel-indexed Raman spectra.
//
// The first (rough) stage maps detector pixel index to wavelength by matching
// neon emission lines against the NIST reference table. The second (fine)
// stage corrects the wavenumber axis by matching acetonitrile Raman peaks
// against their standard shifts. Both stages are ordinary least-squares
// affine fits validated against residual thresholds.
//
// A Calibrator is not safe for concurrent use; callers must serialize
// Calibrate, Apply, Save and Load per instance.
package calib

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-raman/dsp/peaks"
)

// calibration is the committed result of a successful two-stage run. It is
// replaced atomically: a failed Calibrate never leaves a partial one behind.
type calibration struct {
	ExcitationWavelengthNm float64
	Rough                  Affine // pixel index -> wavelength (nm)
	Fine                   Affine // rough wavenumber -> wavenumber (cm⁻¹)
	PixelIndices           []float64
	Wavelengths            []float64
	Wavenumbers            []float64
}

// Calibrator performs and stores the two-stage calibration.
type Calibrator struct {
	cfg   Config
	state *calibration
}

// New creates a Calibrator from the default configuration and options.
func New(opts ...Option) *Calibrator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Calibrator{cfg: cfg}
}

// Config returns the active configuration.
func (c *Calibrator) Config() Config {
	return c.cfg
}

// Calibrated reports whether a calibration is available for Apply and Save.
func (c *Calibrator) Calibrated() bool {
	return c.state != nil
}

// Calibrate runs the two-stage protocol on a neon lamp spectrum and an
// acetonitrile sample spectrum sharing the same pixel axis, and returns the
// calibrated wavenumber for every pixel of that axis.
//
// On any failure the error is returned and previously committed calibration
// state, if any, is left untouched.
func (c *Calibrator) Calibrate(neonSpectrum, acetonitrileSpectrum []float64) ([]float64, error) {
	pixelIndices := make([]float64, len(neonSpectrum))
	for i := range pixelIndices {
		pixelIndices[i] = float64(i)
	}

	rough, wavelengths, err := c.roughStage(neonSpectrum, pixelIndices)
	if err != nil {
		return nil, err
	}

	roughWavenumbers := RamanShift(wavelengths, c.cfg.ExcitationWavelengthNm)

	fine, wavenumbers, err := c.fineStage(acetonitrileSpectrum, roughWavenumbers)
	if err != nil {
		return nil, err
	}

	c.state = &calibration{
		ExcitationWavelengthNm: c.cfg.ExcitationWavelengthNm,
		Rough:                  rough,
		Fine:                   fine,
		PixelIndices:           pixelIndices,
		Wavelengths:            wavelengths,
		Wavenumbers:            wavenumbers,
	}

	return wavenumbers, nil
}

// roughStage matches neon peaks to the reference lines and fits the pixel
// to wavelength map.
func (c *Calibrator) roughStage(neonSpectrum, pixelIndices []float64) (Affine, []float64, error) {
	peakIndices, err := peaks.TopProminent(neonSpectrum, len(NeonPeaksNm), c.cfg.KernelSize, c.cfg.MinProminence)
	if err != nil {
		return Affine{}, nil, err
	}

	if len(peakIndices) < 2 {
		return Affine{}, nil, fmt.Errorf("%w: neon spectrum yielded %d", ErrInsufficientPeaks, len(peakIndices))
	}

	// Peaks and catalog lines are matched in ascending order, truncated to
	// the shorter of the two lists.
	sort.Ints(peakIndices)

	n := min(len(peakIndices), len(NeonPeaksNm))

	source := make([]float64, n)
	for i := 0; i < n; i++ {
		source[i] = float64(peakIndices[i])
	}

	fit, err := fitAffine(source, NeonPeaksNm[:n])
	if err != nil {
		return Affine{}, nil, err
	}

	residual := 0.0
	for i := 0; i < n; i++ {
		d := fit.At(source[i]) - NeonPeaksNm[i]
		residual += d * d
	}

	if residual > c.cfg.RoughResidualThreshold {
		return Affine{}, nil, &ResidualError{Stage: StageRough, Residual: residual, Threshold: c.cfg.RoughResidualThreshold}
	}

	return fit, fit.Transform(pixelIndices), nil
}

// fineStage matches acetonitrile peaks to the reference shifts and fits the
// rough wavenumber to corrected wavenumber map.
func (c *Calibrator) fineStage(acetonitrileSpectrum, roughWavenumbers []float64) (Affine, []float64, error) {
	peakIndices, err := peaks.TopProminent(acetonitrileSpectrum, len(AcetonitrilePeaksCm1), c.cfg.KernelSize, c.cfg.MinProminence)
	if err != nil {
		return Affine{}, nil, err
	}

	if len(peakIndices) < 2 {
		return Affine{}, nil, fmt.Errorf("%w: acetonitrile spectrum yielded %d", ErrInsufficientPeaks, len(peakIndices))
	}

	// Order peaks by their rough wavenumber, not by pixel index: a grating
	// mounted in reverse makes the wavenumber axis run against the pixel axis.
	peakWavenumbers := make([]float64, len(peakIndices))
	for i, idx := range peakIndices {
		peakWavenumbers[i] = roughWavenumbers[idx]
	}

	sort.Float64s(peakWavenumbers)

	n := min(len(peakWavenumbers), len(AcetonitrilePeaksCm1))
	peakWavenumbers = peakWavenumbers[:n]

	fit, err := fitAffine(peakWavenumbers, AcetonitrilePeaksCm1[:n])
	if err != nil {
		return Affine{}, nil, err
	}

	residual := 0.0
	for i := 0; i < n; i++ {
		d := fit.At(peakWavenumbers[i]) - AcetonitrilePeaksCm1[i]
		residual += d * d
	}

	if residual > c.cfg.FineResidualThreshold {
		return Affine{}, nil, &ResidualError{Stage: StageFine, Residual: residual, Threshold: c.cfg.FineResidualThreshold}
	}

	return fit, fit.Transform(roughWavenumbers), nil
}

// Apply re-projects an arbitrary pixel index axis through the stored
// calibration: pixel -> wavelength -> rough wavenumber -> wavenumber. The
// axis need not match the one used to calibrate; subsets and re-binned axes
// are fine.
func (c *Calibrator) Apply(pixelIndices []float64) ([]float64, error) {
	if c.state == nil {
		return nil, ErrNotCalibrated
	}

	wavelengths := c.state.Rough.Transform(pixelIndices)
	roughWavenumbers := RamanShift(wavelengths, c.state.ExcitationWavelengthNm)

	return c.state.Fine.Transform(roughWavenumbers), nil
}

// Wavenumbers returns the calibrated axis for the original pixel indices.
func (c *Calibrator) Wavenumbers() ([]float64, error) {
	if c.state == nil {
		return nil, ErrNotCalibrated
	}

	out := make([]float64, len(c.state.Wavenumbers))
	copy(out, c.state.Wavenumbers)

	return out, nil
}
