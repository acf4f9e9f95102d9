package calib

import "github.com/cwbudde/algo-raman/dsp/peaks"

// Default calibration parameters.
const (
	DefaultExcitationWavelengthNm = 532.0
	DefaultKernelSize             = 5
	DefaultRoughResidualThreshold = 1e0
	DefaultFineResidualThreshold  = 1e2
)

// Config holds calibration parameters.
type Config struct {
	// ExcitationWavelengthNm is the laser excitation wavelength used for the
	// wavelength to wavenumber conversion.
	ExcitationWavelengthNm float64

	// KernelSize is the median filter width applied before peak detection.
	KernelSize int

	// MinProminence is the peak detection threshold in intensity units.
	MinProminence float64

	// RoughResidualThreshold and FineResidualThreshold bound the accepted
	// in-sample sum of squared errors per stage.
	RoughResidualThreshold float64
	FineResidualThreshold  float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the standard 532 nm configuration.
func DefaultConfig() Config {
	return Config{
		ExcitationWavelengthNm: DefaultExcitationWavelengthNm,
		KernelSize:             DefaultKernelSize,
		MinProminence:          peaks.DefaultMinProminence,
		RoughResidualThreshold: DefaultRoughResidualThreshold,
		FineResidualThreshold:  DefaultFineResidualThreshold,
	}
}

// WithExcitationWavelength sets the excitation laser wavelength in nm.
func WithExcitationWavelength(nm float64) Option {
	return func(cfg *Config) {
		if nm > 0 {
			cfg.ExcitationWavelengthNm = nm
		}
	}
}

// WithKernelSize sets the median filter kernel width.
func WithKernelSize(size int) Option {
	return func(cfg *Config) {
		if size >= 1 && size%2 == 1 {
			cfg.KernelSize = size
		}
	}
}

// WithMinProminence sets the peak detection prominence threshold.
func WithMinProminence(prominence float64) Option {
	return func(cfg *Config) {
		if prominence > 0 {
			cfg.MinProminence = prominence
		}
	}
}

// WithResidualThresholds sets the rough and fine residual acceptance bounds.
func WithResidualThresholds(rough, fine float64) Option {
	return func(cfg *Config) {
		if rough > 0 {
			cfg.RoughResidualThreshold = rough
		}

		if fine > 0 {
			cfg.FineResidualThreshold = fine
		}
	}
}
