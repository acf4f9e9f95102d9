// Package acq drives spectrum acquisition: it abstracts the spectrometer
// device, averages repeated exposures, and runs per-position acquisition
// sessions that write spectra and metadata to disk.
package acq

import (
	"errors"
	"strings"
)

// Errors returned by the acquisition layer.
var (
	ErrUnknownDevice  = errors.New("acq: unknown spectrometer device kind")
	ErrNotConnected   = errors.New("acq: device not connected")
	ErrEmptySpectrum  = errors.New("acq: device returned an empty spectrum")
	ErrLengthMismatch = errors.New("acq: spectrum length differs from previous exposures")
	ErrNoExposures    = errors.New("acq: no exposures accumulated")
)

// Kind enumerates the supported spectrometer device families.
type Kind int

// Supported device kinds.
const (
	KindUnknown Kind = iota
	KindOpenRaman
	KindWasatch
	KindSimulated
)

// String returns the profile name of the kind.
func (k Kind) String() string {
	switch k {
	case KindOpenRaman:
		return "openraman"
	case KindWasatch:
		return "wasatch"
	case KindSimulated:
		return "simulated"
	default:
		return "unknown"
	}
}

// KindFromName resolves a profile spectrometer name to a Kind.
func KindFromName(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "openraman":
		return KindOpenRaman, nil
	case "wasatch":
		return KindWasatch, nil
	case "simulated", "":
		return KindSimulated, nil
	default:
		return KindUnknown, ErrUnknownDevice
	}
}

// Device is a spectrometer capable of producing pixel-indexed spectra.
// Implementations are not required to be safe for concurrent use.
type Device interface {
	// Connect establishes the device link. It must be called before any
	// other method.
	Connect() error

	// Spectrum acquires one exposure and returns the x axis (pixel indices
	// or device-calibrated wavenumbers) and intensities.
	Spectrum() (x, y []float64, err error)

	// SetIntegrationTime sets the detector integration time in milliseconds.
	SetIntegrationTime(ms float64) error

	// SetLaserPower sets the excitation laser power in milliwatts.
	SetLaserPower(mW float64) error

	// LaserOn and LaserOff gate the excitation laser.
	LaserOn() error
	LaserOff() error
}
