package calib

import (
	"encoding/gob"
	"fmt"
	"os"
)

// blobVersion tags the on-disk layout so a future change fails loudly
// instead of decoding garbage.
const blobVersion = 1

// blob is the gob wire form of a committed calibration.
type blob struct {
	Version                int
	ExcitationWavelengthNm float64
	RoughSlope             float64
	RoughIntercept         float64
	FineSlope              float64
	FineIntercept          float64
	PixelIndices           []float64
	Wavelengths            []float64
	Wavenumbers            []float64
}

// Save writes the committed calibration to path as a binary blob.
// It fails with ErrNotCalibrated before the first successful Calibrate.
func (c *Calibrator) Save(path string) error {
	if c.state == nil {
		return ErrNotCalibrated
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("calib: save: %w", err)
	}

	b := blob{
		Version:                blobVersion,
		ExcitationWavelengthNm: c.state.ExcitationWavelengthNm,
		RoughSlope:             c.state.Rough.Slope,
		RoughIntercept:         c.state.Rough.Intercept,
		FineSlope:              c.state.Fine.Slope,
		FineIntercept:          c.state.Fine.Intercept,
		PixelIndices:           c.state.PixelIndices,
		Wavelengths:            c.state.Wavelengths,
		Wavenumbers:            c.state.Wavenumbers,
	}

	if err := gob.NewEncoder(f).Encode(b); err != nil {
		f.Close()
		return fmt.Errorf("calib: save: %w", err)
	}

	return f.Close()
}

// Load reads a calibration blob from path and replaces the in-memory state
// wholesale; nothing of the previous state survives.
func (c *Calibrator) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("calib: load: %w", err)
	}
	defer f.Close()

	var b blob
	if err := gob.NewDecoder(f).Decode(&b); err != nil {
		return fmt.Errorf("calib: load: %w", err)
	}

	if b.Version != blobVersion {
		return fmt.Errorf("%w: got %d want %d", ErrUnsupportedVersion, b.Version, blobVersion)
	}

	c.state = &calibration{
		ExcitationWavelengthNm: b.ExcitationWavelengthNm,
		Rough:                  Affine{Slope: b.RoughSlope, Intercept: b.RoughIntercept},
		Fine:                   Affine{Slope: b.FineSlope, Intercept: b.FineIntercept},
		PixelIndices:           b.PixelIndices,
		Wavelengths:            b.Wavelengths,
		Wavenumbers:            b.Wavenumbers,
	}

	return nil
}
