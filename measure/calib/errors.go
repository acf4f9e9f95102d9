package calib

import (
	"errors"
	"fmt"
)

// Errors returned by the calibration functions.
var (
	ErrInsufficientData   = errors.New("calib: need at least 2 points for an affine fit")
	ErrMismatchedLength   = errors.New("calib: source and target point counts must match")
	ErrInsufficientPeaks  = errors.New("calib: not enough peaks found in reference spectrum")
	ErrNotCalibrated      = errors.New("calib: not calibrated, call Calibrate or Load first")
	ErrResidualTooHigh    = errors.New("calib: fit residual exceeds threshold")
	ErrUnsupportedVersion = errors.New("calib: unsupported calibration file version")
)

// Stage identifies which half of the two-stage protocol an error refers to.
type Stage string

// Calibration stages.
const (
	StageRough Stage = "rough"
	StageFine  Stage = "fine"
)

// ResidualError reports a stage whose in-sample fit error exceeded its
// configured threshold. It matches ErrResidualTooHigh under errors.Is.
type ResidualError struct {
	Stage     Stage
	Residual  float64
	Threshold float64
}

// Error implements the error interface.
func (e *ResidualError) Error() string {
	return fmt.Sprintf("calib: %s calibration failed with residual %g (threshold %g)",
		e.Stage, e.Residual, e.Threshold)
}

// Is reports whether target is ErrResidualTooHigh.
func (e *ResidualError) Is(target error) bool {
	return target == ErrResidualTooHigh
}
