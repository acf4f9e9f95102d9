package calib

import "gonum.org/v1/gonum/stat"

// Affine is a first-degree polynomial mapping y = Slope*x + Intercept.
type Affine struct {
	Slope     float64
	Intercept float64
}

// At evaluates the mapping at x.
func (a Affine) At(x float64) float64 {
	return a.Slope*x + a.Intercept
}

// Transform applies the mapping element-wise and returns a new slice.
func (a Affine) Transform(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = a.At(x)
	}

	return out
}

// fitAffine computes the ordinary least-squares affine map from source to
// target points.
func fitAffine(source, target []float64) (Affine, error) {
	if len(source) != len(target) {
		return Affine{}, ErrMismatchedLength
	}

	if len(source) < 2 {
		return Affine{}, ErrInsufficientData
	}

	intercept, slope := stat.LinearRegression(source, target, nil, false)

	return Affine{Slope: slope, Intercept: intercept}, nil
}

// RescaleAxis fits an affine map from source to target by least squares,
// applies it to every element of all, and returns the transformed axis
// together with the in-sample residual (sum of squared errors over the fit
// points, not over all).
//
// all may differ from source; it is typically the full pixel axis while
// source holds only the matched peak positions.
func RescaleAxis(source, target, all []float64) ([]float64, float64, error) {
	fit, err := fitAffine(source, target)
	if err != nil {
		return nil, 0, err
	}

	residual := 0.0
	for i := range source {
		d := fit.At(source[i]) - target[i]
		residual += d * d
	}

	return fit.Transform(all), residual, nil
}
