// Package medfilt implements a 1-D running median filter.
//
// The median filter is the standard pre-smoothing step for spectroscopic
// peak detection: it suppresses single-pixel outliers (cosmic ray hits,
// hot pixels) while preserving the position and height of genuine peaks,
// which a moving average would smear.
package medfilt

import (
	"errors"
	"sort"
)

// Errors returned by Filter.
var (
	ErrEvenKernel     = errors.New("medfilt: kernel size must be odd and positive")
	ErrKernelTooLarge = errors.New("medfilt: kernel size exceeds signal length")
)

// Filter applies a running median of width kernelSize to signal and returns
// a new slice of the same length. Edges are handled by replicate padding, so
// the first and last samples are the medians of windows clamped to the
// signal bounds with the boundary sample repeated.
//
// kernelSize must be odd and >= 1; kernelSize == 1 returns a copy.
func Filter(signal []float64, kernelSize int) ([]float64, error) {
	if kernelSize < 1 || kernelSize%2 == 0 {
		return nil, ErrEvenKernel
	}

	if kernelSize > len(signal) {
		return nil, ErrKernelTooLarge
	}

	out := make([]float64, len(signal))
	if kernelSize == 1 {
		copy(out, signal)
		return out, nil
	}

	half := kernelSize / 2
	window := make([]float64, kernelSize)

	for i := range signal {
		for j := 0; j < kernelSize; j++ {
			idx := i - half + j
			if idx < 0 {
				idx = 0
			}

			if idx >= len(signal) {
				idx = len(signal) - 1
			}

			window[j] = signal[idx]
		}

		sort.Float64s(window)
		out[i] = window[half]
	}

	return out, nil
}
