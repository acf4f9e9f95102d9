// Package peaks locates prominent local maxima in noisy 1-D spectra.
//
// Detection is a direct scan for local maxima followed by a prominence
// measurement: the height of a peak above the higher of the two valley
// minima separating it from the nearest taller sample (or the signal edge).
// Prominence is robust against sloping baselines, which makes it the right
// ranking metric for emission-line and Raman spectra.
package peaks

import (
	"errors"
	"sort"

	"github.com/cwbudde/algo-raman/dsp/medfilt"
)

// DefaultMinProminence is the detection threshold in input intensity units.
const DefaultMinProminence = 0.05

// ErrShortSignal is returned when the signal is too short to contain a peak.
var ErrShortSignal = errors.New("peaks: signal must contain at least 3 samples")

// Peak is a detected local maximum.
type Peak struct {
	Index      int     // sample index of the maximum (plateau midpoint)
	Height     float64 // signal value at Index
	Prominence float64
}

// Detect returns all local maxima of signal with prominence >= minProminence,
// ordered by index ascending. Plateaus report their midpoint sample.
func Detect(signal []float64, minProminence float64) ([]Peak, error) {
	if len(signal) < 3 {
		return nil, ErrShortSignal
	}

	var found []Peak

	i := 1
	for i < len(signal)-1 {
		if signal[i] <= signal[i-1] {
			i++
			continue
		}

		// Walk a potential plateau to its right edge.
		j := i
		for j < len(signal)-1 && signal[j+1] == signal[i] {
			j++
		}

		if j < len(signal)-1 && signal[j+1] < signal[i] {
			mid := (i + j) / 2

			p := prominence(signal, mid)
			if p >= minProminence {
				found = append(found, Peak{Index: mid, Height: signal[mid], Prominence: p})
			}
		}

		i = j + 1
	}

	return found, nil
}

// prominence computes the topographic prominence of the peak at index idx:
// on each side, find the minimum between the peak and the nearest sample
// strictly higher than the peak (or the signal edge); the prominence is the
// peak height above the higher of the two minima.
func prominence(signal []float64, idx int) float64 {
	height := signal[idx]

	leftMin := height
	for i := idx - 1; i >= 0; i-- {
		if signal[i] > height {
			break
		}

		if signal[i] < leftMin {
			leftMin = signal[i]
		}
	}

	rightMin := height
	for i := idx + 1; i < len(signal); i++ {
		if signal[i] > height {
			break
		}

		if signal[i] < rightMin {
			rightMin = signal[i]
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}

	return height - base
}

// TopProminent finds the n most prominent peaks of intensities after median
// filtering with the given kernel size.
//
// The returned indices are ordered by prominence descending, NOT by position;
// callers that need a monotonic axis must sort. If fewer than n peaks clear
// minProminence all of them are returned; if none do, the result is empty
// with a nil error.
func TopProminent(intensities []float64, n, kernelSize int, minProminence float64) ([]int, error) {
	smoothed, err := medfilt.Filter(intensities, kernelSize)
	if err != nil {
		return nil, err
	}

	found, err := Detect(smoothed, minProminence)
	if err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return nil, nil
	}

	// Stable ordering: prominence descending, index ascending on ties.
	sort.SliceStable(found, func(a, b int) bool {
		if found[a].Prominence != found[b].Prominence {
			return found[a].Prominence > found[b].Prominence
		}

		return found[a].Index < found[b].Index
	})

	if n < len(found) {
		found = found[:n]
	}

	indices := make([]int, len(found))
	for i, p := range found {
		indices[i] = p.Index
	}

	return indices, nil
}
