package acq

// Accumulator averages repeated exposures of the same pixel axis. The zero
// value is ready to use.
type Accumulator struct {
	sum   []float64
	count int
}

// Add folds one exposure into the running average. All exposures must share
// one length; the first Add fixes it.
func (a *Accumulator) Add(spectrum []float64) error {
	if len(spectrum) == 0 {
		return ErrEmptySpectrum
	}

	if a.sum == nil {
		a.sum = make([]float64, len(spectrum))
	}

	if len(spectrum) != len(a.sum) {
		return ErrLengthMismatch
	}

	for i, v := range spectrum {
		a.sum[i] += v
	}

	a.count++

	return nil
}

// Count returns the number of accumulated exposures.
func (a *Accumulator) Count() int {
	return a.count
}

// Average returns the mean of the accumulated exposures.
func (a *Accumulator) Average() ([]float64, error) {
	if a.count == 0 {
		return nil, ErrNoExposures
	}

	out := make([]float64, len(a.sum))
	for i, v := range a.sum {
		out[i] = v / float64(a.count)
	}

	return out, nil
}

// Reset clears the accumulator for the next position.
func (a *Accumulator) Reset() {
	a.sum = nil
	a.count = 0
}
