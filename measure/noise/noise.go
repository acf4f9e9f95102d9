// Package noise estimates the noise content of acquired detector spectra.
//
// Raman signal lives in the low spatial frequencies of a detector readout:
// peaks are many pixels wide, while shot and readout noise are uncorrelated
// pixel to pixel and spread flat across the spatial-frequency spectrum. The
// estimator transforms the readout, takes the RMS of the upper frequency
// half as the noise floor, and relates it to the signal band below.
//
// The acquisition layer uses this to judge whether more exposure averages
// are worth taking at a position.
package noise

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Result holds the spectrum quality estimate.
type Result struct {
	SignalRMS  float64 // RMS magnitude of the lower frequency half
	NoiseFloor float64 // RMS magnitude of the upper frequency half
	SNR        float64 // SignalRMS / NoiseFloor (linear)
	SNR_dB     float64
}

// Estimate computes the noise floor and SNR of a detector readout. Short or
// empty inputs yield a zero Result.
func Estimate(spectrum []float64) Result {
	if len(spectrum) < 8 {
		return Result{}
	}

	fftSize := nextPowerOf2(len(spectrum))

	mean := 0.0
	for _, v := range spectrum {
		mean += v
	}
	mean /= float64(len(spectrum))

	// Remove DC before transforming so the signal band is not dominated by
	// the baseline offset.
	inData := make([]complex128, fftSize)
	for i, v := range spectrum {
		inData[i] = complex(v-mean, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return Result{}
	}

	binCount := fftSize/2 + 1

	re := make([]float64, binCount)
	im := make([]float64, binCount)
	for i := 0; i < binCount; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, binCount)
	vecmath.Magnitude(mag, re, im)

	// Skip the DC bin; split the remainder at the half point.
	split := binCount / 2

	signal := rms(mag[1:split])
	floor := rms(mag[split:])

	res := Result{
		SignalRMS:  signal,
		NoiseFloor: floor,
		SNR:        math.Inf(1),
		SNR_dB:     math.Inf(1),
	}

	if floor > 0 {
		res.SNR = signal / floor
		res.SNR_dB = 20 * math.Log10(res.SNR)
	}

	return res
}

func rms(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(values)))
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
