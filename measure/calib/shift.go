package calib

// nmToCm converts reciprocal nanometers to reciprocal centimeters.
const nmToCm = 1e7

// RamanShift converts emission wavelengths (nm) to Raman shift wavenumbers
// (cm⁻¹) relative to the given excitation wavelength:
//
//	shift = (1/λ_exc − 1/λ_em) × 10⁷
//
// excitationNm must be positive; the conversion is undefined at zero.
func RamanShift(emissionNm []float64, excitationNm float64) []float64 {
	out := make([]float64, len(emissionNm))
	for i, em := range emissionNm {
		out[i] = (1.0/excitationNm - 1.0/em) * nmToCm
	}

	return out
}
