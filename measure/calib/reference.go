package calib

// NeonPeaksNm lists the neon emission lines used for rough calibration, in
// nanometers, ascending. Values from the NIST Atomic Spectra handbook table
// for Ne I (https://physics.nist.gov/PhysRefData/Handbook/Tables/neontable2.htm).
//
// These tables are part of the calibration contract: changing an entry
// changes the wavenumber axis of every spectrum calibrated against it.
var NeonPeaksNm = []float64{
	585.249,
	588.189,
	594.483,
	607.434,
	609.616,
	614.306,
	616.359,
	621.728,
	626.649,
	630.479,
	633.443,
	638.299,
	640.225,
	650.653,
	653.288,
}

// AcetonitrilePeaksCm1 lists the acetonitrile Raman shift standard peaks
// used for fine calibration, in cm⁻¹, ascending.
var AcetonitrilePeaksCm1 = []float64{
	918,
	1376,
	2249,
	2942,
	2999,
}
