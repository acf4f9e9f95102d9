package acq

import (
	"math"
	"math/rand"
)

// SimulatedDevice produces deterministic synthetic Raman spectra. It stands
// in for real hardware in tests, offline development, and dry runs of an
// acquisition protocol.
type SimulatedDevice struct {
	pixels         int
	peakCenters    []float64
	peakAmplitudes []float64
	sigma          float64
	noiseAmplitude float64
	integrationMs  float64
	laserPowerMw   float64
	laserOn        bool
	connected      bool
	rng            *rand.Rand
}

// NewSimulatedDevice creates a simulated spectrometer with a fixed set of
// synthetic peaks and reproducible noise derived from seed.
func NewSimulatedDevice(pixels int, seed int64) *SimulatedDevice {
	return &SimulatedDevice{
		pixels:         pixels,
		peakCenters:    []float64{0.15, 0.35, 0.55, 0.8},
		peakAmplitudes: []float64{0.6, 1.0, 0.45, 0.8},
		sigma:          3.0,
		noiseAmplitude: 0.01,
		integrationMs:  100,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

// SetNoiseAmplitude adjusts the per-pixel Gaussian noise level.
func (d *SimulatedDevice) SetNoiseAmplitude(amplitude float64) {
	if amplitude >= 0 {
		d.noiseAmplitude = amplitude
	}
}

// Connect implements Device.
func (d *SimulatedDevice) Connect() error {
	d.connected = true
	return nil
}

// Spectrum implements Device. Intensity scales linearly with integration
// time; without the laser only noise is returned.
func (d *SimulatedDevice) Spectrum() ([]float64, []float64, error) {
	if !d.connected {
		return nil, nil, ErrNotConnected
	}

	x := make([]float64, d.pixels)
	y := make([]float64, d.pixels)

	scale := d.integrationMs / 100

	for i := range x {
		x[i] = float64(i)

		if d.laserOn {
			for p := range d.peakCenters {
				center := d.peakCenters[p] * float64(d.pixels)
				dx := float64(i) - center
				y[i] += scale * d.peakAmplitudes[p] * math.Exp(-dx*dx/(2*d.sigma*d.sigma))
			}
		}

		y[i] += d.noiseAmplitude * d.rng.NormFloat64()
	}

	return x, y, nil
}

// SetIntegrationTime implements Device.
func (d *SimulatedDevice) SetIntegrationTime(ms float64) error {
	if !d.connected {
		return ErrNotConnected
	}

	if ms > 0 {
		d.integrationMs = ms
	}

	return nil
}

// SetLaserPower implements Device.
func (d *SimulatedDevice) SetLaserPower(mW float64) error {
	if !d.connected {
		return ErrNotConnected
	}

	d.laserPowerMw = mW

	return nil
}

// LaserOn implements Device.
func (d *SimulatedDevice) LaserOn() error {
	if !d.connected {
		return ErrNotConnected
	}

	d.laserOn = true

	return nil
}

// LaserOff implements Device.
func (d *SimulatedDevice) LaserOff() error {
	if !d.connected {
		return ErrNotConnected
	}

	d.laserOn = false

	return nil
}

// NewDevice constructs a device for the given kind. Real hardware kinds are
// only available as simulated stand-ins when simulate is set; this module
// does not link vendor SDKs.
func NewDevice(kind Kind, simulate bool, pixels int, seed int64) (Device, error) {
	switch kind {
	case KindSimulated:
		return NewSimulatedDevice(pixels, seed), nil
	case KindOpenRaman, KindWasatch:
		if simulate {
			return NewSimulatedDevice(pixels, seed), nil
		}

		return nil, ErrUnknownDevice
	default:
		return nil, ErrUnknownDevice
	}
}
