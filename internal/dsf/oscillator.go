// Package dsf implements a Discrete Summation Formula oscillator: two coupled
// phase accumulators (carrier and modulator) fed through the closed-form sum of
// a geometrically decaying harmonic series.
//
// An Oscillator is not safe for concurrent use. Process never allocates,
// locks or blocks, so it can be called from an audio callback.
package dsf

import "math"

// TwoPi is the phase wrap threshold for both accumulators.
const TwoPi = 2 * math.Pi

const (
	DefaultCenterFrequency     = 110.0
	DefaultModulationFrequency = 110.0
	DefaultRatio               = 0.5
	DefaultSpectra             = 0.5
)

// Oscillator holds the carrier phase (theta) and modulator phase (beta).
type Oscillator struct {
	sampleRate          float64
	theta               float64 // carrier phase, [0, 2π)
	beta                float64 // modulator phase; unbounded between carrier wraps when sync is on
	sync                bool    // reset beta on every carrier wrap
	centerFrequency     float64 // Hz
	modulationFrequency float64 // Hz, partial spacing
	ratio               float64 // amplitude ratio between adjacent partials ("a")
	spectra             float64 // 0 = one-sided, 1 = two-sided, [0, 1]
}

// New returns an oscillator initialized for sampleRate.
func New(sampleRate float64) *Oscillator {
	o := &Oscillator{}
	o.Init(sampleRate)
	return o
}

// Init resets all state to defaults and stores sampleRate. sampleRate is not
// validated: zero or negative rates yield non-finite phase increments.
func (o *Oscillator) Init(sampleRate float64) {
	o.sampleRate = sampleRate
	o.theta = 0
	o.beta = 0
	o.sync = true
	o.centerFrequency = DefaultCenterFrequency
	o.modulationFrequency = DefaultModulationFrequency
	o.ratio = DefaultRatio
	o.spectra = DefaultSpectra
}

// Increments returns the per-sample carrier and modulator phase increments.
func (o *Oscillator) Increments() (dTheta, dBeta float64) {
	dTheta = TwoPi * o.centerFrequency / o.sampleRate
	dBeta = TwoPi * o.modulationFrequency / o.sampleRate
	return dTheta, dBeta
}

// Process advances both phases by one sample and returns the next output sample.
func (o *Oscillator) Process() float64 {
	dTheta, dBeta := o.Increments()
	o.theta += dTheta
	o.beta += dBeta

	if o.theta >= TwoPi {
		o.theta -= TwoPi
		if o.sync {
			// Hard reset, not a wrap: beta restarts one increment into its cycle.
			o.beta = dBeta
		}
	}
	// Free-running modulator wraps on its own cycle, even on a carrier wrap sample.
	if !o.sync && o.beta >= TwoPi {
		o.beta -= TwoPi
	}

	oneSided, twoSided := Evaluate(o.theta, o.beta, o.ratio)
	return LinearMap(o.spectra, 0, 1, oneSided, twoSided)
}

// ProcessBlock fills dst with consecutive mono samples.
func (o *Oscillator) ProcessBlock(dst []float32) {
	for i := range dst {
		dst[i] = float32(o.Process())
	}
}

// Evaluate computes the one-sided and two-sided DSF closed forms for carrier
// phase theta, modulator phase beta and partial ratio a. Nothing guards the
// shared denominator 1 + a² - 2a·cos(beta); it reaches zero at a = 1, beta = 0.
func Evaluate(theta, beta, a float64) (oneSided, twoSided float64) {
	x := math.Sin(theta)
	y := math.Sin(theta - beta)
	z := math.Cos(beta)
	den := 1 + a*a - 2*a*z
	oneSided = (x - a*y) / den
	twoSided = (1 - a*a) * y / den
	return oneSided, twoSided
}

// LinearMap maps x from [inMin, inMax] to [outMin, outMax]. Negative x is
// floored at 0 first; there is no upper clamp, so x above inMax extrapolates.
func LinearMap(x, inMin, inMax, outMin, outMax float64) float64 {
	if x < 0 {
		x = 0
	}
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// SetCenterFrequency sets the carrier frequency in Hz. Any value is accepted.
func (o *Oscillator) SetCenterFrequency(hz float64) {
	o.centerFrequency = hz
}

// SetModulationFrequency sets the partial spacing in Hz. Any value is accepted.
func (o *Oscillator) SetModulationFrequency(hz float64) {
	o.modulationFrequency = hz
}

// SetRatio sets the amplitude ratio between adjacent partials. Nominally in
// [0, 1] but stored as given; values near 1 (or beyond) can blow up the output.
func (o *Oscillator) SetRatio(a float64) {
	o.ratio = a
}

// SetSpectra blends from one-sided (0) to two-sided (1) spectra, clamped to [0, 1].
func (o *Oscillator) SetSpectra(s float64) {
	if s > 1 {
		s = 1
	}
	if s < 0 {
		s = 0
	}
	o.spectra = s
}

// SetSync selects whether the modulator phase is reset on every carrier wrap.
func (o *Oscillator) SetSync(sync bool) {
	o.sync = sync
}

func (o *Oscillator) SampleRate() float64          { return o.sampleRate }
func (o *Oscillator) Theta() float64               { return o.theta }
func (o *Oscillator) Beta() float64                { return o.beta }
func (o *Oscillator) Sync() bool                   { return o.sync }
func (o *Oscillator) CenterFrequency() float64     { return o.centerFrequency }
func (o *Oscillator) ModulationFrequency() float64 { return o.modulationFrequency }
func (o *Oscillator) Ratio() float64               { return o.ratio }
func (o *Oscillator) Spectra() float64             { return o.spectra }
