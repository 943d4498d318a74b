package dsf

// Params is a full set of oscillator controls.
type Params struct {
	CenterFrequency     float64
	ModulationFrequency float64
	Ratio               float64
	Spectra             float64
	Sync                bool
}

// DefaultParams matches the state left by Init.
func DefaultParams() Params {
	return Params{
		CenterFrequency:     DefaultCenterFrequency,
		ModulationFrequency: DefaultModulationFrequency,
		Ratio:               DefaultRatio,
		Spectra:             DefaultSpectra,
		Sync:                true,
	}
}

// Apply routes p through the setters, so Spectra is clamped and the rest are not.
// Phases are left untouched.
func (o *Oscillator) Apply(p Params) {
	o.SetCenterFrequency(p.CenterFrequency)
	o.SetModulationFrequency(p.ModulationFrequency)
	o.SetRatio(p.Ratio)
	o.SetSpectra(p.Spectra)
	o.SetSync(p.Sync)
}

// Params returns the current control values.
func (o *Oscillator) Params() Params {
	return Params{
		CenterFrequency:     o.centerFrequency,
		ModulationFrequency: o.modulationFrequency,
		Ratio:               o.ratio,
		Spectra:             o.spectra,
		Sync:                o.sync,
	}
}
