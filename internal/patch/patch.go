// Package patch drives a single DSF oscillator from a control thread and
// renders it into interleaved stereo buffers on the audio thread.
package patch

import (
	"math"
	"sync/atomic"

	"github.com/cbegin/dsfosc-go/internal/dsf"
	"github.com/cbegin/dsfosc-go/internal/lfo"
)

// MaxRatio caps the effective partial ratio. The oscillator accepts any
// ratio and its denominator vanishes at 1, so the patch keeps it below.
const MaxRatio = 0.999

// Patch is safe to configure from any goroutine while a single goroutine
// calls Process. Parameters are stored as float64 bit patterns in atomics and
// picked up at the start of the next block.
type Patch struct {
	center     atomic.Uint64
	modulation atomic.Uint64
	ratio      atomic.Uint64
	spectra    atomic.Uint64
	gain       atomic.Uint64
	sync       atomic.Bool
	ratioLFO   lfoSlot
	spectraLFO lfoSlot
	version    atomic.Uint64

	// audio thread only
	sampleRate  float64
	osc         dsf.Oscillator
	applied     uint64
	baseRatio   float64
	baseSpectra float64
	outGain     float32
	ratioMod    lfo.LFO
	spectraMod  lfo.LFO
}

type lfoSlot struct {
	depth atomic.Uint64
	rate  atomic.Uint64
	shape atomic.Int32
}

func (s *lfoSlot) store(depth, rateHz float64, shape lfo.Shape) {
	s.depth.Store(math.Float64bits(depth))
	s.rate.Store(math.Float64bits(rateHz))
	s.shape.Store(int32(shape))
}

func (s *lfoSlot) applyTo(l *lfo.LFO) {
	depth := math.Float64frombits(s.depth.Load())
	rate := math.Float64frombits(s.rate.Load())
	shape := lfo.Shape(s.shape.Load())
	if depth != l.Depth() || rate != l.Rate() || shape != l.Shape() {
		l.Set(depth, rate, shape)
	}
}

// New returns a patch at sampleRate with params applied and unity gain.
func New(sampleRate float64, params dsf.Params) *Patch {
	p := &Patch{sampleRate: sampleRate}
	p.osc.Init(sampleRate)
	p.gain.Store(math.Float64bits(1))
	p.SetParams(params)
	p.pull()
	return p
}

// SetParams replaces all oscillator controls at once.
func (p *Patch) SetParams(params dsf.Params) {
	p.center.Store(math.Float64bits(params.CenterFrequency))
	p.modulation.Store(math.Float64bits(params.ModulationFrequency))
	p.ratio.Store(math.Float64bits(params.Ratio))
	p.spectra.Store(math.Float64bits(params.Spectra))
	p.sync.Store(params.Sync)
	p.version.Add(1)
}

// Params returns the controls as last requested, before modulation and clamping.
func (p *Patch) Params() dsf.Params {
	return dsf.Params{
		CenterFrequency:     math.Float64frombits(p.center.Load()),
		ModulationFrequency: math.Float64frombits(p.modulation.Load()),
		Ratio:               math.Float64frombits(p.ratio.Load()),
		Spectra:             math.Float64frombits(p.spectra.Load()),
		Sync:                p.sync.Load(),
	}
}

func (p *Patch) SetCenterFrequency(hz float64) {
	p.center.Store(math.Float64bits(hz))
	p.version.Add(1)
}

func (p *Patch) SetModulationFrequency(hz float64) {
	p.modulation.Store(math.Float64bits(hz))
	p.version.Add(1)
}

// SetRatio sets the base partial ratio. The value reaching the oscillator is
// clamped to [0, MaxRatio] after modulation.
func (p *Patch) SetRatio(a float64) {
	p.ratio.Store(math.Float64bits(a))
	p.version.Add(1)
}

func (p *Patch) SetSpectra(s float64) {
	p.spectra.Store(math.Float64bits(s))
	p.version.Add(1)
}

func (p *Patch) SetSync(sync bool) {
	p.sync.Store(sync)
	p.version.Add(1)
}

// SetGain sets the output gain. Negative values are treated as 0.
func (p *Patch) SetGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	p.gain.Store(math.Float64bits(gain))
	p.version.Add(1)
}

func (p *Patch) Gain() float64 {
	return math.Float64frombits(p.gain.Load())
}

// SetRatioLFO sweeps the ratio by ±depth at rateHz. Zero depth disables it.
func (p *Patch) SetRatioLFO(depth, rateHz float64, shape lfo.Shape) {
	p.ratioLFO.store(depth, rateHz, shape)
	p.version.Add(1)
}

// SetSpectraLFO sweeps the spectra blend by ±depth at rateHz.
func (p *Patch) SetSpectraLFO(depth, rateHz float64, shape lfo.Shape) {
	p.spectraLFO.store(depth, rateHz, shape)
	p.version.Add(1)
}

// pull copies pending control values into the oscillator.
func (p *Patch) pull() {
	p.applied = p.version.Load()
	p.osc.SetCenterFrequency(math.Float64frombits(p.center.Load()))
	p.osc.SetModulationFrequency(math.Float64frombits(p.modulation.Load()))
	p.osc.SetSync(p.sync.Load())
	p.baseRatio = math.Float64frombits(p.ratio.Load())
	p.baseSpectra = math.Float64frombits(p.spectra.Load())
	p.outGain = float32(math.Float64frombits(p.gain.Load()))
	p.ratioLFO.applyTo(&p.ratioMod)
	p.spectraLFO.applyTo(&p.spectraMod)
	p.osc.SetRatio(clampRatio(p.baseRatio))
	p.osc.SetSpectra(p.baseSpectra)
}

// Process renders interleaved stereo frames into dst.
func (p *Patch) Process(dst []float32) {
	if p.version.Load() != p.applied {
		p.pull()
	}
	modRatio := p.ratioMod.Active()
	modSpectra := p.spectraMod.Active()
	for i := 0; i+1 < len(dst); i += 2 {
		if modRatio {
			p.osc.SetRatio(clampRatio(p.baseRatio + p.ratioMod.Next(p.sampleRate)))
		}
		if modSpectra {
			p.osc.SetSpectra(p.baseSpectra + p.spectraMod.Next(p.sampleRate))
		}
		s := float32(p.osc.Process()) * p.outGain
		dst[i] = s
		dst[i+1] = s
	}
}

// Reset restarts both phases and the LFOs without touching the controls.
// Not safe to call concurrently with Process.
func (p *Patch) Reset() {
	p.osc.Init(p.sampleRate)
	p.ratioMod.Reset()
	p.spectraMod.Reset()
	p.pull()
}

func clampRatio(a float64) float64 {
	if !(a >= 0) { // also catches NaN
		return 0
	}
	if a > MaxRatio {
		return MaxRatio
	}
	return a
}
