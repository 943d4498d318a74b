package dsfosc

import (
	"errors"
	"sync"
	"sync/atomic"

	intaudio "github.com/cbegin/dsfosc-go/internal/audio"
	"github.com/cbegin/dsfosc-go/internal/dsf"
	"github.com/cbegin/dsfosc-go/internal/lfo"
	"github.com/cbegin/dsfosc-go/internal/patch"
)

// Params is the full set of oscillator controls.
type Params = dsf.Params

// DefaultParams returns 110 Hz carrier and modulator, ratio 0.5, spectra 0.5, sync on.
func DefaultParams() Params { return dsf.DefaultParams() }

type LFOShape = lfo.Shape

const (
	LFOSine     = lfo.Sine
	LFOTriangle = lfo.Triangle
	LFOSaw      = lfo.Saw
	LFOSquare   = lfo.Square
)

// LFOConfig describes a parameter sweep. Zero Depth or RateHz disables it.
type LFOConfig struct {
	Depth  float64
	RateHz float64
	Shape  LFOShape
}

type PlayerOption func(*playerConfig)

type playerConfig struct {
	backend    string
	params     Params
	gain       float64
	ratioLFO   LFOConfig
	spectraLFO LFOConfig
	seconds    float64
	sampleTap  func([]float32)
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{backend: intaudio.BackendEbiten, params: DefaultParams(), gain: 0.5}
}

// WithBackend selects the audio output: "ebiten" (default) or "oto".
func WithBackend(name string) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.backend = name
	}
}

func WithParams(params Params) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.params = params
	}
}

func WithGain(gain float64) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.gain = gain
	}
}

func WithRatioLFO(l LFOConfig) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.ratioLFO = l
	}
}

func WithSpectraLFO(l LFOConfig) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.spectraLFO = l
	}
}

// WithDuration stops playback after the given number of seconds. 0 plays until Stop.
func WithDuration(seconds float64) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.seconds = seconds
	}
}

// WithSampleTap installs a callback invoked with each generated stereo buffer.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

// Player streams a single DSF oscillator to an audio device. Setters may be
// called from any goroutine while playing; they reach the oscillator at the
// start of the next audio buffer.
type Player struct {
	mu         sync.Mutex
	sampleRate int
	backend    string
	patch      *patch.Patch
	limit      int64
	sampleTap  func([]float32)
	audio      intaudio.Backend
	current    *source
}

// source wraps the patch and implements intaudio.FinishingSource so a
// fixed-length playback drains and ends.
type source struct {
	patch     *patch.Patch
	limit     int64 // frames; 0 = endless
	rendered  int64
	finished  atomic.Bool
	sampleTap func([]float32)
	done      chan struct{}
	doneOnce  sync.Once
}

func newSource(p *patch.Patch, limit int64, tap func([]float32)) *source {
	return &source{patch: p, limit: limit, sampleTap: tap, done: make(chan struct{})}
}

// end releases Wait. Safe to call from the audio thread and more than once.
func (s *source) end() {
	s.doneOnce.Do(func() { close(s.done) })
}

func (s *source) Process(dst []float32) {
	if s.finished.Load() {
		clear(dst)
		return
	}
	s.patch.Process(dst)
	if s.limit > 0 {
		frames := int64(len(dst) / 2)
		if remaining := s.limit - s.rendered; frames >= remaining {
			clear(dst[remaining*2:])
			s.rendered = s.limit
			s.finished.Store(true)
			s.end()
		} else {
			s.rendered += frames
		}
	}
	if s.sampleTap != nil {
		s.sampleTap(dst)
	}
}

func (s *source) Finished() bool {
	return s.finished.Load()
}

func NewPlayer(sampleRate int, opts ...PlayerOption) (*Player, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	backend, err := intaudio.ParseBackend(cfg.backend)
	if err != nil {
		return nil, err
	}
	if cfg.seconds < 0 {
		return nil, errors.New("duration must not be negative")
	}
	p := patch.New(float64(sampleRate), cfg.params)
	p.SetGain(cfg.gain)
	p.SetRatioLFO(cfg.ratioLFO.Depth, cfg.ratioLFO.RateHz, cfg.ratioLFO.Shape)
	p.SetSpectraLFO(cfg.spectraLFO.Depth, cfg.spectraLFO.RateHz, cfg.spectraLFO.Shape)
	return &Player{
		sampleRate: sampleRate,
		backend:    backend,
		patch:      p,
		limit:      int64(cfg.seconds * float64(sampleRate)),
		sampleTap:  cfg.sampleTap,
	}, nil
}

// Play restarts the oscillator from phase zero and begins streaming.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.audio != nil {
		_ = p.audio.Close()
		p.audio = nil
	}
	// Signal any existing Wait() that the previous playback was replaced
	if p.current != nil {
		p.current.end()
		p.current = nil
	}

	p.patch.Reset()
	src := newSource(p.patch, p.limit, p.sampleTap)
	backend, err := intaudio.NewBackend(p.backend, p.sampleRate, src)
	if err != nil {
		return err
	}
	p.audio = backend
	p.current = src
	p.audio.Play()
	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Pause()
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Play()
	}
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.audio != nil && p.audio.IsPlaying()
}

func (p *Player) Stop() error {
	p.mu.Lock()
	if p.audio == nil {
		p.mu.Unlock()
		return nil
	}
	err := p.audio.Close()
	p.audio = nil
	src := p.current
	p.current = nil
	p.mu.Unlock()
	if src != nil {
		src.end()
	}
	return err
}

// Wait blocks until the current playback ends. Without WithDuration it only
// returns after Stop. Wait returns immediately if nothing is playing.
func (p *Player) Wait() {
	p.mu.Lock()
	src := p.current
	p.mu.Unlock()
	if src != nil {
		<-src.done
	}
}

func (p *Player) SampleRate() int { return p.sampleRate }

// Params returns the controls as last set.
func (p *Player) Params() Params { return p.patch.Params() }

func (p *Player) SetParams(params Params)           { p.patch.SetParams(params) }
func (p *Player) SetCenterFrequency(hz float64)     { p.patch.SetCenterFrequency(hz) }
func (p *Player) SetModulationFrequency(hz float64) { p.patch.SetModulationFrequency(hz) }
func (p *Player) SetSync(sync bool)                 { p.patch.SetSync(sync) }

// SetRatio sets the partial ratio; playback clamps it to [0, patch.MaxRatio].
func (p *Player) SetRatio(a float64) { p.patch.SetRatio(a) }

// SetSpectra blends one-sided (0) to two-sided (1) spectra; clamped to [0, 1].
func (p *Player) SetSpectra(s float64) { p.patch.SetSpectra(s) }

// SetGain sets the output gain. Negative values are treated as 0.
func (p *Player) SetGain(gain float64) { p.patch.SetGain(gain) }

func (p *Player) Gain() float64 { return p.patch.Gain() }

func (p *Player) SetRatioLFO(l LFOConfig) {
	p.patch.SetRatioLFO(l.Depth, l.RateHz, l.Shape)
}

func (p *Player) SetSpectraLFO(l LFOConfig) {
	p.patch.SetSpectraLFO(l.Depth, l.RateHz, l.Shape)
}
