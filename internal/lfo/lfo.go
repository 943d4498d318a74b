package lfo

import "math"

// Shape selects the LFO waveform.
type Shape int

const (
	Sine Shape = iota
	Triangle
	Saw
	Square
)

// ParseShape maps a shape name to a Shape. Unknown names report false.
func ParseShape(name string) (Shape, bool) {
	switch name {
	case "sine":
		return Sine, true
	case "triangle", "tri":
		return Triangle, true
	case "saw":
		return Saw, true
	case "square":
		return Square, true
	}
	return Sine, false
}

// LFO is a per-sample control oscillator used to sweep a single parameter.
type LFO struct {
	depth  float64 // peak deviation, in the units of the modulated parameter
	rateHz float64
	shape  Shape
	phase  float64 // [0, 1)
}

// Set configures the LFO. Shapes outside the known set fall back to Sine.
func (l *LFO) Set(depth, rateHz float64, shape Shape) {
	l.depth = depth
	l.rateHz = rateHz
	if shape < Sine || shape > Square {
		shape = Sine
	}
	l.shape = shape
}

// Next returns the current value in [-depth, +depth] and advances one sample.
// Returns 0 while inactive.
func (l *LFO) Next(sampleRate float64) float64 {
	if l.depth == 0 || l.rateHz == 0 || sampleRate == 0 {
		return 0
	}

	var v float64
	switch l.shape {
	case Triangle:
		if l.phase < 0.5 {
			v = 4*l.phase - 1
		} else {
			v = 3 - 4*l.phase
		}
	case Saw:
		v = 2*l.phase - 1
	case Square:
		if l.phase < 0.5 {
			v = 1
		} else {
			v = -1
		}
	default:
		v = math.Sin(2 * math.Pi * l.phase)
	}

	l.phase += l.rateHz / sampleRate
	l.phase -= math.Floor(l.phase)

	return v * l.depth
}

// Active reports whether the LFO produces any output.
func (l *LFO) Active() bool {
	return l.depth != 0 && l.rateHz != 0
}

func (l *LFO) Depth() float64 { return l.depth }
func (l *LFO) Rate() float64  { return l.rateHz }
func (l *LFO) Shape() Shape   { return l.shape }

// Reset zeros the phase.
func (l *LFO) Reset() {
	l.phase = 0
}
