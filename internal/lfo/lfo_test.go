package lfo

import (
	"math"
	"testing"
)

func TestSineShape(t *testing.T) {
	l := &LFO{}
	l.Set(0.5, 1, Sine)

	sr := 100.0 // 100 samples per cycle
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = l.Next(sr)
	}
	if math.Abs(samples[0]) > 1e-12 {
		t.Errorf("sine at phase 0: got %f, want 0", samples[0])
	}
	if math.Abs(samples[25]-0.5) > 1e-9 {
		t.Errorf("sine at phase 0.25: got %f, want 0.5", samples[25])
	}
	if math.Abs(samples[75]+0.5) > 1e-9 {
		t.Errorf("sine at phase 0.75: got %f, want -0.5", samples[75])
	}
}

func TestTriangleShape(t *testing.T) {
	l := &LFO{}
	l.Set(1, 1, Triangle)

	sr := 100.0
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = l.Next(sr)
	}
	if math.Abs(samples[0]+1) > 0.05 {
		t.Errorf("triangle at phase 0: got %f, want -1", samples[0])
	}
	if math.Abs(samples[25]) > 0.05 {
		t.Errorf("triangle at phase 0.25: got %f, want ~0", samples[25])
	}
	if math.Abs(samples[50]-1) > 0.05 {
		t.Errorf("triangle at phase 0.5: got %f, want 1", samples[50])
	}
}

func TestSquareShape(t *testing.T) {
	l := &LFO{}
	l.Set(2, 1, Square)

	sr := 100.0
	if v := l.Next(sr); v != 2 {
		t.Errorf("square first half: got %f, want 2", v)
	}
	for i := 1; i < 60; i++ {
		l.Next(sr)
	}
	if v := l.Next(sr); v != -2 {
		t.Errorf("square second half: got %f, want -2", v)
	}
}

func TestSawRamp(t *testing.T) {
	l := &LFO{}
	l.Set(1, 1, Saw)

	sr := 100.0
	prev := l.Next(sr)
	if math.Abs(prev+1) > 1e-12 {
		t.Fatalf("saw at phase 0: got %f, want -1", prev)
	}
	for i := 1; i < 100; i++ {
		v := l.Next(sr)
		if v <= prev {
			t.Fatalf("saw not rising at sample %d: %f after %f", i, v, prev)
		}
		prev = v
	}
}

func TestOutputBoundedByDepth(t *testing.T) {
	for _, shape := range []Shape{Sine, Triangle, Saw, Square} {
		l := &LFO{}
		l.Set(0.3, 7.3, shape)
		for i := 0; i < 10000; i++ {
			if v := l.Next(1000); math.Abs(v) > 0.3+1e-12 {
				t.Fatalf("shape %d sample %d: %f exceeds depth", shape, i, v)
			}
		}
	}
}

func TestInactiveReturnsZero(t *testing.T) {
	l := &LFO{}
	if l.Active() {
		t.Error("zero-value LFO should not be active")
	}
	l.Set(0, 5, Triangle)
	if v := l.Next(44100); v != 0 {
		t.Errorf("zero depth should return 0, got %f", v)
	}
	l.Set(1, 0, Triangle)
	if v := l.Next(44100); v != 0 {
		t.Errorf("zero rate should return 0, got %f", v)
	}
	l.Set(1, 5, Triangle)
	if !l.Active() {
		t.Error("configured LFO should be active")
	}
	if v := l.Next(0); v != 0 {
		t.Errorf("zero sample rate should return 0, got %f", v)
	}
}

func TestUnknownShapeFallsBackToSine(t *testing.T) {
	l := &LFO{}
	l.Set(1, 1, Shape(42))
	if l.Shape() != Sine {
		t.Fatalf("shape = %d, want Sine", l.Shape())
	}
}

func TestParseShape(t *testing.T) {
	for name, want := range map[string]Shape{"sine": Sine, "tri": Triangle, "triangle": Triangle, "saw": Saw, "square": Square} {
		got, ok := ParseShape(name)
		if !ok || got != want {
			t.Errorf("ParseShape(%q) = %d, %v; want %d", name, got, ok, want)
		}
	}
	if _, ok := ParseShape("noise"); ok {
		t.Error("ParseShape should reject unknown names")
	}
}

func TestReset(t *testing.T) {
	l := &LFO{}
	l.Set(1, 3, Saw)
	first := l.Next(100)
	for i := 0; i < 17; i++ {
		l.Next(100)
	}
	l.Reset()
	if v := l.Next(100); v != first {
		t.Fatalf("after reset got %f, want %f", v, first)
	}
}
