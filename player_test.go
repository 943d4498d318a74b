package dsfosc

import (
	"errors"
	"testing"

	intaudio "github.com/cbegin/dsfosc-go/internal/audio"
	"github.com/cbegin/dsfosc-go/internal/patch"
)

func TestNewPlayerValidatesConfig(t *testing.T) {
	if _, err := NewPlayer(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewPlayer(48000, WithBackend("jack")); !errors.Is(err, intaudio.ErrUnknownBackend) {
		t.Fatalf("error = %v, want ErrUnknownBackend", err)
	}
	if _, err := NewPlayer(48000, WithDuration(-1)); err == nil {
		t.Fatal("expected error for negative duration")
	}
}

func TestPlayerRuntimeParams(t *testing.T) {
	pl, err := NewPlayer(48000, WithBackend("oto"), WithGain(0.8))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	if got := pl.Params(); got != DefaultParams() {
		t.Fatalf("default params = %+v", got)
	}
	if pl.Gain() != 0.8 {
		t.Fatalf("gain = %v, want 0.8", pl.Gain())
	}
	pl.SetCenterFrequency(440)
	pl.SetModulationFrequency(220)
	pl.SetRatio(1.2)
	pl.SetSpectra(0.1)
	pl.SetSync(false)
	want := Params{CenterFrequency: 440, ModulationFrequency: 220, Ratio: 1.2, Spectra: 0.1, Sync: false}
	if got := pl.Params(); got != want {
		t.Fatalf("params = %+v, want %+v", got, want)
	}
	pl.SetGain(-1)
	if pl.Gain() != 0 {
		t.Fatalf("gain should clamp to 0, got %v", pl.Gain())
	}
	if pl.IsPlaying() {
		t.Fatal("player should not be playing before Play")
	}
	// Nothing to stop or wait for yet.
	if err := pl.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	pl.Wait()
}

func TestSourceEndsAfterLimit(t *testing.T) {
	p := patch.New(1000, DefaultParams())
	var tapped int
	src := newSource(p, 150, func(buf []float32) { tapped += len(buf) / 2 })

	buf := make([]float32, 200) // 100 frames
	src.Process(buf)
	if src.Finished() {
		t.Fatal("finished too early")
	}
	src.Process(buf)
	if !src.Finished() {
		t.Fatal("expected finished after 200 frames with a 150 frame limit")
	}
	for i := 100; i < len(buf); i++ {
		if buf[i] != 0 {
			t.Fatalf("sample %d past the limit = %v, want 0", i, buf[i])
		}
	}
	select {
	case <-src.done:
	default:
		t.Fatal("done channel not closed")
	}
	src.end() // second end must not panic
	if tapped != 200 {
		t.Fatalf("tap saw %d frames, want 200", tapped)
	}

	src.Process(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d after finish = %v, want silence", i, v)
		}
	}
}

func TestSourceEndlessWithoutLimit(t *testing.T) {
	src := newSource(patch.New(48000, DefaultParams()), 0, nil)
	buf := make([]float32, 4096)
	for i := 0; i < 50; i++ {
		src.Process(buf)
	}
	if src.Finished() {
		t.Fatal("endless source reported finished")
	}
}
