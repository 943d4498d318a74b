package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/cbegin/dsfosc-go"
)

func TestSpectrumPeaksAtCarrier(t *testing.T) {
	params := dsfosc.DefaultParams()
	params.CenterFrequency = 512
	params.ModulationFrequency = 0
	params.Ratio = 0 // pure carrier
	samples := dsfosc.RenderMono(params, 8192, 8192)

	pts, err := spectrum(samples, 8192)
	if err != nil {
		t.Fatalf("spectrum: %v", err)
	}
	peak := 0
	for i := range pts {
		if pts[i].Y > pts[peak].Y {
			peak = i
		}
	}
	if math.Abs(pts[peak].X-512) > 1 {
		t.Fatalf("peak at %v Hz, want 512 Hz", pts[peak].X)
	}
	if math.Abs(pts[peak].Y) > 0.5 {
		t.Fatalf("peak level %v dB, want ~0 dB for a unit sine", pts[peak].Y)
	}
}

func TestSpectrumShowsHarmonicsAtModulationSpacing(t *testing.T) {
	params := dsfosc.Params{CenterFrequency: 256, ModulationFrequency: 256, Ratio: 0.5, Spectra: 0, Sync: false}
	samples := dsfosc.RenderMono(params, 8192, 8192)
	pts, err := spectrum(samples, 8192)
	if err != nil {
		t.Fatalf("spectrum: %v", err)
	}
	level := func(hz float64) float64 { return pts[int(hz)].Y } // 1 Hz bins
	// one-sided partials at fc + k*fm fall off by a per step (about -6 dB)
	for k := 0; k < 3; k++ {
		f := 256 + float64(k)*256
		drop := level(f) - level(f+256)
		if math.Abs(drop-20*math.Log10(2)) > 0.5 {
			t.Fatalf("partial %d to %d drop = %.2f dB, want ~6.02 dB", k, k+1, drop)
		}
	}
}

func TestSpectrumRejectsBadInput(t *testing.T) {
	if _, err := spectrum(make([]float64, 1000), 48000); err == nil {
		t.Fatal("expected error for non power-of-two length")
	}
	if _, err := spectrum([]float64{0, math.NaN()}, 48000); err == nil {
		t.Fatal("expected error for NaN input")
	}
}

func TestBuildPlotSaves(t *testing.T) {
	samples := dsfosc.RenderMono(dsfosc.DefaultParams(), 48000, 1024)
	dir := t.TempDir()
	for _, kind := range []string{"waveform", "spectrum"} {
		p, err := buildPlot(kind, samples, 48000)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		path := filepath.Join(dir, kind+".png")
		if err := p.Save(4*vg.Inch, 2*vg.Inch, path); err != nil {
			t.Fatalf("%s save: %v", kind, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("%s: empty or missing image (%v)", kind, err)
		}
	}
	if _, err := buildPlot("phase", samples, 48000); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
