package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cbegin/dsfosc-go"
)

func main() {
	var (
		sampleRate = flag.Float64("sample-rate", 48000, "sample rate in Hz")
		center     = flag.Float64("center", 110, "carrier frequency in Hz")
		mod        = flag.Float64("mod", 110, "modulation frequency (partial spacing) in Hz")
		ratio      = flag.Float64("ratio", 0.5, "partial amplitude ratio")
		spectra    = flag.Float64("spectra", 0.5, "0 = one-sided, 1 = two-sided spectrum")
		sync       = flag.Bool("sync", true, "reset the modulator phase on every carrier cycle")
		frames     = flag.Int("frames", 2048, "number of samples to render (power of two for spectrum)")
		kind       = flag.String("kind", "waveform", "plot kind: waveform|spectrum")
		outPath    = flag.String("out", "dsf.png", "output image (png, svg or pdf)")
	)
	flag.Parse()

	params := dsfosc.Params{
		CenterFrequency:     *center,
		ModulationFrequency: *mod,
		Ratio:               *ratio,
		Spectra:             *spectra,
		Sync:                *sync,
	}
	samples := dsfosc.RenderMono(params, *sampleRate, *frames)

	p, err := buildPlot(strings.ToLower(*kind), samples, *sampleRate)
	if err != nil {
		log.Fatal(err)
	}
	p.Title.Text = fmt.Sprintf("DSF fc=%.1fHz fm=%.1fHz a=%.3f spectra=%.2f sync=%v",
		*center, *mod, *ratio, *spectra, *sync)
	if err := p.Save(8*vg.Inch, 4*vg.Inch, *outPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", *outPath)
}

func buildPlot(kind string, samples []float64, sampleRate float64) (*plot.Plot, error) {
	var (
		pts plotter.XYs
		err error
	)
	p := plot.New()
	switch kind {
	case "waveform":
		pts = waveform(samples)
		p.X.Label.Text = "Sample"
		p.Y.Label.Text = "Amplitude"
	case "spectrum":
		pts, err = spectrum(samples, sampleRate)
		if err != nil {
			return nil, err
		}
		p.X.Label.Text = "Frequency (Hz)"
		p.Y.Label.Text = "Magnitude (dB)"
	default:
		return nil, fmt.Errorf("invalid -kind %q (expected waveform|spectrum)", kind)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	p.Add(line)
	return p, nil
}

func waveform(samples []float64) plotter.XYs {
	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = float64(i)
		pts[i].Y = s
	}
	return pts
}

// spectrum returns the single-sided magnitude spectrum in dB relative to a
// full-scale sine.
func spectrum(samples []float64, sampleRate float64) (plotter.XYs, error) {
	n := len(samples)
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("spectrum needs a power-of-two frame count, got %d", n)
	}
	for _, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, errors.New("spectrum input has non-finite samples")
		}
	}
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, samples)
	pts := make(plotter.XYs, len(coeff))
	for i, c := range coeff {
		mag := cmplx.Abs(c) / float64(n/2)
		pts[i].X = fft.Freq(i) * sampleRate
		pts[i].Y = 20 * math.Log10(mag+1e-12)
	}
	return pts, nil
}
