package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/cbegin/dsfosc-go"
	"github.com/cbegin/dsfosc-go/internal/lfo"
)

func main() {
	var (
		sampleRate    = flag.Int("sample-rate", 48000, "output sample rate")
		backend       = flag.String("backend", "ebiten", "audio backend: ebiten|oto")
		center        = flag.Float64("center", 110, "carrier frequency in Hz")
		mod           = flag.Float64("mod", 110, "modulation frequency (partial spacing) in Hz")
		ratio         = flag.Float64("ratio", 0.5, "partial amplitude ratio (0..1)")
		spectra       = flag.Float64("spectra", 0.5, "0 = one-sided, 1 = two-sided spectrum")
		sync          = flag.Bool("sync", true, "reset the modulator phase on every carrier cycle")
		gain          = flag.Float64("gain", 0.5, "output gain")
		seconds       = flag.Float64("seconds", 3, "duration; 0 plays until interrupted")
		ratioLFORate  = flag.Float64("ratio-lfo-rate", 0, "ratio LFO rate in Hz")
		ratioLFODepth = flag.Float64("ratio-lfo-depth", 0, "ratio LFO depth")
		specLFORate   = flag.Float64("spectra-lfo-rate", 0, "spectra LFO rate in Hz")
		specLFODepth  = flag.Float64("spectra-lfo-depth", 0, "spectra LFO depth")
		lfoShape      = flag.String("lfo-shape", "sine", "LFO shape: sine|triangle|saw|square")
		outPath       = flag.String("out", "", "render to this WAV file instead of playing")
	)
	flag.Parse()

	shape, err := parseShape(*lfoShape)
	if err != nil {
		log.Fatal(err)
	}
	params := dsfosc.Params{
		CenterFrequency:     *center,
		ModulationFrequency: *mod,
		Ratio:               *ratio,
		Spectra:             *spectra,
		Sync:                *sync,
	}
	ratioLFO := dsfosc.LFOConfig{Depth: *ratioLFODepth, RateHz: *ratioLFORate, Shape: shape}
	spectraLFO := dsfosc.LFOConfig{Depth: *specLFODepth, RateHz: *specLFORate, Shape: shape}

	if *outPath != "" {
		if *seconds <= 0 {
			log.Fatal("-out needs a positive -seconds")
		}
		if err := renderToFile(*outPath, dsfosc.RenderConfig{
			SampleRate: *sampleRate,
			Seconds:    *seconds,
			Params:     params,
			Gain:       *gain,
			RatioLFO:   ratioLFO,
			SpectraLFO: spectraLFO,
		}); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s\n", *outPath)
		return
	}

	pl, err := dsfosc.NewPlayer(*sampleRate,
		dsfosc.WithBackend(*backend),
		dsfosc.WithParams(params),
		dsfosc.WithGain(*gain),
		dsfosc.WithRatioLFO(ratioLFO),
		dsfosc.WithSpectraLFO(spectraLFO),
		dsfosc.WithDuration(*seconds),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := pl.Play(); err != nil {
		log.Fatal(err)
	}
	log.Printf("playing DSF carrier=%.2fHz mod=%.2fHz ratio=%.3f spectra=%.3f sync=%v via %s",
		*center, *mod, *ratio, *spectra, *sync, *backend)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		if err := pl.Stop(); err != nil {
			log.Printf("stop: %v", err)
		}
	}()
	pl.Wait()
	fmt.Println("playback completed")
}

func renderToFile(path string, cfg dsfosc.RenderConfig) error {
	samples, err := dsfosc.RenderSamples(cfg)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dsfosc.WriteWAV(f, samples, cfg.SampleRate, 2); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parseShape(name string) (lfo.Shape, error) {
	shape, ok := lfo.ParseShape(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return 0, fmt.Errorf("invalid -lfo-shape %q (expected sine|triangle|saw|square)", name)
	}
	return shape, nil
}
