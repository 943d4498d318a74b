package dsfosc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cbegin/dsfosc-go/internal/dsf"
	"github.com/cbegin/dsfosc-go/internal/patch"
)

// RenderConfig describes an offline render.
type RenderConfig struct {
	SampleRate int
	Seconds    float64
	Params     Params
	Gain       float64 // 0 means unity
	RatioLFO   LFOConfig
	SpectraLFO LFOConfig
}

// RenderSamples renders interleaved stereo frames through the same patch used
// for live playback.
func RenderSamples(cfg RenderConfig) ([]float32, error) {
	if cfg.SampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	if cfg.Seconds < 0 {
		return nil, errors.New("seconds must not be negative")
	}
	p := patch.New(float64(cfg.SampleRate), cfg.Params)
	if cfg.Gain != 0 {
		p.SetGain(cfg.Gain)
	}
	p.SetRatioLFO(cfg.RatioLFO.Depth, cfg.RatioLFO.RateHz, cfg.RatioLFO.Shape)
	p.SetSpectraLFO(cfg.SpectraLFO.Depth, cfg.SpectraLFO.RateHz, cfg.SpectraLFO.Shape)

	frames := int(float64(cfg.SampleRate) * cfg.Seconds)
	out := make([]float32, frames*2)
	p.Process(out)
	return out, nil
}

// RenderMono runs a bare oscillator for the given number of frames with no
// host-side clamping, so degenerate params come out as the oscillator
// produces them.
func RenderMono(params Params, sampleRate float64, frames int) []float64 {
	osc := dsf.New(sampleRate)
	osc.Apply(params)
	out := make([]float64, frames)
	for i := range out {
		out[i] = osc.Process()
	}
	return out
}

type wavHeader struct {
	Riff          [4]byte
	ChunkSize     uint32
	Wave          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

const wavFormatIEEEFloat = 3

// WriteWAV writes samples as a 32-bit IEEE float WAV file.
func WriteWAV(w io.Writer, samples []float32, sampleRate, channels int) error {
	if channels <= 0 {
		return fmt.Errorf("invalid channel count %d", channels)
	}
	dataSize := uint32(len(samples) * 4)
	hdr := wavHeader{
		Riff:          [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Wave:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   wavFormatIEEEFloat,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * channels * 4),
		BlockAlign:    uint16(channels * 4),
		BitsPerSample: 32,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	buf := make([]byte, 4096)
	for len(samples) > 0 {
		n := min(len(samples), len(buf)/4)
		for i, s := range samples[:n] {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
		}
		if _, err := w.Write(buf[:n*4]); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
		samples = samples[n:]
	}
	return nil
}

// EncodeWAVFloat32LE returns samples as an in-memory float WAV file.
func EncodeWAVFloat32LE(samples []float32, sampleRate, channels int) []byte {
	var b bytes.Buffer
	b.Grow(44 + len(samples)*4)
	// bytes.Buffer writes cannot fail; only a bad channel count can.
	if err := WriteWAV(&b, samples, sampleRate, channels); err != nil {
		return nil
	}
	return b.Bytes()
}
