package audio

import (
	"fmt"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

type ebitenBackend struct {
	player *ebitaudio.Player
	reader *StreamReader
}

var ebitenContext struct {
	once       sync.Once
	ctx        *ebitaudio.Context
	sampleRate int
}

func sharedEbitenContext(sampleRate int) (*ebitaudio.Context, error) {
	ebitenContext.once.Do(func() {
		ebitenContext.sampleRate = sampleRate
		ebitenContext.ctx = ebitaudio.NewContext(sampleRate)
	})
	if ebitenContext.sampleRate != sampleRate {
		return nil, fmt.Errorf("%w: ebiten context at %d Hz, requested %d Hz",
			ErrSampleRateMismatch, ebitenContext.sampleRate, sampleRate)
	}
	return ebitenContext.ctx, nil
}

func newEbitenBackend(sampleRate int, source SampleSource) (*ebitenBackend, error) {
	ctx, err := sharedEbitenContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("ebiten player: %w", err)
	}
	return &ebitenBackend{player: pl, reader: reader}, nil
}

func (b *ebitenBackend) Play()           { b.player.Play() }
func (b *ebitenBackend) Pause()          { b.player.Pause() }
func (b *ebitenBackend) IsPlaying() bool { return b.player.IsPlaying() }

func (b *ebitenBackend) Close() error {
	b.player.Pause()
	if err := b.player.Close(); err != nil {
		return err
	}
	return b.reader.Close()
}
