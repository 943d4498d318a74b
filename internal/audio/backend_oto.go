package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

type otoBackend struct {
	mu     sync.Mutex
	player *oto.Player
	reader *StreamReader
}

var otoContext struct {
	once       sync.Once
	ctx        *oto.Context
	err        error
	sampleRate int
}

func sharedOtoContext(sampleRate int) (*oto.Context, error) {
	otoContext.once.Do(func() {
		otoContext.sampleRate = sampleRate
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoContext.err = err
			return
		}
		<-ready
		otoContext.ctx = ctx
	})
	if otoContext.err != nil {
		return nil, fmt.Errorf("oto context: %w", otoContext.err)
	}
	if otoContext.sampleRate != sampleRate {
		return nil, fmt.Errorf("%w: oto context at %d Hz, requested %d Hz",
			ErrSampleRateMismatch, otoContext.sampleRate, sampleRate)
	}
	return otoContext.ctx, nil
}

func newOtoBackend(sampleRate int, source SampleSource) (*otoBackend, error) {
	ctx, err := sharedOtoContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	return &otoBackend{player: ctx.NewPlayer(reader), reader: reader}, nil
}

func (b *otoBackend) Play() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		b.player.Play()
	}
}

func (b *otoBackend) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		b.player.Pause()
	}
}

func (b *otoBackend) IsPlaying() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.player != nil && b.player.IsPlaying()
}

func (b *otoBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return err
	}
	return b.reader.Close()
}
