package audio

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrUnknownBackend     = errors.New("unknown audio backend")
	ErrSampleRateMismatch = errors.New("audio context sample rate mismatch")
	ErrBackendInUse       = errors.New("another audio backend already owns the device")
)

const (
	BackendEbiten = "ebiten"
	BackendOto    = "oto"
)

// Backend is a started-on-demand audio output pulling from a SampleSource.
type Backend interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

// ParseBackend normalizes a backend name.
func ParseBackend(name string) (string, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", BackendEbiten:
		return BackendEbiten, nil
	case BackendOto:
		return BackendOto, nil
	default:
		return "", fmt.Errorf("%w: %q (expected ebiten|oto)", ErrUnknownBackend, name)
	}
}

// NewBackend opens the named backend at sampleRate. Each process can hold one
// device context, so the first backend kind opened wins.
func NewBackend(name string, sampleRate int, source SampleSource) (Backend, error) {
	kind, err := ParseBackend(name)
	if err != nil {
		return nil, err
	}
	if err := claimDevice(kind); err != nil {
		return nil, err
	}
	var b Backend
	switch kind {
	case BackendOto:
		b, err = newOtoBackend(sampleRate, source)
	default:
		b, err = newEbitenBackend(sampleRate, source)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

var deviceOwner struct {
	mu   sync.Mutex
	kind string
}

func claimDevice(kind string) error {
	deviceOwner.mu.Lock()
	defer deviceOwner.mu.Unlock()
	if deviceOwner.kind != "" && deviceOwner.kind != kind {
		return fmt.Errorf("%w: %s is open, %s requested", ErrBackendInUse, deviceOwner.kind, kind)
	}
	deviceOwner.kind = kind
	return nil
}
