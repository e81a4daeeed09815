// Package audio plays TTS clips through the system speaker.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(48000)

// ErrUnsupportedFormat is returned for clips that are not RIFF/WAVE.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Player decodes WAV clips and plays them one at a time.
type Player struct {
	mu          sync.Mutex
	initialized bool
}

// NewPlayer returns a player; the speaker is opened on first use.
func NewPlayer() *Player {
	return &Player{}
}

func (p *Player) init() error {
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to open speaker: %w", err)
	}
	p.initialized = true
	return nil
}

// IsWAV reports whether data starts with a RIFF/WAVE header.
func IsWAV(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE"))
}

// Play blocks until the clip finished or ctx is done.
func (p *Player) Play(ctx context.Context, data []byte) error {
	if !IsWAV(data) {
		return ErrUnsupportedFormat
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.init(); err != nil {
		return err
	}

	stream, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode wav: %w", err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			// Best-effort stream close.
			_ = cerr
		}
	}()

	var src beep.Streamer = stream
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, stream)
	}
	ctrl := &beep.Ctrl{Streamer: src}
	done := make(chan struct{})
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() { close(done) })))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
		return ctx.Err()
	}
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Clear()
	}
}
