package audio

import (
	"context"
	"errors"
	"testing"
)

func TestIsWAV(t *testing.T) {
	if !IsWAV([]byte("RIFF\x24\x00\x00\x00WAVEfmt ")) {
		t.Fatalf("expected RIFF/WAVE header to be detected")
	}
	if IsWAV([]byte("ID3\x03mp3 data")) {
		t.Fatalf("expected mp3 to be rejected")
	}
	if IsWAV(nil) {
		t.Fatalf("expected empty clip to be rejected")
	}
}

func TestPlayRejectsUnknownFormat(t *testing.T) {
	p := NewPlayer()
	if err := p.Play(context.Background(), []byte("not audio")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
