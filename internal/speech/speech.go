// Package speech talks to the text-to-speech service and plays the result
// without blocking the game.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultVoice is the Aymara voice of the TTS service.
const DefaultVoice = "ayr"

// DefaultTimeout bounds one synthesize-and-play round.
const DefaultTimeout = 20 * time.Second

const maxAudioBytes = 16 << 20

// ErrNoAudio is returned when the service answers with an empty body.
var ErrNoAudio = errors.New("tts returned no audio")

// Client calls POST {BaseURL}/tts/{Voice} with {"text": ...}.
type Client struct {
	BaseURL string
	Voice   string
	HTTP    *http.Client
}

type synthesizeRequest struct {
	Text string `json:"text"`
}

// Endpoint returns the synthesize URL.
func (c *Client) Endpoint() string {
	voice := c.Voice
	if voice == "" {
		voice = DefaultVoice
	}
	return strings.TrimRight(c.BaseURL, "/") + "/tts/" + voice
}

// Synthesize returns the audio bytes for text.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(synthesizeRequest{Text: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts request failed: unexpected status %s", resp.Status)
	}
	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read tts audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrNoAudio
	}
	return audio, nil
}

// Synthesizer produces audio for a word.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Player plays an encoded audio clip and returns when playback ends.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// Announcer speaks words in the background. Failures are logged and never
// reach the caller.
type Announcer struct {
	synth   Synthesizer
	player  Player
	timeout time.Duration
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

// NewAnnouncer wires a synthesizer to a player. A nil player discards audio,
// which still exercises the service.
func NewAnnouncer(synth Synthesizer, player Player, timeout time.Duration, logger zerolog.Logger) *Announcer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Announcer{synth: synth, player: player, timeout: timeout, logger: logger}
}

// Announce starts speaking text and returns immediately.
func (a *Announcer) Announce(text string) {
	if a == nil || a.synth == nil || strings.TrimSpace(text) == "" {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.speak(text); err != nil {
			a.logger.Warn().Err(err).Str("text", text).Msg("tts playback failed")
		}
	}()
}

func (a *Announcer) speak(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	audio, err := a.synth.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	a.logger.Debug().Str("text", text).Int("bytes", len(audio)).Msg("tts audio received")
	if a.player == nil {
		return nil
	}
	return a.player.Play(ctx, audio)
}

// Wait blocks until every pending announcement finished.
func (a *Announcer) Wait() {
	if a == nil {
		return
	}
	a.wg.Wait()
}
