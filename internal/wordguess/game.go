package wordguess

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/arupa/internal/dictionary"
)

// Announcer receives the target word when a session ends. Implementations
// must not block.
type Announcer interface {
	Announce(text string)
}

// Config holds the target selection settings.
type Config struct {
	Lang   string
	MinLen int
	MaxLen int
}

// DefaultConfig returns the Aymara game with 3 to 7 letter words.
func DefaultConfig() Config {
	return Config{Lang: dictionary.DefaultTargetLang, MinLen: DefaultMinLen, MaxLen: DefaultMaxLen}
}

// Game binds a Session to a dictionary, a target picker and an announcer and
// keeps the feedback line shown under the grid.
type Game struct {
	cfg       Config
	dict      dictionary.Dictionary
	picker    Picker
	announcer Announcer
	session   *Session
	message   string
}

// NewGame selects a target and starts the first session. announcer may be nil.
func NewGame(cfg Config, dict dictionary.Dictionary, picker Picker, announcer Announcer) *Game {
	if cfg.MinLen <= 0 {
		cfg.MinLen = DefaultMinLen
	}
	if cfg.MaxLen < cfg.MinLen {
		cfg.MaxLen = max(DefaultMaxLen, cfg.MinLen)
	}
	g := &Game{cfg: cfg, dict: dict, picker: picker, announcer: announcer}
	g.session = NewSession(g.pickTarget())
	return g
}

func (g *Game) pickTarget() string {
	return SelectTarget(g.dict, g.dict.FieldFor(g.cfg.Lang), g.cfg.MinLen, g.cfg.MaxLen, g.picker)
}

// Session exposes the underlying session for rendering.
func (g *Game) Session() *Session {
	return g.session
}

// Config returns the effective settings.
func (g *Game) Config() Config {
	return g.cfg
}

// Message returns the current feedback line.
func (g *Game) Message() string {
	return g.message
}

// AttemptsLabel renders the attempts counter.
func (g *Game) AttemptsLabel() string {
	return fmt.Sprintf("Intentos: %d/%d", g.session.Used(), Attempts)
}

// Translation returns the source-language word for the target, upper-cased.
func (g *Game) Translation() (string, bool) {
	word, ok := g.dict.Translate(g.session.Target())
	if !ok {
		return "", false
	}
	return strings.ToUpper(word), true
}

// Key feeds one keystroke to the session.
func (g *Game) Key(k Key) {
	if g.session.Status() != InProgress {
		return
	}
	err := g.session.Keystroke(k)
	if k.Type == KeyEnter {
		g.afterSubmit(err)
	}
}

// Submit evaluates a whole guess at once.
func (g *Game) Submit(guess string) ([]Verdict, error) {
	verdicts, err := g.session.Submit(guess)
	if errors.Is(err, ErrFinished) {
		return nil, err
	}
	g.afterSubmit(err)
	return verdicts, err
}

func (g *Game) afterSubmit(err error) {
	var lengthErr *LengthError
	if errors.As(err, &lengthErr) {
		g.message = LengthMessage(lengthErr.Want)
		return
	}
	if err != nil {
		return
	}
	switch g.session.Status() {
	case Won:
		g.message = WinMessage(g.Translation())
		g.announce()
	case Lost:
		translation, ok := g.Translation()
		g.message = LossMessage(g.session.Target(), translation, ok)
		g.announce()
	default:
		g.message = ""
	}
}

func (g *Game) announce() {
	if g.announcer != nil {
		g.announcer.Announce(g.session.Target())
	}
}

// Reset starts over. With pickNew false the current target is kept.
func (g *Game) Reset(pickNew bool) {
	target := g.session.Target()
	if pickNew {
		target = g.pickTarget()
	}
	g.session.Reset(target)
	g.message = ""
}

// LengthMessage is shown for a guess of the wrong length.
func LengthMessage(n int) string {
	return fmt.Sprintf("La palabra debe tener %d letras", n)
}

// WinMessage is shown when the target is guessed.
func WinMessage(translation string, ok bool) string {
	if !ok {
		return "¡Correcto!"
	}
	return "¡Correcto! — Español: " + translation
}

// LossMessage is shown when the attempts run out.
func LossMessage(target, translation string, ok bool) string {
	msg := "Fin del juego. La palabra era: " + target
	if ok {
		msg += " — Español: " + translation
	}
	return msg
}
