package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/arupa/internal/dictionary"
	"github.com/verte-zerg/arupa/internal/falling"
	"github.com/verte-zerg/arupa/internal/model"
)

// Header, collector, ground, input and help lines around the board.
const (
	chromeRows     = 5
	minBoardRows   = 5
	inputCharLimit = 32
)

// frameMsg drives one step of the board. gen drops ticks scheduled before a
// pause or restart.
type frameMsg struct {
	gen int
}

type fallingScreen struct {
	game   *falling.Game
	input  textinput.Model
	saver  ResultSaver
	logger zerolog.Logger
	lang   string
	words  int

	runID     string
	startedAt time.Time
	saved     bool

	gen     int
	ticking bool

	cols int
	rows int
}

func newFallingScreen(opts Options, dict dictionary.Dictionary, logger zerolog.Logger) *fallingScreen {
	deck := falling.NewDeck(dict.Words(opts.FallingLang), opts.Rand)
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "escribe la palabra"
	input.CharLimit = inputCharLimit
	cfg := opts.Falling
	s := &fallingScreen{
		game:   falling.New(cfg, deck, opts.Rand),
		input:  input,
		saver:  opts.Saver,
		logger: logger.With().Str("game", model.GameFalling).Logger(),
		lang:   opts.FallingLang,
		words:  deck.Len(),
		cols:   int(cfg.Width / cellWidth),
		rows:   int(cfg.Height / cellHeight),
	}
	s.begin(opts.Now())
	return s
}

func (s *fallingScreen) begin(now time.Time) {
	s.runID = uuid.NewString()
	s.startedAt = now
	s.saved = false
	s.logger.Info().Str("run_id", s.runID).Int("words", s.words).Msg("game started")
}

func (s *fallingScreen) restart(now time.Time) {
	s.stop()
	s.game.Reset()
	s.game.Resize(worldSize(s.cols, s.rows))
	s.input.Reset()
	s.begin(now)
}

func (s *fallingScreen) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.cols = width
	s.rows = max(minBoardRows, height-chromeRows)
	s.input.Width = max(10, width-len(s.input.Prompt)-1)
	s.game.Resize(worldSize(s.cols, s.rows))
}

func tick(gen int) tea.Cmd {
	return tea.Tick(falling.FrameDuration, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

// start schedules frames while the game runs.
func (s *fallingScreen) start() tea.Cmd {
	focus := s.input.Focus()
	if s.ticking || s.game.Status() != falling.Running {
		return focus
	}
	s.ticking = true
	s.gen++
	return tea.Batch(focus, tick(s.gen))
}

func (s *fallingScreen) stop() {
	s.ticking = false
	s.gen++
}

func (s *fallingScreen) frame(msg frameMsg, now time.Time) tea.Cmd {
	if !s.ticking || msg.gen != s.gen {
		return nil
	}
	s.game.Step(falling.FrameDuration)
	s.match()
	switch s.game.Status() {
	case falling.Ended:
		s.ticking = false
		s.save(now)
		return nil
	case falling.Paused:
		s.ticking = false
		return nil
	}
	return tick(s.gen)
}

func (s *fallingScreen) key(msg tea.KeyMsg, now time.Time) tea.Cmd {
	switch {
	case key.Matches(msg, keyRestart):
		s.restart(now)
		return s.start()
	case key.Matches(msg, keyPause):
		switch s.game.Status() {
		case falling.Running:
			s.game.Pause()
			s.stop()
			return nil
		case falling.Paused:
			s.game.Resume()
			return s.start()
		}
		return nil
	case key.Matches(msg, keyClear):
		s.input.Reset()
		return nil
	}
	if s.game.Status() != falling.Running {
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.match()
	return cmd
}

func (s *fallingScreen) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// match clears the input once it spells the active word.
func (s *fallingScreen) match() {
	res := s.game.EvaluateInput(s.input.Value())
	if !res.Matched {
		return
	}
	s.input.Reset()
	s.logger.Debug().Str("run_id", s.runID).Str("word", res.Word).Msg("word matched")
}

func (s *fallingScreen) save(now time.Time) {
	if s.saved {
		return
	}
	s.saved = true
	result := model.FallingResult{
		RunID:      s.runID,
		StartedAt:  s.startedAt,
		EndedAt:    now,
		Lang:       s.lang,
		Score:      s.game.Score(),
		Missed:     s.game.Config().Lives - s.game.Lives(),
		DurationMs: s.game.Elapsed().Milliseconds(),
	}
	s.logger.Info().
		Str("run_id", s.runID).
		Int("score", result.Score).
		Int64("duration_ms", result.DurationMs).
		Msg("game finished")
	if s.saver == nil {
		return
	}
	if _, err := s.saver.InsertFallingResult(context.Background(), result); err != nil {
		s.logger.Error().Err(err).Str("run_id", s.runID).Msg("failed to save result")
	}
}

func (s *fallingScreen) header() string {
	cfg := s.game.Config()
	lives := s.game.Lives()
	hearts := strings.Repeat("♥", lives) + strings.Repeat("♡", max(0, cfg.Lives-lives))
	line := fmt.Sprintf("Vidas: %s  Puntos: %d  Tiempo: %ds", hearts, s.game.Score(), int(s.game.Elapsed().Seconds()))
	switch s.game.Status() {
	case falling.Paused:
		line += "  PAUSA"
	case falling.Ended:
		line += "  Fin del juego"
	}
	return titleStyle.Render(line)
}

func (s *fallingScreen) view(help string) string {
	snap := s.game.Snapshot()
	marks := s.game.LetterMarks(s.input.Value())
	lines := []string{s.header()}
	lines = append(lines, renderBoard(snap, marks, s.cols, s.rows)...)
	lines = append(lines, renderCollector(snap.CollectorX, s.cols)...)
	lines = append(lines, s.input.View(), help)
	return strings.Join(lines, "\n")
}
