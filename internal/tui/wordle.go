package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/arupa/internal/dictionary"
	"github.com/verte-zerg/arupa/internal/model"
	"github.com/verte-zerg/arupa/internal/wordguess"
)

const maxMessageWidth = 60

var (
	tileBase    = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	correctTile = tileBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#538D4E"))
	presentTile = tileBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#B59F3B"))
	absentTile  = tileBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3A3A3C"))
	unsetTile   = tileBase.Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#262626"))
	cursorTile  = unsetTile.Underline(true)
)

type wordleScreen struct {
	game   *wordguess.Game
	saver  ResultSaver
	logger zerolog.Logger

	runID     string
	startedAt time.Time
	saved     bool
}

func newWordleScreen(opts Options, dict dictionary.Dictionary, logger zerolog.Logger) *wordleScreen {
	s := &wordleScreen{
		game:   wordguess.NewGame(opts.Wordle, dict, opts.Rand, opts.Announcer),
		saver:  opts.Saver,
		logger: logger.With().Str("game", model.GameWordle).Logger(),
	}
	s.begin(opts.Now())
	return s
}

func (s *wordleScreen) begin(now time.Time) {
	s.runID = uuid.NewString()
	s.startedAt = now
	s.saved = false
	s.logger.Info().Str("run_id", s.runID).Int("letters", s.game.Session().Width()).Msg("game started")
}

func (s *wordleScreen) finished() bool {
	return s.game.Session().Status() != wordguess.InProgress
}

func (s *wordleScreen) restart(pickNew bool, now time.Time) {
	s.game.Reset(pickNew)
	s.begin(now)
}

func (s *wordleScreen) key(msg tea.KeyMsg, now time.Time) {
	switch {
	case key.Matches(msg, keyNewWord):
		s.restart(true, now)
		return
	case msg.Type == tea.KeyEnter:
		s.game.Key(wordguess.Key{Type: wordguess.KeyEnter})
	case msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete:
		s.game.Key(wordguess.Key{Type: wordguess.KeyBackspace})
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			s.game.Key(wordguess.Letter(r))
		}
	default:
		return
	}
	if s.finished() {
		s.save(now)
	}
}

// save records the finished session once per run.
func (s *wordleScreen) save(now time.Time) {
	if s.saved {
		return
	}
	s.saved = true
	session := s.game.Session()
	result := model.WordleResult{
		RunID:      s.runID,
		StartedAt:  s.startedAt,
		EndedAt:    now,
		Lang:       s.game.Config().Lang,
		Target:     session.Target(),
		Won:        session.Status() == wordguess.Won,
		Attempts:   session.Used(),
		DurationMs: now.Sub(s.startedAt).Milliseconds(),
	}
	s.logger.Info().
		Str("run_id", s.runID).
		Bool("won", result.Won).
		Int("attempts", result.Attempts).
		Msg("game finished")
	if s.saver == nil {
		return
	}
	if _, err := s.saver.InsertWordleResult(context.Background(), result); err != nil {
		s.logger.Error().Err(err).Str("run_id", s.runID).Msg("failed to save result")
	}
}

func (s *wordleScreen) view(width int) string {
	session := s.game.Session()
	grid := renderGrid(session)
	messageWidth := maxMessageWidth
	if width > 0 {
		messageWidth = min(messageWidth, width)
	}
	lines := []string{
		titleStyle.Render("Wordle"),
		"",
		grid,
		"",
		footerStyle.Render(s.game.AttemptsLabel()),
	}
	if msg := s.game.Message(); msg != "" {
		lines = append(lines, wrapStyledRunes(styleText(msg, messageStyle), messageWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func renderGrid(session *wordguess.Session) string {
	row, col := session.Cursor()
	inProgress := session.Status() == wordguess.InProgress
	rows := session.Rows()
	lines := make([]string, 0, len(rows))
	for r, cells := range rows {
		tiles := make([]string, 0, len(cells))
		for c, cell := range cells {
			tiles = append(tiles, renderTile(cell, inProgress && r == row && c == col))
		}
		lines = append(lines, strings.Join(tiles, " "))
	}
	return strings.Join(lines, "\n\n")
}

func renderTile(cell wordguess.Cell, cursor bool) string {
	letter := " "
	if cell.Letter != 0 {
		letter = string(cell.Letter)
	}
	switch cell.Verdict {
	case wordguess.Correct:
		return correctTile.Render(letter)
	case wordguess.Present:
		return presentTile.Render(letter)
	case wordguess.Absent:
		return absentTile.Render(letter)
	}
	if cursor {
		if cell.Letter == 0 {
			letter = "_"
		}
		return cursorTile.Render(letter)
	}
	return unsetTile.Render(letter)
}
