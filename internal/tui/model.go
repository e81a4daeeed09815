// Package tui provides the Bubble Tea game interface: a menu, the
// word-guessing grid and the falling-words board.
package tui

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/arupa/internal/dictionary"
	"github.com/verte-zerg/arupa/internal/falling"
	"github.com/verte-zerg/arupa/internal/model"
	"github.com/verte-zerg/arupa/internal/wordguess"
)

// Screen identifies what the model is showing.
type Screen int

// Screens.
const (
	ScreenMenu Screen = iota
	ScreenWordle
	ScreenFalling
)

const loadTimeout = 20 * time.Second

// DictionaryLoader loads the shared dictionary; dictionary.Loader satisfies it.
type DictionaryLoader interface {
	Load(ctx context.Context) (dictionary.Dictionary, error)
}

// ResultSaver records finished games; *store.Store satisfies it.
type ResultSaver interface {
	InsertWordleResult(ctx context.Context, r model.WordleResult) (int64, error)
	InsertFallingResult(ctx context.Context, r model.FallingResult) (int64, error)
}

// Options configures the model. Nil Saver and Announcer disable persistence
// and speech.
type Options struct {
	Loader      DictionaryLoader
	Wordle      wordguess.Config
	Falling     falling.Config
	FallingLang string
	Saver       ResultSaver
	Announcer   wordguess.Announcer
	Logger      zerolog.Logger
	Rand        *rand.Rand
	Start       Screen
	Now         func() time.Time
}

type dictLoadedMsg struct {
	dict dictionary.Dictionary
	err  error
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

var menuItems = []string{"Wordle", "Tux Typing", "Salir"}

// Model implements the Bubble Tea game UI.
type Model struct {
	opts   Options
	logger zerolog.Logger

	dict   dictionary.Dictionary
	loaded bool
	screen Screen
	cursor int

	width  int
	height int
	help   help.Model

	wordle  *wordleScreen
	falling *fallingScreen
}

// NewModel constructs the game UI. The dictionary loads once Init runs.
func NewModel(opts Options) *Model {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Wordle.Lang == "" {
		opts.Wordle = wordguess.DefaultConfig()
	}
	if opts.FallingLang == "" {
		opts.FallingLang = dictionary.DefaultTargetLang
	}
	if opts.Falling == (falling.Config{}) {
		opts.Falling = falling.DefaultConfig()
	}
	return &Model{
		opts:   opts,
		logger: opts.Logger.With().Str("component", "tui").Logger(),
		help:   help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	loader := m.opts.Loader
	return func() tea.Msg {
		if loader == nil {
			return dictLoadedMsg{dict: dictionary.Embedded()}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		dict, err := loader.Load(ctx)
		return dictLoadedMsg{dict: dict, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.falling != nil {
			m.falling.resize(m.width, m.height)
		}
		return m, nil
	case dictLoadedMsg:
		return m, m.onDictionary(msg)
	case frameMsg:
		if m.falling == nil {
			return m, nil
		}
		return m, m.falling.frame(msg, m.opts.Now())
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if !m.loaded {
			return m, nil
		}
		switch m.screen {
		case ScreenWordle:
			return m, m.updateWordle(msg)
		case ScreenFalling:
			return m, m.updateFalling(msg)
		default:
			return m, m.updateMenu(msg)
		}
	}
	if m.screen == ScreenFalling && m.falling != nil {
		return m, m.falling.updateInput(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content, footer string
	switch {
	case !m.loaded:
		content = pendingStyle.Render("Cargando diccionario...")
	case m.screen == ScreenWordle && m.wordle != nil:
		content = m.wordle.view(m.width)
		footer = m.help.View(wordleKeys)
	case m.screen == ScreenFalling && m.falling != nil:
		return m.falling.view(m.help.View(fallingKeys))
	default:
		content = m.viewMenu()
		footer = m.help.View(menuKeys)
	}
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

// Dictionary returns the loaded dictionary.
func (m *Model) Dictionary() dictionary.Dictionary {
	return m.dict
}

// Screen returns the active screen.
func (m *Model) Screen() Screen {
	return m.screen
}

func (m *Model) onDictionary(msg dictLoadedMsg) tea.Cmd {
	m.dict = msg.dict
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Msg("dictionary unavailable, using embedded dictionary")
		m.dict = dictionary.Embedded()
	} else {
		m.logger.Info().Int("entries", m.dict.Len()).Int("skipped", m.dict.Skipped).Msg("dictionary loaded")
	}
	m.loaded = true
	return m.open(m.opts.Start)
}

func (m *Model) open(screen Screen) tea.Cmd {
	m.screen = screen
	switch screen {
	case ScreenWordle:
		if m.wordle == nil {
			m.wordle = newWordleScreen(m.opts, m.dict, m.logger)
		} else if m.wordle.finished() {
			m.wordle.restart(true, m.opts.Now())
		}
		return nil
	case ScreenFalling:
		if m.falling == nil {
			m.falling = newFallingScreen(m.opts, m.dict, m.logger)
		} else if m.falling.game.Status() == falling.Ended {
			m.falling.restart(m.opts.Now())
		} else {
			m.falling.game.Resume()
		}
		m.falling.resize(m.width, m.height)
		return m.falling.start()
	}
	return nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keyQuit), key.Matches(msg, keyBack):
		return tea.Quit
	case key.Matches(msg, keyUp):
		m.cursor = (m.cursor + len(menuItems) - 1) % len(menuItems)
	case key.Matches(msg, keyDown):
		m.cursor = (m.cursor + 1) % len(menuItems)
	case key.Matches(msg, keySelect):
		return m.choose(m.cursor)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		if idx := int(msg.Runes[0] - '1'); idx >= 0 && idx < len(menuItems) {
			m.cursor = idx
			return m.choose(idx)
		}
	}
	return nil
}

func (m *Model) choose(idx int) tea.Cmd {
	switch idx {
	case 0:
		return m.open(ScreenWordle)
	case 1:
		return m.open(ScreenFalling)
	default:
		return tea.Quit
	}
}

func (m *Model) viewMenu() string {
	lines := []string{titleStyle.Render("arupa"), ""}
	for i, item := range menuItems {
		label := "  " + item
		style := pendingStyle
		if i == m.cursor {
			label = "> " + item
			style = selectedStyle
		}
		lines = append(lines, style.Render(label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) updateWordle(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keyBack) {
		m.screen = ScreenMenu
		return nil
	}
	m.wordle.key(msg, m.opts.Now())
	return nil
}

func (m *Model) updateFalling(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keyBack) {
		m.falling.game.Pause()
		m.falling.stop()
		m.screen = ScreenMenu
		return nil
	}
	return m.falling.key(msg, m.opts.Now())
}
