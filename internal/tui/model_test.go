package tui

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/arupa/internal/dictionary"
	"github.com/verte-zerg/arupa/internal/falling"
	"github.com/verte-zerg/arupa/internal/model"
	"github.com/verte-zerg/arupa/internal/wordguess"
)

type fakeLoader struct {
	dict dictionary.Dictionary
	err  error
}

func (f fakeLoader) Load(context.Context) (dictionary.Dictionary, error) {
	return f.dict, f.err
}

type fakeSaver struct {
	wordle  []model.WordleResult
	falling []model.FallingResult
}

func (f *fakeSaver) InsertWordleResult(_ context.Context, r model.WordleResult) (int64, error) {
	f.wordle = append(f.wordle, r)
	return int64(len(f.wordle)), nil
}

func (f *fakeSaver) InsertFallingResult(_ context.Context, r model.FallingResult) (int64, error) {
	f.falling = append(f.falling, r)
	return int64(len(f.falling)), nil
}

type recordingAnnouncer struct {
	texts []string
}

func (r *recordingAnnouncer) Announce(text string) {
	r.texts = append(r.texts, text)
}

func mustParse(t *testing.T, data string) dictionary.Dictionary {
	t.Helper()
	dict, err := dictionary.Parse([]byte(data), "es", "ay")
	if err != nil {
		t.Fatalf("parse dictionary: %v", err)
	}
	return dict
}

// loadedModel runs Init and feeds the loaded dictionary back into Update.
func loadedModel(t *testing.T, opts Options) *Model {
	t.Helper()
	opts.Logger = zerolog.Nop()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	m := NewModel(opts)
	msg := m.Init()()
	m.Update(msg)
	if !m.loaded {
		t.Fatalf("expected dictionary to be loaded")
	}
	return m
}

func typeRunes(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestLoadingIgnoresKeys(t *testing.T) {
	m := NewModel(Options{Logger: zerolog.Nop()})
	if !strings.Contains(m.View(), "Cargando") {
		t.Fatalf("expected loading view, got %q", m.View())
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("expected no command while loading")
	}
}

func TestMenuNavigation(t *testing.T) {
	m := loadedModel(t, Options{Loader: fakeLoader{dict: dictionary.Embedded()}})
	if m.Screen() != ScreenMenu {
		t.Fatalf("expected menu screen")
	}
	if !strings.Contains(m.View(), "Tux Typing") {
		t.Fatalf("expected menu items in view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != ScreenFalling {
		t.Fatalf("expected falling screen, got %d", m.Screen())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != ScreenMenu || m.falling.game.Status() != falling.Paused {
		t.Fatalf("expected paused game behind the menu")
	}
	typeRunes(m, "1")
	if m.Screen() != ScreenWordle {
		t.Fatalf("expected wordle screen from shortcut")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestLoaderFailureFallsBack(t *testing.T) {
	m := loadedModel(t, Options{
		Loader: fakeLoader{err: errors.New("offline")},
		Start:  ScreenWordle,
	})
	if m.Dictionary().Len() != dictionary.Embedded().Len() {
		t.Fatalf("expected embedded dictionary after failure, got %d entries", m.Dictionary().Len())
	}
	target := m.wordle.game.Session().Target()
	if target == wordguess.FallbackWord {
		t.Fatalf("expected an embedded Aymara word, got the fallback")
	}
	if _, ok := m.Dictionary().Translate(target); !ok {
		t.Fatalf("expected target %q from the embedded dictionary", target)
	}
}

func TestEmptyDictionaryFallsBackToDefaultWord(t *testing.T) {
	m := loadedModel(t, Options{
		Loader: fakeLoader{dict: dictionary.Dictionary{SourceLang: "es", TargetLang: "ay"}},
		Start:  ScreenWordle,
	})
	if got := m.wordle.game.Session().Target(); got != wordguess.FallbackWord {
		t.Fatalf("expected fallback target, got %q", got)
	}
}

func TestWordleWinSavesOnce(t *testing.T) {
	saver := &fakeSaver{}
	announcer := &recordingAnnouncer{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := loadedModel(t, Options{
		Loader:    fakeLoader{dict: mustParse(t, `[{"es": "casa", "ay": "uta"}]`)},
		Saver:     saver,
		Announcer: announcer,
		Start:     ScreenWordle,
		Now:       func() time.Time { return now },
	})
	typeRunes(m, "ut")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "La palabra debe tener 3 letras") {
		t.Fatalf("expected length message in view")
	}
	typeRunes(m, "a")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.wordle.game.Session().Status() != wordguess.Won {
		t.Fatalf("expected win")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(saver.wordle) != 1 {
		t.Fatalf("expected one saved result, got %d", len(saver.wordle))
	}
	got := saver.wordle[0]
	if !got.Won || got.Attempts != 1 || got.Target != "UTA" || got.Lang != "ay" || got.RunID == "" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if len(announcer.texts) != 1 || announcer.texts[0] != "UTA" {
		t.Fatalf("expected one announcement, got %v", announcer.texts)
	}
	if !strings.Contains(m.View(), "Español: CASA") {
		t.Fatalf("expected translation in view:\n%s", m.View())
	}

	firstRun := got.RunID
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.wordle.finished() || m.wordle.runID == firstRun {
		t.Fatalf("expected a fresh run after ctrl+r")
	}
}

func fallingModel(t *testing.T, saver *fakeSaver, cfg falling.Config) *Model {
	t.Helper()
	return loadedModel(t, Options{
		Loader:  fakeLoader{dict: mustParse(t, `[{"es": "oso", "ay": "uta"}]`)},
		Saver:   saver,
		Falling: cfg,
		Start:   ScreenFalling,
	})
}

// advance feeds frames until cond holds or limit frames have run.
func advance(m *Model, limit int, cond func() bool) bool {
	for i := 0; i < limit; i++ {
		if cond() {
			return true
		}
		m.Update(frameMsg{gen: m.falling.gen})
	}
	return cond()
}

func TestFallingMatchClearsInput(t *testing.T) {
	m := fallingModel(t, &fakeSaver{}, falling.DefaultConfig())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 25})
	if !advance(m, 400, func() bool { return len(m.falling.game.Snapshot().Groups) > 0 }) {
		t.Fatalf("expected a group to spawn")
	}
	active, ok := m.falling.game.ActiveGroup()
	if !ok || active.Word != "uta" {
		t.Fatalf("unexpected active group: %+v", active)
	}
	typeRunes(m, "ut")
	if m.falling.input.Value() != "ut" {
		t.Fatalf("expected partial input, got %q", m.falling.input.Value())
	}
	typeRunes(m, "a")
	if m.falling.input.Value() != "" {
		t.Fatalf("expected input cleared after match, got %q", m.falling.input.Value())
	}
	if snap := m.falling.game.Snapshot(); len(snap.Queue) != 1 {
		t.Fatalf("expected matched group queued, got %v", snap.Queue)
	}
	if !advance(m, 200, func() bool { return m.falling.game.Score() == 1 }) {
		t.Fatalf("expected collector to consume the group")
	}
}

func TestFallingPauseDropsStaleFrames(t *testing.T) {
	m := fallingModel(t, &fakeSaver{}, falling.DefaultConfig())
	m.Update(frameMsg{gen: m.falling.gen})
	staleGen := m.falling.gen
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.falling.game.Status() != falling.Paused {
		t.Fatalf("expected paused game")
	}
	elapsed := m.falling.game.Elapsed()
	m.Update(frameMsg{gen: staleGen})
	if m.falling.game.Elapsed() != elapsed {
		t.Fatalf("expected stale frame to be ignored")
	}
	typeRunes(m, "x")
	if m.falling.input.Value() != "" {
		t.Fatalf("expected input ignored while paused")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.falling.game.Status() != falling.Running || !m.falling.ticking {
		t.Fatalf("expected resumed game")
	}
	m.Update(frameMsg{gen: m.falling.gen})
	if m.falling.game.Elapsed() <= elapsed {
		t.Fatalf("expected time to advance after resume")
	}
}

func TestFallingGameOverSavesOnce(t *testing.T) {
	saver := &fakeSaver{}
	cfg := falling.DefaultConfig()
	cfg.Lives = 1
	m := fallingModel(t, saver, cfg)
	if !advance(m, 5000, func() bool { return m.falling.game.Status() == falling.Ended }) {
		t.Fatalf("expected the game to end")
	}
	if m.falling.ticking {
		t.Fatalf("expected ticking to stop after game over")
	}
	m.Update(frameMsg{gen: m.falling.gen})
	if len(saver.falling) != 1 {
		t.Fatalf("expected one saved result, got %d", len(saver.falling))
	}
	got := saver.falling[0]
	if got.Missed != 1 || got.Score != 0 || got.Lang != "ay" || got.DurationMs <= 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if !strings.Contains(m.View(), "Fin del juego") {
		t.Fatalf("expected game over header")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.falling.game.Status() != falling.Running || m.falling.game.Lives() != 1 {
		t.Fatalf("expected restart to reset the board")
	}
}
