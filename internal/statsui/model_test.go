package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/arupa/internal/model"
)

type fakeSource struct {
	wordle  []model.WordleResult
	falling []model.FallingResult
	err     error
	calls   int
	lastCfg model.StatsConfig
}

func (f *fakeSource) ListWordleResults(_ context.Context, cfg model.StatsConfig) ([]model.WordleResult, error) {
	f.calls++
	f.lastCfg = cfg
	return f.wordle, f.err
}

func (f *fakeSource) ListFallingResults(_ context.Context, cfg model.StatsConfig) ([]model.FallingResult, error) {
	return f.falling, f.err
}

func sampleSource() *fakeSource {
	end := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &fakeSource{
		wordle: []model.WordleResult{
			{Lang: "ay", Target: "UTA", Won: true, Attempts: 2, EndedAt: end},
			{Lang: "ay", Target: "JUKUMARI", Won: false, Attempts: 5, EndedAt: end.Add(time.Minute)},
		},
		falling: []model.FallingResult{
			{Lang: "es", Score: 7, Missed: 3, DurationMs: 42000, EndedAt: end},
		},
	}
}

func sizedModel(t *testing.T, src *fakeSource) *Model {
	t.Helper()
	m := NewModel(src, model.StatsConfig{CurveWindow: 1})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestOverviewShowsSummaries(t *testing.T) {
	m := sizedModel(t, sampleSource())
	view := m.View()
	for _, want := range []string{"Overview", "Win Rate", "50.0%", "Best Score", "Guess Distribution"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestTabsCycleAndListRows(t *testing.T) {
	m := sizedModel(t, sampleSource())
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabWordle {
		t.Fatalf("expected wordle tab, got %d", m.activeTab)
	}
	if rows := m.tables[tabWordle].Rows(); len(rows) != 2 || rows[0][2] != "JUKUMARI" {
		t.Fatalf("expected newest wordle result first, got %v", rows)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if rows := m.tables[tabFalling].Rows(); len(rows) != 1 || rows[0][4] != "42.0s" {
		t.Fatalf("unexpected falling rows: %v", rows)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected tabs to wrap, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabFalling {
		t.Fatalf("expected left to wrap to last tab, got %d", m.activeTab)
	}
}

func TestLangFilterRefreshesReport(t *testing.T) {
	src := sampleSource()
	m := sizedModel(t, src)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}
	m.filterInput.SetValue(" AY ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected filter mode to close")
	}
	if src.lastCfg.Lang != "ay" {
		t.Fatalf("expected normalized lang filter, got %q", src.lastCfg.Lang)
	}
}

func TestCurveWindowKeys(t *testing.T) {
	src := sampleSource()
	m := sizedModel(t, src)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'='}})
	if m.cfg.CurveWindow != 2 || src.lastCfg.CurveWindow != 2 {
		t.Fatalf("expected window 2, got %d", m.cfg.CurveWindow)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	if m.cfg.CurveWindow != 1 {
		t.Fatalf("expected window floor of 1, got %d", m.cfg.CurveWindow)
	}
}

func TestSourceErrorShownInFooter(t *testing.T) {
	m := sizedModel(t, &fakeSource{err: errors.New("db locked")})
	if !strings.Contains(m.View(), "db locked") {
		t.Fatalf("expected error in view")
	}
}

func TestEmptyReport(t *testing.T) {
	m := sizedModel(t, &fakeSource{})
	if !strings.Contains(m.View(), "No games found.") {
		t.Fatalf("expected empty message")
	}
}

func TestFitLinesPadsAndTruncates(t *testing.T) {
	got := fitLines("ab\ncd\nef", 3, 2)
	if got != "ab \ncd " {
		t.Fatalf("unexpected fit: %q", got)
	}
	if truncateLine("JUKUMARI", 6) != "JUK..." {
		t.Fatalf("unexpected truncate: %q", truncateLine("JUKUMARI", 6))
	}
}
