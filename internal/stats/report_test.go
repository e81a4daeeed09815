package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/arupa/internal/model"
	"github.com/verte-zerg/arupa/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "arupa.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		if _, err := st.InsertWordleResult(ctx, model.WordleResult{
			RunID:      "w",
			StartedAt:  start,
			EndedAt:    end,
			Lang:       "ay",
			Target:     "UTA",
			Won:        i != 1,
			Attempts:   i + 2,
			DurationMs: end.Sub(start).Milliseconds(),
		}); err != nil {
			t.Fatalf("insert wordle: %v", err)
		}
		if _, err := st.InsertFallingResult(ctx, model.FallingResult{
			RunID:      "f",
			StartedAt:  start,
			EndedAt:    end,
			Lang:       "ay",
			Score:      (i + 1) * 2,
			Missed:     3,
			DurationMs: end.Sub(start).Milliseconds(),
		}); err != nil {
			t.Fatalf("insert falling: %v", err)
		}
	}

	cfg := model.StatsConfig{
		Lang:        "ay",
		Last:        2,
		CurveWindow: 2,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Wordle) != 2 || len(report.Falling) != 2 {
		t.Fatalf("expected 2 results each, got %d and %d", len(report.Wordle), len(report.Falling))
	}
	if report.WordleSummary.Won != 1 || report.WordleSummary.CurrentStreak != 1 {
		t.Fatalf("unexpected wordle summary: %+v", report.WordleSummary)
	}
	if report.FallingSummary.BestScore != 6 {
		t.Fatalf("unexpected falling summary: %+v", report.FallingSummary)
	}
	if len(report.ScoreCurve) != 2 || report.ScoreCurve[1] != 5 {
		t.Fatalf("unexpected score curve: %v", report.ScoreCurve)
	}

	var buf bytes.Buffer
	if err := RenderReport(&buf, report, 5); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Win Rate: 50.0%", "Best Score: 6", "Guess Distribution", "Recent Tux Typing"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
