package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/arupa/internal/model"
)

func TestSummarizeWordle(t *testing.T) {
	results := []model.WordleResult{
		{Won: true, Attempts: 3},
		{Won: true, Attempts: 1},
		{Won: false, Attempts: 5},
		{Won: true, Attempts: 3},
		{Won: true, Attempts: 5},
		{Won: true, Attempts: 2},
	}
	s := SummarizeWordle(results)
	if s.Played != 6 || s.Won != 5 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.CurrentStreak != 3 || s.BestStreak != 3 {
		t.Fatalf("unexpected streaks: current %d best %d", s.CurrentStreak, s.BestStreak)
	}
	want := [5]int{1, 1, 2, 0, 1}
	if s.Distribution != want {
		t.Fatalf("unexpected distribution: %v", s.Distribution)
	}
	if s.AvgAttempts != 14.0/5.0 {
		t.Fatalf("unexpected avg attempts: %v", s.AvgAttempts)
	}
	if s.WinRate < 0.83 || s.WinRate > 0.84 {
		t.Fatalf("unexpected win rate: %v", s.WinRate)
	}
	if empty := SummarizeWordle(nil); empty.Played != 0 || empty.WinRate != 0 {
		t.Fatalf("expected zero summary, got %+v", empty)
	}
}

func TestSummarizeFalling(t *testing.T) {
	s := SummarizeFalling([]model.FallingResult{
		{Score: 4, DurationMs: 60000},
		{Score: 10, DurationMs: 90000},
		{Score: 1, DurationMs: 30000},
	})
	if s.Played != 3 || s.BestScore != 10 || s.TotalScore != 15 || s.AvgScore != 5 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.AvgDuration != 60 {
		t.Fatalf("unexpected avg duration: %v", s.AvgDuration)
	}
	if empty := SummarizeFalling(nil); empty.Played != 0 || empty.BestScore != 0 {
		t.Fatalf("expected zero summary, got %+v", empty)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if same := MovingAverage([]float64{1, 5}, 0); same[1] != 5 {
		t.Fatalf("expected passthrough for window 0")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" && got != "===" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestChartLines(t *testing.T) {
	lines := ChartLines([]float64{0, 2, 4}, 10, 2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "    4 │") || !strings.HasPrefix(lines[1], "    0 │") {
		t.Fatalf("unexpected axis labels: %q", lines)
	}
	if !strings.HasSuffix(lines[0], " █") {
		t.Fatalf("expected full column for peak, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], " ██") {
		t.Fatalf("expected lower row filled for 2 and 4, got %q", lines[1])
	}
	if ChartLines(nil, 10, 2) != nil {
		t.Fatalf("expected nil chart for no values")
	}
}

func TestRenderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, Report{}, 5); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No games found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
