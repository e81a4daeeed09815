package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/arupa/internal/model"
)

const (
	barChars            = "▁▂▃▄▅▆▇█"
	defaultChartHeight  = 6
	chartAxisWidth      = 5
	terminalWidthBackup = 80
	dateFormat          = "2006-01-02 15:04"
)

// RenderReport prints every section of the report as plain text.
func RenderReport(w io.Writer, r Report, recent int) error {
	if r.Empty() {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	steps := []func() error{
		func() error { return RenderWordleSummary(w, r.WordleSummary) },
		func() error { return RenderDistribution(w, r.WordleSummary, 30) },
		func() error { return RenderFallingSummary(w, r.FallingSummary, r.ScoreCurve) },
		func() error { return RenderScoreChart(w, "Score Curve", r.ScoreCurve, 0, defaultChartHeight) },
		func() error { return RenderRecentWordle(w, r.Wordle, recent) },
		func() error { return RenderRecentFalling(w, r.Falling, recent) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// RenderWordleSummary prints win rate and streaks.
func RenderWordleSummary(w io.Writer, s WordleSummary) error {
	lines := []string{
		"Wordle",
		fmt.Sprintf("Played: %d", s.Played),
		fmt.Sprintf("Won: %d", s.Won),
		fmt.Sprintf("Win Rate: %.1f%%", s.WinRate*100),
		fmt.Sprintf("Current Streak: %d", s.CurrentStreak),
		fmt.Sprintf("Best Streak: %d", s.BestStreak),
		fmt.Sprintf("Avg Attempts: %.2f", s.AvgAttempts),
		"",
	}
	return writeLines(w, lines)
}

// RenderDistribution prints a horizontal bar per attempt count.
func RenderDistribution(w io.Writer, s WordleSummary, barWidth int) error {
	if s.Won == 0 {
		return nil
	}
	peak := 0
	for _, n := range s.Distribution {
		peak = max(peak, n)
	}
	lines := []string{"Guess Distribution"}
	for i, n := range s.Distribution {
		bar := 0
		if peak > 0 {
			bar = int(math.Round(float64(n) / float64(peak) * float64(barWidth)))
		}
		if n > 0 {
			bar = max(bar, 1)
		}
		lines = append(lines, fmt.Sprintf("%d %s %d", i+1, strings.Repeat("#", bar), n))
	}
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderFallingSummary prints scores and a sparkline of the score curve.
func RenderFallingSummary(w io.Writer, s FallingSummary, curve []float64) error {
	lines := []string{
		"Tux Typing",
		fmt.Sprintf("Played: %d", s.Played),
		fmt.Sprintf("Best Score: %d", s.BestScore),
		fmt.Sprintf("Avg Score: %.2f", s.AvgScore),
		fmt.Sprintf("Avg Duration: %.1fs", s.AvgDuration),
	}
	if len(curve) > 0 {
		lines = append(lines, "Trend: "+Sparkline(curve))
	}
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderRecentWordle prints the most recent word-guessing games.
func RenderRecentWordle(w io.Writer, results []model.WordleResult, n int) error {
	if len(results) == 0 {
		return nil
	}
	results = lastN(results, n)
	rows := make([][]string, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		rows = append(rows, []string{
			r.EndedAt.Local().Format(dateFormat),
			r.Lang,
			r.Target,
			outcome,
			fmt.Sprintf("%d", r.Attempts),
		})
	}
	lines := append([]string{"Recent Wordle"}, formatTable([]string{"Ended", "Lang", "Word", "Result", "Attempts"}, rows, map[int]bool{4: true})...)
	return writeLines(w, append(lines, ""))
}

// RenderRecentFalling prints the most recent falling-words games.
func RenderRecentFalling(w io.Writer, results []model.FallingResult, n int) error {
	if len(results) == 0 {
		return nil
	}
	results = lastN(results, n)
	rows := make([][]string, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		rows = append(rows, []string{
			r.EndedAt.Local().Format(dateFormat),
			r.Lang,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Missed),
			fmt.Sprintf("%.1fs", float64(r.DurationMs)/1000),
		})
	}
	lines := append([]string{"Recent Tux Typing"}, formatTable([]string{"Ended", "Lang", "Score", "Missed", "Duration"}, rows, map[int]bool{2: true, 3: true, 4: true})...)
	return writeLines(w, append(lines, ""))
}

// RenderScoreChart draws values as columns of block characters. A width of
// zero fits the chart to the terminal.
func RenderScoreChart(w io.Writer, title string, values []float64, width, height int) error {
	if len(values) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	if width <= 0 {
		width = ChartWidthFor(terminalWidth())
	}
	lines := ChartLines(values, width, height)
	if title != "" {
		lines = append([]string{title}, lines...)
	}
	return writeLines(w, append(lines, ""))
}

// ChartWidthFor returns the number of columns left for bars.
func ChartWidthFor(totalWidth int) int {
	return max(10, totalWidth-chartAxisWidth-2)
}

// ChartLines renders the chart rows top to bottom. The newest values are
// kept when there are more values than columns.
func ChartLines(values []float64, width, height int) []string {
	if len(values) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	peak := math.Max(1, maxFloat(values))
	levels := []rune(barChars)
	steps := height * len(levels)
	lines := make([]string, 0, height+1)
	for row := height - 1; row >= 0; row-- {
		var b strings.Builder
		label := ""
		switch row {
		case height - 1:
			label = fmt.Sprintf("%.0f", peak)
		case 0:
			label = "0"
		}
		fmt.Fprintf(&b, "%*s │", chartAxisWidth, label)
		for _, v := range values {
			filled := int(math.Round(v / peak * float64(steps)))
			cell := filled - row*len(levels)
			switch {
			case cell <= 0:
				b.WriteRune(' ')
			case cell >= len(levels):
				b.WriteRune(levels[len(levels)-1])
			default:
				b.WriteRune(levels[cell-1])
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

func maxFloat(values []float64) float64 {
	peak := math.Inf(-1)
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	return peak
}

func lastN[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
