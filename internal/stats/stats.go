// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/arupa/internal/model"
	"github.com/verte-zerg/arupa/internal/wordguess"
)

const sparkChars = " .:-=+*#%@"

// WordleSummary aggregates word-guessing results.
type WordleSummary struct {
	Played        int
	Won           int
	WinRate       float64
	CurrentStreak int
	BestStreak    int
	AvgAttempts   float64
	// Distribution counts wins by number of attempts; index 0 is one attempt.
	Distribution [wordguess.Attempts]int
}

// SummarizeWordle computes totals, streaks and the guess distribution.
// results must be ordered oldest first.
func SummarizeWordle(results []model.WordleResult) WordleSummary {
	var s WordleSummary
	s.Played = len(results)
	streak := 0
	for _, r := range results {
		if !r.Won {
			streak = 0
			continue
		}
		s.Won++
		streak++
		s.BestStreak = max(s.BestStreak, streak)
		if r.Attempts >= 1 && r.Attempts <= wordguess.Attempts {
			s.Distribution[r.Attempts-1]++
		}
	}
	s.CurrentStreak = streak
	if s.Played > 0 {
		s.WinRate = float64(s.Won) / float64(s.Played)
	}
	wins := lo.Filter(results, func(r model.WordleResult, _ int) bool { return r.Won })
	if len(wins) > 0 {
		s.AvgAttempts = float64(lo.SumBy(wins, func(r model.WordleResult) int { return r.Attempts })) / float64(len(wins))
	}
	return s
}

// FallingSummary aggregates falling-words results.
type FallingSummary struct {
	Played      int
	BestScore   int
	AvgScore    float64
	TotalScore  int
	AvgDuration float64
}

// SummarizeFalling computes best and average scores.
func SummarizeFalling(results []model.FallingResult) FallingSummary {
	var s FallingSummary
	s.Played = len(results)
	if s.Played == 0 {
		return s
	}
	s.TotalScore = lo.SumBy(results, func(r model.FallingResult) int { return r.Score })
	s.BestScore = lo.MaxBy(results, func(a, b model.FallingResult) bool { return a.Score > b.Score }).Score
	s.AvgScore = float64(s.TotalScore) / float64(s.Played)
	totalMs := lo.SumBy(results, func(r model.FallingResult) int64 { return r.DurationMs })
	s.AvgDuration = float64(totalMs) / float64(s.Played) / 1000
	return s
}

// Scores extracts falling-words scores as a series.
func Scores(results []model.FallingResult) []float64 {
	return lo.Map(results, func(r model.FallingResult, _ int) float64 { return float64(r.Score) })
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(min(i+1, window))
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := lo.Min(values), lo.Max(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
