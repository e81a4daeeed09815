package stats

import (
	"context"

	"github.com/verte-zerg/arupa/internal/model"
)

// ResultSource lists stored results; *store.Store satisfies it.
type ResultSource interface {
	ListWordleResults(ctx context.Context, cfg model.StatsConfig) ([]model.WordleResult, error)
	ListFallingResults(ctx context.Context, cfg model.StatsConfig) ([]model.FallingResult, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Wordle         []model.WordleResult
	Falling        []model.FallingResult
	WordleSummary  WordleSummary
	FallingSummary FallingSummary
	ScoreCurve     []float64
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, src ResultSource, cfg model.StatsConfig) (Report, error) {
	wordle, err := src.ListWordleResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	falling, err := src.ListFallingResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Wordle:         wordle,
		Falling:        falling,
		WordleSummary:  SummarizeWordle(wordle),
		FallingSummary: SummarizeFalling(falling),
		ScoreCurve:     MovingAverage(Scores(falling), cfg.CurveWindow),
	}, nil
}

// Empty reports whether no results were found.
func (r Report) Empty() bool {
	return len(r.Wordle) == 0 && len(r.Falling) == 0
}
