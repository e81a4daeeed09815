// Package model defines shared data structures.
package model

import "time"

// Game identifiers stored with every result.
const (
	GameWordle  = "wordle"
	GameFalling = "falling"
)

// WordleResult captures a finished word-guessing session.
type WordleResult struct {
	ID         int64
	RunID      string
	StartedAt  time.Time
	EndedAt    time.Time
	Lang       string
	Target     string
	Won        bool
	Attempts   int
	DurationMs int64
}

// FallingResult captures a finished falling-words game.
type FallingResult struct {
	ID         int64
	RunID      string
	StartedAt  time.Time
	EndedAt    time.Time
	Lang       string
	Score      int
	Missed     int
	DurationMs int64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lang        string
	Since       *time.Time
	Last        int
	CurveWindow int
}
