// Package store handles SQLite persistence of finished game results.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/arupa/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for result history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS wordle_results (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			target TEXT NOT NULL,
			won INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS falling_results (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			score INTEGER NOT NULL,
			missed INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_wordle_results_ended_at ON wordle_results(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_falling_results_ended_at ON falling_results(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertWordleResult stores a finished word-guessing session.
func (s *Store) InsertWordleResult(ctx context.Context, r model.WordleResult) (int64, error) {
	won := 0
	if r.Won {
		won = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO wordle_results (run_id, started_at, ended_at, lang, target, won, attempts, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.StartedAt.Format(time.RFC3339Nano),
		r.EndedAt.Format(time.RFC3339Nano),
		r.Lang,
		r.Target,
		won,
		r.Attempts,
		r.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertFallingResult stores a finished falling-words game.
func (s *Store) InsertFallingResult(ctx context.Context, r model.FallingResult) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO falling_results (run_id, started_at, ended_at, lang, score, missed, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.StartedAt.Format(time.RFC3339Nano),
		r.EndedAt.Format(time.RFC3339Nano),
		r.Lang,
		r.Score,
		r.Missed,
		r.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// filter builds the WHERE clause shared by the list queries. Last keeps the
// most recent rows while the result stays in ascending order.
func filter(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, cfg.Lang)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

func limitClause(cfg model.StatsConfig, args []any) (string, []any) {
	if cfg.Last <= 0 {
		return "", args
	}
	return " LIMIT ?", append(args, cfg.Last)
}

// ListWordleResults returns word-guessing results filtered by cfg, oldest first.
func (s *Store) ListWordleResults(ctx context.Context, cfg model.StatsConfig) ([]model.WordleResult, error) {
	where, args := filter(cfg)
	limit, args := limitClause(cfg, args)
	query := fmt.Sprintf(`SELECT * FROM (
		SELECT id, run_id, started_at, ended_at, lang, target, won, attempts, duration_ms
		FROM wordle_results
		WHERE %s
		ORDER BY ended_at DESC, id DESC%s
	) ORDER BY ended_at ASC, id ASC`, where, limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.WordleResult
	for rows.Next() {
		var r model.WordleResult
		var startedAt, endedAt string
		var won int
		if err := rows.Scan(&r.ID, &r.RunID, &startedAt, &endedAt, &r.Lang, &r.Target, &won, &r.Attempts, &r.DurationMs); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		r.Won = won != 0
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListFallingResults returns falling-words results filtered by cfg, oldest first.
func (s *Store) ListFallingResults(ctx context.Context, cfg model.StatsConfig) ([]model.FallingResult, error) {
	where, args := filter(cfg)
	limit, args := limitClause(cfg, args)
	query := fmt.Sprintf(`SELECT * FROM (
		SELECT id, run_id, started_at, ended_at, lang, score, missed, duration_ms
		FROM falling_results
		WHERE %s
		ORDER BY ended_at DESC, id DESC%s
	) ORDER BY ended_at ASC, id ASC`, where, limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.FallingResult
	for rows.Next() {
		var r model.FallingResult
		var startedAt, endedAt string
		if err := rows.Scan(&r.ID, &r.RunID, &startedAt, &endedAt, &r.Lang, &r.Score, &r.Missed, &r.DurationMs); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
