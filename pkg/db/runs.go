package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded invocation of the toolchain.
type Run struct {
	RunID      string
	Command    string // index, generate, watch
	Status     string // success, failed
	Detail     string // preset id on success, error text on failure
	Issue      int64  // submission token for generate runs, 0 otherwise
	EntryCount int
	DurationMS int64
	CreatedAt  time.Time
}

// RecordRun inserts a run row plus the files it produced. A missing
// RunID is filled in with a fresh uuid; the id used is returned.
func (db *DB) RecordRun(run Run, files []string) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, command, status, detail, issue, entry_count, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Command, run.Status, run.Detail, run.Issue, run.EntryCount, run.DurationMS,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, path := range files {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO run_files (run_id, path) VALUES (?, ?)`,
			run.RunID, path,
		); err != nil {
			return "", fmt.Errorf("failed to insert run file %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return run.RunID, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(
		`SELECT run_id, command, status, detail, issue, entry_count, duration_ms, created_at
		 FROM runs ORDER BY created_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.RunID, &run.Command, &run.Status, &run.Detail,
			&run.Issue, &run.EntryCount, &run.DurationMS, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunFiles returns the files a run produced, in insertion order.
func (db *DB) GetRunFiles(runID string) ([]string, error) {
	rows, err := db.Query(`SELECT path FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan run file: %w", err)
		}
		files = append(files, path)
	}
	return files, rows.Err()
}
