package database

import (
	"fmt"
)

var _ RunRepository = (*RunStore)(nil)

// RunStore handles database operations for digest run history
type RunStore struct {
	db *DB
}

// NewRunStore creates a new run repository
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// InsertRun records a started run.
func (s *RunStore) InsertRun(run Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, started_at, window_start, window_end)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC(), run.WindowStart.UTC(), run.WindowEnd.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// FinishRun stores the outcome of a completed run.
func (s *RunStore) FinishRun(run Run) error {
	var finishedAt any
	if run.FinishedAt != nil {
		finishedAt = run.FinishedAt.UTC()
	}
	_, err := s.db.Exec(`
		UPDATE runs
		SET finished_at = ?, total_changes = ?, issues_changed = ?, posted = ?, error = ?
		WHERE id = ?
	`, finishedAt, run.TotalChanges, run.IssuesChanged, run.Posted, run.Error, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// GetRecentRuns returns the most recent runs, newest first.
func (s *RunStore) GetRecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, window_start, window_end,
		       total_changes, issues_changed, posted, error
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.WindowStart, &run.WindowEnd,
			&run.TotalChanges, &run.IssuesChanged, &run.Posted, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	return runs, nil
}

// GetRunStats returns aggregate run counters for the stats endpoint.
func (s *RunStore) GetRunStats() (int, int, int, error) {
	var total, posted, failed int
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN posted THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN error != '' THEN 1 ELSE 0 END), 0)
		FROM runs
	`).Scan(&total, &posted, &failed)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read run stats: %w", err)
	}
	return total, posted, failed, nil
}
