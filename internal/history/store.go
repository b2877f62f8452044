package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	historydb "nutrition-tracker/internal/history/history_db"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run records the outcome of a single pipeline execution.
type Run struct {
	ID           string
	Query        string
	State        string // last state reached
	Outcome      string
	FailureKind  string
	ArtifactPath string
	Warnings     int
	StartedAt    time.Time
	Duration     time.Duration
}

// Store handles persistence of runs to SQLite.
type Store struct {
	queries *historydb.Queries
	db      *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: historydb.New(db),
		db:      db,
	}
}

// Record saves a run to the database.
func (s *Store) Record(ctx context.Context, r Run) error {
	ts := r.StartedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	err := s.queries.InsertRun(ctx, historydb.InsertRunParams{
		ID:           r.ID,
		Query:        r.Query,
		State:        r.State,
		Outcome:      r.Outcome,
		FailureKind:  r.FailureKind,
		ArtifactPath: r.ArtifactPath,
		Warnings:     int64(r.Warnings),
		StartedAt:    ts.UTC().Format(timeLayout),
		DurationMs:   r.Duration.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", r.ID, err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.queries.ListRecentRuns(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]Run, 0, len(rows))
	for _, row := range rows {
		startedAt, err := time.Parse(timeLayout, row.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at %q: %w", row.StartedAt, err)
		}
		runs = append(runs, Run{
			ID:           row.ID,
			Query:        row.Query,
			State:        row.State,
			Outcome:      row.Outcome,
			FailureKind:  row.FailureKind,
			ArtifactPath: row.ArtifactPath,
			Warnings:     int(row.Warnings),
			StartedAt:    startedAt,
			Duration:     time.Duration(row.DurationMs) * time.Millisecond,
		})
	}
	return runs, nil
}

// Cleanup removes runs older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays).UTC().Format(timeLayout)
	n, err := s.queries.CleanupRuns(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up runs: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
