package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const runColumns = `id, job_id, status, top_k, considered, filtered, returned, created_at, completed_at,
	COALESCE(error_message, '')`

// CreateRankingRun records the start of a ranking run and returns its ID
func (db *DB) CreateRankingRun(ctx context.Context, jobID string, topK int) (uuid.UUID, error) {
	if jobID == "" {
		return uuid.Nil, fmt.Errorf("job ID is required")
	}

	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO ranking_runs (id, job_id, status, top_k) VALUES ($1, $2, $3, $4)`,
		id, jobID, RunStatusRunning, topK,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create ranking run: %w", err)
	}
	return id, nil
}

// CompleteRankingRun marks a run finished with the given status and counters
func (db *DB) CompleteRankingRun(ctx context.Context, runID uuid.UUID, status string, summary RunSummary) error {
	if !IsValidRunStatus(status) || status == RunStatusRunning {
		return fmt.Errorf("invalid completion status: %q", status)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE ranking_runs
		 SET status = $1, considered = $2, filtered = $3, returned = $4, completed_at = NOW(),
		     error_message = NULLIF($5, '')
		 WHERE id = $6`,
		status, summary.Considered, summary.Filtered, summary.Returned, summary.Error, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete ranking run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("ranking run not found: %s", runID)
	}
	return nil
}

// GetRankingRun retrieves a run by ID; it returns nil, nil when the run does not exist
func (db *DB) GetRankingRun(ctx context.Context, runID uuid.UUID) (*RankingRun, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+runColumns+` FROM ranking_runs WHERE id = $1`, runID)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ranking run: %w", err)
	}
	return run, nil
}

// ListRankingRuns returns the most recent runs for a job
func (db *DB) ListRankingRuns(ctx context.Context, jobID string, limit int) ([]RankingRun, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+runColumns+` FROM ranking_runs WHERE job_id = $1 ORDER BY created_at DESC LIMIT $2`,
		jobID, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking runs: %w", err)
	}
	defer rows.Close()

	var runs []RankingRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ranking run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func scanRun(row pgx.Row) (*RankingRun, error) {
	var run RankingRun
	err := row.Scan(&run.ID, &run.JobID, &run.Status, &run.TopK,
		&run.Considered, &run.Filtered, &run.Returned, &run.CreatedAt, &run.CompletedAt, &run.Error)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
