package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-matcher/internal/types"
)

const upsertMatchSQL = `INSERT INTO match_metrics
	(candidate_id, job_id, run_id, composite_score, skills_match_score, ai_confidence_score, metrics)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (candidate_id, job_id) DO UPDATE SET
		run_id = EXCLUDED.run_id,
		composite_score = EXCLUDED.composite_score,
		skills_match_score = EXCLUDED.skills_match_score,
		ai_confidence_score = EXCLUDED.ai_confidence_score,
		metrics = EXCLUDED.metrics,
		updated_at = NOW()`

// SaveMatchMetrics stores the bundle for a (candidate, job) pair, replacing any earlier one.
// runID may be uuid.Nil for ad-hoc scoring outside a run.
func (db *DB) SaveMatchMetrics(ctx context.Context, runID uuid.UUID, jobID, candidateID string, bundle types.MetricsBundle) error {
	args, err := matchArgs(runID, jobID, candidateID, bundle)
	if err != nil {
		return err
	}
	if _, err := db.pool.Exec(ctx, upsertMatchSQL, args...); err != nil {
		return fmt.Errorf("failed to save match metrics for %s: %w", candidateID, err)
	}
	return nil
}

// SaveRanking stores every ranked candidate of a run in one transaction
func (db *DB) SaveRanking(ctx context.Context, runID uuid.UUID, jobID string, ranked []types.RankedCandidate) error {
	if len(ranked) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rc := range ranked {
		args, err := matchArgs(runID, jobID, rc.CandidateID, rc.Metrics)
		if err != nil {
			return err
		}
		batch.Queue(upsertMatchSQL, args...)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	results := tx.SendBatch(ctx, batch)
	for _, rc := range ranked {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to save match metrics for %s: %w", rc.CandidateID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to flush match metrics: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ranking: %w", err)
	}
	return nil
}

// GetMatchMetrics retrieves the stored bundle for a pair; it returns nil, nil when none exists
func (db *DB) GetMatchMetrics(ctx context.Context, candidateID, jobID string) (*MatchRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT candidate_id, job_id, run_id, metrics, updated_at
		 FROM match_metrics WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID,
	)
	record, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match metrics: %w", err)
	}
	return record, nil
}

// ListTopMatches returns the best stored matches for a job, highest composite first
func (db *DB) ListTopMatches(ctx context.Context, jobID string, limit int) ([]MatchRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT candidate_id, job_id, run_id, metrics, updated_at
		 FROM match_metrics WHERE job_id = $1
		 ORDER BY composite_score DESC, candidate_id ASC
		 LIMIT $2`,
		jobID, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list top matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		record, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match metrics: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func matchArgs(runID uuid.UUID, jobID, candidateID string, bundle types.MetricsBundle) ([]any, error) {
	if jobID == "" || candidateID == "" {
		return nil, fmt.Errorf("candidate ID and job ID are required")
	}
	payload, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics bundle: %w", err)
	}

	var run *uuid.UUID
	if runID != uuid.Nil {
		run = &runID
	}
	return []any{
		candidateID, jobID, run,
		bundle.CompositeScore, bundle.SkillsMatchScore, bundle.AIConfidenceScore,
		payload,
	}, nil
}

func scanMatch(row pgx.Row) (*MatchRecord, error) {
	var record MatchRecord
	var payload []byte
	if err := row.Scan(&record.CandidateID, &record.JobID, &record.RunID, &payload, &record.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &record.Metrics); err != nil {
		return nil, fmt.Errorf("failed to decode metrics bundle: %w", err)
	}
	return &record, nil
}
