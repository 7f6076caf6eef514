package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Ranking run statuses
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// DefaultListLimit is used when ListTopMatches or ListRankingRuns get a non-positive limit
const DefaultListLimit = 10

// MaxListLimit caps list queries
const MaxListLimit = 500

// RankingRun represents one invocation of the ranking pipeline for a job
type RankingRun struct {
	ID          uuid.UUID  `json:"id"`
	JobID       string     `json:"job_id"`
	Status      string     `json:"status"`
	TopK        int        `json:"top_k"`
	Considered  int        `json:"considered"`
	Filtered    int        `json:"filtered"`
	Returned    int        `json:"returned"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// RunSummary holds the counters recorded when a run completes. Error is stored for failed runs.
type RunSummary struct {
	Considered int
	Filtered   int
	Returned   int
	Error      string
}

// SummaryFromRanking extracts run counters from a ranking result
func SummaryFromRanking(result *types.RankedCandidates) RunSummary {
	if result == nil {
		return RunSummary{}
	}
	return RunSummary{
		Considered: result.Considered,
		Filtered:   result.Filtered,
		Returned:   len(result.Ranked),
	}
}

// MatchRecord is the stored metrics bundle for one (candidate, job) pair.
// A later run for the same pair overwrites the earlier record.
type MatchRecord struct {
	CandidateID string              `json:"candidate_id"`
	JobID       string              `json:"job_id"`
	RunID       *uuid.UUID          `json:"run_id,omitempty"`
	Metrics     types.MetricsBundle `json:"metrics"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// IsValidRunStatus reports whether status is a known run status
func IsValidRunStatus(status string) bool {
	switch status {
	case RunStatusRunning, RunStatusCompleted, RunStatusFailed:
		return true
	}
	return false
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
