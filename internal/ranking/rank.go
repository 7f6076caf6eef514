// Package ranking ranks a retrieved candidate pool against a job profile.
//
// A ranking run retrieves the nearest candidates, optionally drops those failing the
// job's hard constraints, scores the rest with a metrics.Calculator, then sorts,
// truncates to top-K and explains each result.
package ranking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-matcher/internal/metrics"
	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	// DefaultConcurrency bounds how many candidates are scored at once
	DefaultConcurrency = 4
	// DefaultMinSimilarity drops retrieval hits below this cosine similarity
	DefaultMinSimilarity = 0.5
	// searchLimitMultiplier over-fetches so constraint filtering still leaves top-K candidates
	searchLimitMultiplier = 3
)

// Request describes one ranking run
type Request struct {
	Job          types.JobProfile
	JobText      string
	JobEmbedding []float32
	TopK         int
	// SearchLimit defaults to 3×TopK when zero
	SearchLimit int
	// MinSimilarity defaults to DefaultMinSimilarity when nil
	MinSimilarity    *float64
	ApplyConstraints bool
	Overrides        Overrides
}

// Ranker runs the retrieve, filter, score, sort and explain pipeline
type Ranker struct {
	calc        *metrics.Calculator
	retriever   Retriever
	logger      *zap.Logger
	recorder    Recorder
	concurrency int
}

// Option configures a Ranker
type Option func(*Ranker)

// WithLogger sets the logger used for pipeline progress
func WithLogger(logger *zap.Logger) Option {
	return func(r *Ranker) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConcurrency sets how many candidates are scored in parallel
func WithConcurrency(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithRecorder sets the sink for pipeline measurements
func WithRecorder(rec Recorder) Option {
	return func(r *Ranker) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// NewRanker creates a Ranker over the given calculator and retriever
func NewRanker(calc *metrics.Calculator, retriever Retriever, opts ...Option) *Ranker {
	r := &Ranker{
		calc:        calc,
		retriever:   retriever,
		logger:      zap.NewNop(),
		recorder:    nopRecorder{},
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores the retrieved candidates against req.Job and returns the top-K, best first.
// Retrieval errors are wrapped and returned; scoring itself never fails.
func (r *Ranker) Rank(ctx context.Context, req Request) (*types.RankedCandidates, error) {
	if req.TopK <= 0 {
		return nil, fmt.Errorf("top_k must be positive, got %d", req.TopK)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		r.recorder.RankCompleted(time.Since(start))
	}()

	query := SearchQuery{
		Embedding:     req.JobEmbedding,
		Limit:         req.SearchLimit,
		MinSimilarity: DefaultMinSimilarity,
	}
	if query.Limit <= 0 {
		query.Limit = max(req.TopK*searchLimitMultiplier, req.TopK)
	}
	if req.MinSimilarity != nil {
		query.MinSimilarity = *req.MinSimilarity
	}

	var (
		constraints    Constraints
		filteredAtScan int
	)
	if req.ApplyConstraints {
		constraints = BuildConstraints(req.Job, req.Overrides)
		query.Filter = func(p types.CandidateProfile) bool {
			ok, reason := constraints.Matches(p)
			if !ok {
				filteredAtScan++
				r.logger.Debug("candidate filtered",
					zap.String("candidate_id", p.ID),
					zap.String("reason", reason))
			}
			return ok
		}
	}

	candidates, err := r.retriever.Search(ctx, query)
	if err != nil {
		r.recorder.RetrievalFailed()
		return nil, fmt.Errorf("failed to retrieve candidates: %w", err)
	}
	r.recorder.CandidatesRetrieved(len(candidates))
	r.logger.Info("retrieved candidates",
		zap.String("job_id", req.Job.ID),
		zap.Int("count", len(candidates)),
		zap.Int("filtered_at_scan", filteredAtScan),
		zap.Int("limit", query.Limit),
		zap.Float64("min_similarity", query.MinSimilarity))

	result := &types.RankedCandidates{
		JobID:      req.Job.ID,
		Considered: len(candidates) + filteredAtScan,
	}

	eligible := candidates
	if req.ApplyConstraints {
		result.ConstraintsApplied = constraints.Describe()
		eligible = r.filter(candidates, constraints)
		result.Filtered = filteredAtScan + len(candidates) - len(eligible)
		r.recorder.CandidatesFiltered(result.Filtered)
	}

	scored, err := r.score(ctx, eligible, req)
	if err != nil {
		return nil, err
	}

	result.Ranked = SortAndTruncate(scored, req.TopK)
	result.Summary = Summarize(req.Job, result.ConstraintsApplied)
	r.logger.Info("ranking complete",
		zap.String("job_id", req.Job.ID),
		zap.Int("considered", result.Considered),
		zap.Int("filtered", result.Filtered),
		zap.Int("returned", len(result.Ranked)),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

// filter keeps candidates satisfying every constraint
func (r *Ranker) filter(candidates []Candidate, constraints Constraints) []Candidate {
	eligible := make([]Candidate, 0, len(candidates))
	for _, cand := range candidates {
		ok, reason := constraints.Matches(cand.Profile)
		if !ok {
			r.logger.Debug("candidate filtered",
				zap.String("candidate_id", cand.ID),
				zap.String("reason", reason))
			continue
		}
		eligible = append(eligible, cand)
	}
	return eligible
}

// score computes metrics and breakdowns for every candidate with bounded concurrency.
// Cancellation is checked before each candidate.
func (r *Ranker) score(ctx context.Context, candidates []Candidate, req Request) ([]types.RankedCandidate, error) {
	scored := make([]types.RankedCandidate, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			bundle := r.calc.CalculateAllMetrics(cand.Profile, cand.CVText, req.Job, req.JobText, cand.Similarity)
			r.recorder.CandidateScored(bundle.CompositeScore)

			scored[i] = types.RankedCandidate{
				CandidateID:        cand.ID,
				Name:               cand.Profile.Name,
				CurrentRole:        CurrentRole(cand.Profile),
				SemanticSimilarity: bundle.Details.SemanticSimilarity,
				Metrics:            bundle,
				Breakdown:          Explain(cand.Profile, req.Job, bundle),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring interrupted: %w", err)
	}
	return scored, nil
}
