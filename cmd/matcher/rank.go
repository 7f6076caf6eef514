package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/db"
	"github.com/jonathan/candidate-matcher/internal/metrics"
	"github.com/jonathan/candidate-matcher/internal/observability"
	"github.com/jonathan/candidate-matcher/internal/profile"
	"github.com/jonathan/candidate-matcher/internal/ranking"
	"github.com/jonathan/candidate-matcher/internal/retrieval"
	"github.com/jonathan/candidate-matcher/internal/schemas"
	"github.com/jonathan/candidate-matcher/internal/types"
)

type rankOptions struct {
	job           string
	jobText       string
	candidates    string
	jobEmbedding  string
	topK          int
	minSimilarity float64
	constraints   bool
	overrides     string
	out           string
	metricsOut    string
	persist       bool
}

func newRankCmd(root *rootOptions) *cobra.Command {
	opts := &rankOptions{}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank a candidate pool against a job",
		Long: "Indexes a pre-embedded candidate pool, retrieves the candidates nearest to the job embedding, " +
			"optionally applies the job's hard constraints, scores each candidate and prints the top-K as JSON.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRank(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Path to JobProfile JSON file (required)")
	cmd.Flags().StringVar(&opts.jobText, "job-text", "", "Path to job posting text or HTML file")
	cmd.Flags().StringVar(&opts.candidates, "candidates", "", "Path to candidate pool JSON file; may be omitted when store_path already holds an index")
	cmd.Flags().StringVar(&opts.jobEmbedding, "job-embedding", "", "Path to a JSON array with the job embedding; overrides the pool's job_embedding")
	cmd.Flags().IntVarP(&opts.topK, "top-k", "k", 0, "Number of candidates to return (default from config)")
	cmd.Flags().Float64Var(&opts.minSimilarity, "min-similarity", -1, "Drop retrieval hits below this similarity (default from config)")
	cmd.Flags().BoolVar(&opts.constraints, "constraints", false, "Drop candidates failing the job's hard constraints before scoring")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "Path to JSON file overriding individual hard constraints")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the ranking JSON to this file instead of stdout")
	cmd.Flags().StringVar(&opts.metricsOut, "metrics-out", "", "Write Prometheus text metrics for the run to this file")
	cmd.Flags().BoolVar(&opts.persist, "persist", false, "Store the run and its ranked metrics in PostgreSQL")
	markRequired(cmd, "job")

	return cmd
}

func runRank(cmd *cobra.Command, root *rootOptions, opts *rankOptions) error {
	s, err := root.load()
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()
	ctx := cmd.Context()

	job, err := profile.LoadJobProfile(opts.job)
	if err != nil {
		return err
	}
	jobText, err := readText(opts.jobText)
	if err != nil {
		return err
	}

	store, err := retrieval.NewStore(retrieval.StoreConfig{
		PersistPath: s.cfg.StorePath,
		Collection:  s.cfg.Collection,
	})
	if err != nil {
		return err
	}

	var embedding []float32
	if opts.candidates != "" {
		pool, err := profile.LoadCandidatePool(opts.candidates)
		if err != nil {
			return err
		}
		if err := store.Index(ctx, poolDocuments(pool)); err != nil {
			return err
		}
		embedding = pool.JobEmbedding
		s.logger.Info("indexed candidate pool", zap.Int("candidates", len(pool.Candidates)), zap.Int("index_size", store.Count()))
	} else if store.Count() == 0 {
		return fmt.Errorf("no candidates: pass --candidates or configure store_path with an existing index")
	}

	if opts.jobEmbedding != "" {
		embedding, err = loadEmbedding(opts.jobEmbedding)
		if err != nil {
			return err
		}
	}
	if len(embedding) == 0 {
		return fmt.Errorf("no job embedding: set job_embedding in the pool file or pass --job-embedding")
	}

	overrides, err := loadOverrides(opts.overrides)
	if err != nil {
		return err
	}

	calc, err := metrics.NewCalculator(s.cfg.CalculatorOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create calculator: %w", err)
	}

	registry := prometheus.NewRegistry()
	ranker := ranking.NewRanker(calc, store,
		ranking.WithLogger(s.logger),
		ranking.WithConcurrency(s.cfg.Concurrency),
		ranking.WithRecorder(observability.NewRecorder(observability.WithRegisterer(registry))),
	)

	req := ranking.Request{
		Job:              job,
		JobText:          jobText,
		JobEmbedding:     embedding,
		TopK:             s.cfg.TopK,
		SearchLimit:      s.cfg.SearchLimit,
		MinSimilarity:    s.cfg.MinSimilarity,
		ApplyConstraints: opts.constraints,
		Overrides:        overrides,
	}
	if opts.topK > 0 {
		req.TopK = opts.topK
	}
	if opts.minSimilarity >= 0 {
		req.MinSimilarity = &opts.minSimilarity
	}

	var result *types.RankedCandidates
	if opts.persist {
		database, err := s.openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()
		result, err = rankAndPersist(ctx, s.logger, database, ranker, req)
		if err != nil {
			return err
		}
	} else {
		result, err = ranker.Rank(ctx, req)
		if err != nil {
			return err
		}
	}

	if s.cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintJobProfile(&job)
		printer.PrintRanking(result)
	}

	if opts.metricsOut != "" {
		f, err := os.Create(opts.metricsOut)
		if err != nil {
			return fmt.Errorf("failed to create metrics file: %w", err)
		}
		defer f.Close()
		if err := observability.WriteText(f, registry); err != nil {
			return err
		}
	}

	return writeJSON(cmd.OutOrStdout(), opts.out, result)
}

// runStore records ranking runs and their results; *db.DB implements it
type runStore interface {
	CreateRankingRun(ctx context.Context, jobID string, topK int) (uuid.UUID, error)
	CompleteRankingRun(ctx context.Context, runID uuid.UUID, status string, summary db.RunSummary) error
	SaveRanking(ctx context.Context, runID uuid.UUID, jobID string, ranked []types.RankedCandidate) error
}

var _ runStore = (*db.DB)(nil)

// rankAndPersist runs the ranker inside a recorded ranking run. Any failure after the run is
// created marks it failed with the error message.
func rankAndPersist(ctx context.Context, logger *zap.Logger, store runStore, ranker *ranking.Ranker, req ranking.Request) (*types.RankedCandidates, error) {
	if req.Job.ID == "" {
		return nil, fmt.Errorf("persisting a ranking requires the job profile to have an id")
	}
	runID, err := store.CreateRankingRun(ctx, req.Job.ID, req.TopK)
	if err != nil {
		return nil, err
	}

	fail := func(summary db.RunSummary, cause error) error {
		summary.Error = cause.Error()
		if cerr := store.CompleteRankingRun(ctx, runID, db.RunStatusFailed, summary); cerr != nil {
			logger.Warn("failed to mark ranking run failed",
				zap.String("run_id", runID.String()),
				zap.Error(cerr))
		}
		return cause
	}

	result, err := ranker.Rank(ctx, req)
	if err != nil {
		return nil, fail(db.RunSummary{}, err)
	}

	summary := db.SummaryFromRanking(result)
	if err := store.SaveRanking(ctx, runID, req.Job.ID, result.Ranked); err != nil {
		return nil, fail(summary, err)
	}
	if err := store.CompleteRankingRun(ctx, runID, db.RunStatusCompleted, summary); err != nil {
		return nil, fail(summary, err)
	}
	logger.Info("stored ranking run", zap.String("run_id", runID.String()), zap.Int("ranked", len(result.Ranked)))
	return result, nil
}

func poolDocuments(pool *profile.Pool) []retrieval.CandidateDocument {
	docs := make([]retrieval.CandidateDocument, 0, len(pool.Candidates))
	for _, c := range pool.Candidates {
		docs = append(docs, retrieval.CandidateDocument{
			ID:        c.ID,
			CVText:    c.CVText,
			Profile:   c.Profile,
			Embedding: c.Embedding,
		})
	}
	return docs
}

func loadEmbedding(path string) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job embedding %s: %w", path, err)
	}
	var embedding []float32
	if err := json.Unmarshal(data, &embedding); err != nil {
		return nil, fmt.Errorf("failed to parse job embedding: %w", err)
	}
	return embedding, nil
}

// overridesSchema rejects unknown keys so a misspelled override cannot be silently ignored
const overridesSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"required_skills": {"type": "array", "items": {"type": "string"}},
		"min_experience_years": {"type": "integer", "minimum": 0},
		"seniority_level": {"type": "string"},
		"remote_type": {"type": "string"},
		"locations": {"type": "array", "items": {"type": "string"}},
		"required_languages": {"type": "array", "items": {"type": "string"}}
	}
}`

func loadOverrides(path string) (ranking.Overrides, error) {
	var overrides ranking.Overrides
	if path == "" {
		return overrides, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return overrides, fmt.Errorf("failed to read overrides %s: %w", path, err)
	}
	if err := schemas.ValidateJSONString(overridesSchema, string(data)); err != nil {
		return overrides, fmt.Errorf("invalid overrides %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &overrides); err != nil {
		return overrides, fmt.Errorf("failed to parse overrides: %w", err)
	}
	return overrides, nil
}
