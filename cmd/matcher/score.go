package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/metrics"
	"github.com/jonathan/candidate-matcher/internal/observability"
	"github.com/jonathan/candidate-matcher/internal/profile"
)

type scoreOptions struct {
	candidate  string
	cv         string
	job        string
	jobText    string
	similarity float64
	out        string
	persist    bool
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the metrics bundle for one candidate against one job",
		Long:  "Scores a candidate profile and CV against a job profile and posting, given the precomputed semantic similarity, and prints the MetricsBundle as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.candidate, "candidate", "", "Path to CandidateProfile JSON file (required)")
	cmd.Flags().StringVar(&opts.cv, "cv", "", "Path to CV text or HTML file")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Path to JobProfile JSON file (required)")
	cmd.Flags().StringVar(&opts.jobText, "job-text", "", "Path to job posting text or HTML file")
	cmd.Flags().Float64Var(&opts.similarity, "similarity", 0, "Cosine similarity between CV and job embeddings, 0-1 (required)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the MetricsBundle JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.persist, "persist", false, "Store the bundle in PostgreSQL")
	markRequired(cmd, "candidate", "job", "similarity")

	return cmd
}

func runScore(cmd *cobra.Command, root *rootOptions, opts *scoreOptions) error {
	s, err := root.load()
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	candidate, err := profile.LoadCandidateProfile(opts.candidate)
	if err != nil {
		return err
	}
	job, err := profile.LoadJobProfile(opts.job)
	if err != nil {
		return err
	}
	cvText, err := readText(opts.cv)
	if err != nil {
		return err
	}
	jobText, err := readText(opts.jobText)
	if err != nil {
		return err
	}

	calc, err := metrics.NewCalculator(s.cfg.CalculatorOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create calculator: %w", err)
	}

	bundle := calc.CalculateAllMetrics(candidate, cvText, job, jobText, opts.similarity)
	s.logger.Debug("scored candidate",
		zap.String("candidate_id", candidate.ID),
		zap.String("job_id", job.ID),
		zap.Float64("composite", bundle.CompositeScore))
	if bundle.Details.DateParseFallback {
		s.logger.Warn("work history dates could not be parsed; employment gap score defaulted",
			zap.String("candidate_id", candidate.ID))
	}

	if s.cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintMetrics(candidate.Name, &bundle)
	}

	if opts.persist {
		database, err := s.openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.SaveMatchMetrics(cmd.Context(), uuid.Nil, job.ID, candidate.ID, bundle); err != nil {
			return err
		}
		s.logger.Info("stored match metrics", zap.String("candidate_id", candidate.ID), zap.String("job_id", job.ID))
	}

	return writeJSON(cmd.OutOrStdout(), opts.out, bundle)
}
