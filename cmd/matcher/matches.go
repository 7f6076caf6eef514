package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/db"
)

type matchesOptions struct {
	jobID       string
	candidateID string
	limit       int
	runs        bool
	runID       string
}

func newMatchesCmd(root *rootOptions) *cobra.Command {
	opts := &matchesOptions{}

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Query stored match metrics and ranking runs",
		Long:  "Lists the best stored matches for a job, shows one stored candidate/job bundle, or lists recent ranking runs for a job.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatches(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.jobID, "job-id", "", "Job ID (required)")
	cmd.Flags().StringVar(&opts.candidateID, "candidate-id", "", "Show the stored bundle for this candidate only")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", db.DefaultListLimit, "Maximum rows to list")
	cmd.Flags().BoolVar(&opts.runs, "runs", false, "List ranking runs instead of matches")
	cmd.Flags().StringVar(&opts.runID, "run-id", "", "Show a single ranking run by ID")
	cmd.MarkFlagsMutuallyExclusive("candidate-id", "runs", "run-id")
	markRequired(cmd, "job-id")

	return cmd
}

func runMatches(cmd *cobra.Command, root *rootOptions, opts *matchesOptions) error {
	var runID uuid.UUID
	if opts.runID != "" {
		parsed, err := uuid.Parse(opts.runID)
		if err != nil {
			return fmt.Errorf("invalid --run-id %q: %w", opts.runID, err)
		}
		runID = parsed
	}

	s, err := root.load()
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	database, err := s.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer database.Close()
	ctx := cmd.Context()

	switch {
	case opts.candidateID != "":
		record, err := database.GetMatchMetrics(ctx, opts.candidateID, opts.jobID)
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("no stored metrics for candidate %s and job %s", opts.candidateID, opts.jobID)
		}
		return writeJSON(cmd.OutOrStdout(), "", record)
	case runID != uuid.Nil:
		run, err := database.GetRankingRun(ctx, runID)
		if err != nil {
			return err
		}
		if run == nil || run.JobID != opts.jobID {
			return fmt.Errorf("no ranking run %s for job %s", runID, opts.jobID)
		}
		return writeJSON(cmd.OutOrStdout(), "", run)
	case opts.runs:
		runs, err := database.ListRankingRuns(ctx, opts.jobID, opts.limit)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), "", runs)
	default:
		records, err := database.ListTopMatches(ctx, opts.jobID, opts.limit)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), "", records)
	}
}
