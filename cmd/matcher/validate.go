package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/profile"
	"github.com/jonathan/candidate-matcher/internal/schemas"
)

type validateOptions struct {
	candidate  string
	job        string
	candidates string
	schema     string
	document   string
}

func newValidateCmd(_ *rootOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate candidate, job or pool files without scoring",
		Long:  "Runs the boundary checks (JSON Schema, decoding, field constraints) on the given input files and reports the first problem in each.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.candidate, "candidate", "", "Path to CandidateProfile JSON file")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Path to JobProfile JSON file")
	cmd.Flags().StringVar(&opts.candidates, "candidates", "", "Path to candidate pool JSON file")
	cmd.Flags().StringVar(&opts.schema, "schema", "", "Path to a JSON Schema file to check --document against")
	cmd.Flags().StringVar(&opts.document, "document", "", "Path to a JSON document validated with --schema")
	cmd.MarkFlagsOneRequired("candidate", "job", "candidates", "document")
	cmd.MarkFlagsRequiredTogether("schema", "document")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions) error {
	out := cmd.OutOrStdout()
	failed := 0

	check := func(kind, path string, load func(string) error) {
		if path == "" {
			return
		}
		if err := load(path); err != nil {
			failed++
			_, _ = fmt.Fprintf(out, "✗ %s %s: %v\n", kind, path, err)
			return
		}
		_, _ = fmt.Fprintf(out, "✓ %s %s\n", kind, path)
	}

	check("candidate", opts.candidate, func(p string) error {
		_, err := profile.LoadCandidateProfile(p)
		return err
	})
	check("job", opts.job, func(p string) error {
		_, err := profile.LoadJobProfile(p)
		return err
	})
	check("pool", opts.candidates, func(p string) error {
		_, err := profile.LoadCandidatePool(p)
		return err
	})

	check("document", opts.document, func(p string) error {
		return schemas.ValidateJSON(opts.schema, p)
	})

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}
