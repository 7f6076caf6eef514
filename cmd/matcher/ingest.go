package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/ingestion"
)

type ingestOptions struct {
	in     string
	outDir string
	name   string
}

func newIngestCmd(root *rootOptions) *cobra.Command {
	opts := &ingestOptions{}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Clean a CV or job posting into plain text",
		Long:  "Reads a text or HTML file, extracts and normalizes its text and prints it, or writes <name>.cleaned.txt and <name>.meta.json to --out-dir.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIngest(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.in, "in", "i", "", "Path to input text or HTML file (required)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Directory for the cleaned text and metadata; prints to stdout when empty")
	cmd.Flags().StringVar(&opts.name, "name", "", "File stem for outputs (default: input file name without extension)")
	markRequired(cmd, "in")

	return cmd
}

func runIngest(cmd *cobra.Command, root *rootOptions, opts *ingestOptions) error {
	s, err := root.load()
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	text, meta, err := ingestion.IngestFromFile(opts.in)
	if err != nil {
		return err
	}
	s.logger.Debug("ingested document",
		zap.String("source", meta.Source),
		zap.String("format", meta.Format),
		zap.Int("words", meta.WordCount))

	if opts.outDir == "" {
		_, err := cmd.OutOrStdout().Write([]byte(text + "\n"))
		return err
	}

	name := opts.name
	if name == "" {
		base := filepath.Base(opts.in)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := ingestion.WriteOutput(opts.outDir, name, text, meta); err != nil {
		return err
	}
	s.logger.Info("wrote cleaned document", zap.String("dir", opts.outDir), zap.String("name", name))
	return nil
}
