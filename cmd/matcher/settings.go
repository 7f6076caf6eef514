package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/db"
	"github.com/jonathan/candidate-matcher/internal/ingestion"
	"github.com/jonathan/candidate-matcher/internal/logger"
)

// settings is the resolved configuration and logger for one command invocation
type settings struct {
	cfg    config.Config
	logger *zap.Logger
}

// load reads the config file (if any), layers defaults and environment under it and
// applies the persistent flags on top.
func (o *rootOptions) load() (*settings, error) {
	cfg := config.Config{}
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	cfg.ApplyEnv()
	cfg.Verbose = cfg.Verbose || o.verbose
	cfg.LogJSON = cfg.LogJSON || o.logJSON

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &settings{cfg: cfg, logger: log}, nil
}

// readText ingests an optional CV or job-posting file; an empty path yields empty text
func readText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to ingest %s: %w", path, err)
	}
	return text, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := w.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// openDatabase connects to PostgreSQL and makes sure the ranking tables exist
func (s *settings) openDatabase(cmd *cobra.Command) (*db.DB, error) {
	if s.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("persistence requires database_url in the config file or %s", config.DatabaseURLEnv)
	}
	database, err := db.Connect(cmd.Context(), s.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(cmd.Context()); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}
