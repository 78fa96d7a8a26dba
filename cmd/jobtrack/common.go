package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-insights/internal/config"
	"github.com/jonathan/jobsearch-insights/internal/dataset"
	"github.com/jonathan/jobsearch-insights/internal/db"
	"github.com/jonathan/jobsearch-insights/internal/insights"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// sourceFlags selects where a command reads records from: a dataset file,
// or a user's rows in PostgreSQL.
type sourceFlags struct {
	dataPath    string
	userID      string
	databaseURL string
	now         string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dataPath, "data", "d", "", "Dataset file (JSON or YAML)")
	cmd.Flags().StringVarP(&f.userID, "user-id", "u", "", "Load the dataset for this user from the database")
	cmd.Flags().StringVar(&f.databaseURL, "db-url", "", "Database URL (defaults to $DATABASE_URL)")
	cmd.Flags().StringVar(&f.now, "now", "", "Evaluate as of this RFC3339 time instead of the current time")
	cmd.MarkFlagsMutuallyExclusive("data", "user-id")
	cmd.MarkFlagsOneRequired("data", "user-id")
}

// load returns the dataset and, for files, the records skipped while parsing.
func (f *sourceFlags) load(ctx context.Context) (*types.Dataset, dataset.SkipReport, error) {
	if f.dataPath != "" {
		ds, skips, err := dataset.Load(f.dataPath)
		if err != nil {
			return nil, skips, err
		}
		for _, s := range skips.Skips {
			slog.Debug("skipped record", "collection", s.Collection, "index", s.Index, "id", s.ID, "reason", s.Reason)
		}
		return ds, skips, nil
	}

	userID, err := uuid.Parse(f.userID)
	if err != nil {
		return nil, dataset.SkipReport{}, fmt.Errorf("invalid user id %q: %w", f.userID, err)
	}
	database, err := connect(ctx, f.databaseURL)
	if err != nil {
		return nil, dataset.SkipReport{}, err
	}
	defer database.Close()

	ds, err := database.LoadDataset(ctx, userID)
	if err != nil {
		return nil, dataset.SkipReport{}, fmt.Errorf("failed to load dataset for user %s: %w", userID, err)
	}
	return ds, dataset.SkipReport{}, nil
}

func (f *sourceFlags) evalTime() (time.Time, error) {
	return parseNow(f.now)
}

// report loads the dataset and builds a report with the configured engine.
func (f *sourceFlags) report(ctx context.Context) (*types.Report, error) {
	now, err := f.evalTime()
	if err != nil {
		return nil, err
	}
	engine, err := loadEngine(settingsPath)
	if err != nil {
		return nil, err
	}
	ds, _, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := engine.BuildReport(ds, now)
	slog.Debug("report built",
		"applications", len(ds.Applications),
		"interviews", len(ds.Interviews),
		"duration", time.Since(start),
	)
	return report, nil
}

func connect(ctx context.Context, databaseURL string) (*db.DB, error) {
	if databaseURL == "" {
		databaseURL = config.LoadEnv().DatabaseURL
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set (set DATABASE_URL environment variable or use --db-url flag)")
	}
	return db.Connect(ctx, databaseURL)
}

// loadEngine builds an engine from the settings file, or from defaults when
// path is empty.
func loadEngine(path string) (*insights.Engine, error) {
	settings := config.DefaultSettings()
	if path != "" {
		loaded, err := config.LoadSettings(path)
		if err != nil {
			return nil, err
		}
		settings = *loaded
		slog.Debug("loaded settings", "path", path)
	}
	return insights.New(settings)
}

// parseNow parses an RFC3339 time; empty means the current time.
func parseNow(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: expected RFC3339", s)
	}
	return t, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
