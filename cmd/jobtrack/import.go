package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-insights/internal/dataset"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a dataset file into the database for a user",
	Long:  "Replaces all of a user's stored records with the contents of a dataset file. Records skipped while parsing are not imported.",
	RunE:  runImport,
}

var (
	importData        string
	importUserID      string
	importDatabaseURL string
	importMigrate     bool
)

func init() {
	importCmd.Flags().StringVarP(&importData, "data", "d", "", "Dataset file (JSON or YAML) (required)")
	importCmd.Flags().StringVarP(&importUserID, "user-id", "u", "", "User ID (required)")
	importCmd.Flags().StringVar(&importDatabaseURL, "db-url", "", "Database URL (defaults to $DATABASE_URL)")
	importCmd.Flags().BoolVar(&importMigrate, "migrate", false, "Create database tables before importing")

	if err := importCmd.MarkFlagRequired("data"); err != nil {
		panic(fmt.Sprintf("failed to mark data flag as required: %v", err))
	}
	if err := importCmd.MarkFlagRequired("user-id"); err != nil {
		panic(fmt.Sprintf("failed to mark user-id flag as required: %v", err))
	}

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(importUserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", importUserID, err)
	}

	ds, skips, err := dataset.Load(importData)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := connect(ctx, importDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if importMigrate {
		if err := database.Migrate(ctx); err != nil {
			return err
		}
	}

	res, err := database.ImportDataset(ctx, userID, ds)
	if err != nil {
		return err
	}

	slog.Info("dataset imported", "user_id", userID, "rows", res.Total(), "skipped", skips.Total())
	_, _ = fmt.Fprintf(cmd.OutOrStdout(),
		"Imported %d records for %s (%d applications, %d interviews, %d time entries, %d predictions, %d research, %d checklists); %d skipped\n",
		res.Total(), userID, res.Applications, res.Interviews, res.TimeEntries, res.Predictions, res.Research, res.Checklists,
		skips.Total())
	return nil
}
