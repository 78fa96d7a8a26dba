package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-insights/internal/observability"
	"github.com/jonathan/jobsearch-insights/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "List prioritized recommendations",
	RunE:  runRecommend,
}

var (
	recommendSource sourceFlags
	recommendLimit  int
	recommendJSON   bool
)

func init() {
	recommendSource.register(recommendCmd)
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", -1, "Maximum recommendations to show (0 for all; default from settings)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print JSON instead of formatted text")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	report, err := recommendSource.report(cmd.Context())
	if err != nil {
		return err
	}

	limit := recommendLimit
	if limit < 0 {
		engine, err := loadEngine(settingsPath)
		if err != nil {
			return err
		}
		limit = engine.Settings().TopRecommendations
	}
	recs := recommend.Top(report.Recommendations, limit)

	if recommendJSON {
		return writeJSON(cmd.OutOrStdout(), recs)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRecommendations(recs)
	if len(recs) < len(report.Recommendations) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d more with --limit 0\n", len(report.Recommendations)-len(recs))
	}
	return nil
}
