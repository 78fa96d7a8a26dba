package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-insights/internal/observability"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the full analytics report",
	Long:  "Computes funnel metrics, correlations, patterns, the milestone forecast, strategy scenarios and recommendations for a dataset file or a user's records in the database.",
	RunE:  runReport,
}

var (
	reportSource sourceFlags
	reportOut    string
	reportJSON   bool
)

func init() {
	reportSource.register(reportCmd)
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write the report as JSON to this file")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Print JSON instead of formatted text")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	report, err := reportSource.report(cmd.Context())
	if err != nil {
		return err
	}

	switch {
	case reportOut != "":
		if err := writeJSONFile(reportOut, report); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", reportOut)
		return nil
	case reportJSON:
		return writeJSON(cmd.OutOrStdout(), report)
	default:
		observability.NewPrinter(cmd.OutOrStdout()).PrintReport(report)
		return nil
	}
}
