package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-insights/internal/observability"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast response, interview and offer milestones",
	Long:  "Projects when the next response, interview and offer are likely, based on historical stage durations scaled by the current weekly application cadence.",
	RunE:  runForecast,
}

var (
	forecastSource sourceFlags
	forecastJSON   bool
)

func init() {
	forecastSource.register(forecastCmd)
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "Print JSON instead of formatted text")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	report, err := forecastSource.report(cmd.Context())
	if err != nil {
		return err
	}
	if forecastJSON {
		return writeJSON(cmd.OutOrStdout(), report.Forecast)
	}
	p := observability.NewPrinter(cmd.OutOrStdout())
	p.PrintForecast(report.Forecast)
	p.PrintScenarios(report.Scenarios)
	return nil
}
