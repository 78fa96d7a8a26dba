package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-insights/internal/observability"
)

var funnelCmd = &cobra.Command{
	Use:   "funnel",
	Short: "Show application funnel metrics",
	RunE:  runFunnel,
}

var (
	funnelSource sourceFlags
	funnelJSON   bool
)

func init() {
	funnelSource.register(funnelCmd)
	funnelCmd.Flags().BoolVar(&funnelJSON, "json", false, "Print JSON instead of formatted text")
	rootCmd.AddCommand(funnelCmd)
}

func runFunnel(cmd *cobra.Command, _ []string) error {
	report, err := funnelSource.report(cmd.Context())
	if err != nil {
		return err
	}
	if funnelJSON {
		return writeJSON(cmd.OutOrStdout(), report.Funnel)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintFunnel(report.Funnel, report.WeeklyCadence)
	return nil
}
