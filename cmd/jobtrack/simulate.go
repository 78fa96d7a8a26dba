package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-insights/internal/observability"
	"github.com/jonathan/jobsearch-insights/internal/scenario"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Compare what-if strategies side by side",
	Long: "Simulates the configured strategies (by default Current Pace, Quality Focus, High Volume and Networking Focus) " +
		"for a weekly application cadence and stage conversion rates. Rates are percentages. With --data, " +
		"cadence and rates not given on the command line are taken from the dataset.",
	RunE: runSimulate,
}

var (
	simulateAppsPerWeek float64
	simulateResponse    float64
	simulateInterview   float64
	simulateOffer       float64
	simulateData        string
	simulateJSON        bool
)

func init() {
	simulateCmd.Flags().Float64VarP(&simulateAppsPerWeek, "apps-per-week", "a", 0, "Applications per week")
	simulateCmd.Flags().Float64Var(&simulateResponse, "response", 0, "Response rate (%)")
	simulateCmd.Flags().Float64Var(&simulateInterview, "interview", 0, "Response-to-interview rate (%)")
	simulateCmd.Flags().Float64Var(&simulateOffer, "offer", 0, "Interview-to-offer rate (%)")
	simulateCmd.Flags().StringVarP(&simulateData, "data", "d", "", "Derive unset inputs from this dataset file")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "Print JSON instead of formatted text")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	engine, err := loadEngine(settingsPath)
	if err != nil {
		return err
	}

	apw, base := simulateAppsPerWeek, scenario.Rates{
		Response:  simulateResponse,
		Interview: simulateInterview,
		Offer:     simulateOffer,
	}

	if simulateData != "" {
		src := sourceFlags{dataPath: simulateData}
		report, err := src.report(cmd.Context())
		if err != nil {
			return err
		}
		apw, base = simulationInputs(cmd, report, apw, base)
		slog.Debug("simulation inputs", "apps_per_week", apw, "response", base.Response,
			"interview", base.Interview, "offer", base.Offer)
	}

	if apw < 0 || base.Response < 0 || base.Interview < 0 || base.Offer < 0 {
		return fmt.Errorf("cadence and rates must not be negative")
	}

	scenarios := engine.Simulate(apw, base, nil)
	if simulateJSON {
		return writeJSON(cmd.OutOrStdout(), scenarios)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintScenarios(scenarios)
	return nil
}

// simulationInputs fills the inputs not set on the command line from the report.
func simulationInputs(cmd *cobra.Command, report *types.Report, apw float64, base scenario.Rates) (float64, scenario.Rates) {
	fromData := scenario.BaseRatesFromFunnel(report.Funnel)
	flags := cmd.Flags()
	if !flags.Changed("apps-per-week") {
		apw = report.WeeklyCadence
	}
	if !flags.Changed("response") {
		base.Response = fromData.Response
	}
	if !flags.Changed("interview") {
		base.Interview = fromData.Interview
	}
	if !flags.Changed("offer") {
		base.Offer = fromData.Offer
	}
	return apw, base
}
