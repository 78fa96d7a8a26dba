// Package main provides the jobtrack CLI for job search analytics.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-insights/internal/config"
)

var (
	settingsPath string
	logFile      string
	verbose      bool

	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "jobtrack",
	Short: "Job search analytics and forecasting",
	Long: "jobtrack turns a log of job applications, interviews, tracked time and self-assessments " +
		"into funnel metrics, correlations, patterns, milestone forecasts and recommendations.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		env := config.LoadEnv()
		level := env.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		if logFile == "" {
			logFile = env.LogFile
		}
		if settingsPath == "" {
			settingsPath = env.SettingsFile
		}

		logger, cleanup := config.SetupLogger(logFile, level)
		slog.SetDefault(logger)
		closeLog = cleanup
		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "config", "c", "", "Settings file (JSON or YAML); defaults to $JOBTRACK_SETTINGS")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this file; defaults to $JOBTRACK_LOG_FILE")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
