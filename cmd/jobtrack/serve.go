package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-insights/internal/config"
	"github.com/jonathan/jobsearch-insights/internal/server"
	"github.com/jonathan/jobsearch-insights/internal/server/ratelimit"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: "Start an HTTP server that exposes report, forecast, recommendation and simulation endpoints. " +
		"When DATABASE_URL is set, per-user routes read records from PostgreSQL.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to $PORT or 8080)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Create database tables before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	env := config.LoadEnv()
	port := servePort
	if port == 0 {
		p, err := strconv.Atoi(env.Port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", env.Port, err)
		}
		port = p
	}

	engine, err := loadEngine(settingsPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := server.Config{
		Port:      port,
		Engine:    engine,
		RateLimit: ratelimit.LoadConfig(),
		Logger:    slog.Default(),
	}

	if env.DatabaseURL != "" {
		database, err := connect(ctx, env.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if serveMigrate {
			if err := database.Migrate(ctx); err != nil {
				return err
			}
		}
		cfg.Source = database
	} else {
		slog.Warn("DATABASE_URL not set, per-user routes are disabled")
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}
