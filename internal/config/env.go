package config

import (
	"log/slog"
	"os"
	"strings"
)

// Env holds process-level configuration read from environment variables.
type Env struct {
	DatabaseURL  string
	SettingsFile string

	// Logging
	LogFile  string
	LogLevel slog.Level

	// HTTP
	Port string
}

// LoadEnv reads configuration from environment variables.
func LoadEnv() Env {
	return Env{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SettingsFile: getEnv("JOBTRACK_SETTINGS", ""),

		LogFile:  getEnv("JOBTRACK_LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("JOBTRACK_LOG_LEVEL", "INFO")),

		Port: getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
