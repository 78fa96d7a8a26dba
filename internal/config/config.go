// Package config provides analysis settings, environment configuration and
// logger setup for the CLI and HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
	// Embedded zone database so Timezone resolves on hosts without one
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/jobsearch-insights/internal/correlation"
	"github.com/jonathan/jobsearch-insights/internal/forecast"
	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/recommend"
	"github.com/jonathan/jobsearch-insights/internal/scenario"
)

// Settings are the tunable parameters of the analytics engine.
// Files may set any subset; unset values keep their defaults.
type Settings struct {
	// Timezone is the IANA zone used for day-of-week bucketing. Empty means UTC.
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty"`

	MinSampleSize      int `json:"min_sample_size" yaml:"min_sample_size" validate:"gte=1"`
	CadenceWeeks       int `json:"cadence_weeks" yaml:"cadence_weeks" validate:"gte=1"`
	StaleDays          int `json:"stale_days" yaml:"stale_days" validate:"gte=1"`
	TopRecommendations int `json:"top_recommendations" yaml:"top_recommendations" validate:"gte=0"`

	Prep correlation.PrepParams `json:"prep" yaml:"prep"`
	Mock correlation.PrepParams `json:"mock" yaml:"mock"`

	// Synonyms replaces the built-in status vocabulary when set.
	Synonyms *normalize.SynonymTable `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`

	Forecast   forecast.Settings    `json:"forecast" yaml:"forecast"`
	Scenario   scenario.Settings    `json:"scenario" yaml:"scenario"`
	Strategies []scenario.Strategy  `json:"strategies" yaml:"strategies" validate:"dive"`
	Thresholds recommend.Thresholds `json:"thresholds" yaml:"thresholds"`
}

// DefaultSettings returns the built-in analysis parameters.
func DefaultSettings() Settings {
	return Settings{
		MinSampleSize:      3,
		CadenceWeeks:       4,
		StaleDays:          21,
		TopRecommendations: 5,
		Prep: correlation.PrepParams{
			LookbackDays:         7,
			QualifyingActivities: []string{"interview prep", "company research", "technical practice"},
		},
		Mock: correlation.PrepParams{
			LookbackDays:         14,
			QualifyingActivities: []string{"mock interview", "rehearsal"},
		},
		Forecast:   forecast.DefaultSettings(),
		Scenario:   scenario.DefaultSettings(),
		Strategies: scenario.DefaultStrategies(),
		Thresholds: recommend.DefaultThresholds(),
	}
}

// LoadSettings reads settings from a JSON or YAML file (chosen by extension)
// on top of DefaultSettings.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, &ConfigError{Message: "settings path is empty"}
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("failed to read settings file %s", path), Cause: err}
	}

	settings := DefaultSettings()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, &ConfigError{Message: "failed to parse settings YAML", Cause: err}
		}
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, &ConfigError{Message: "failed to parse settings JSON", Cause: err}
		}
	}

	return &settings, nil
}

// MergeWithDefaults returns a copy of s with zero-valued fields taken from defaults.
func (s *Settings) MergeWithDefaults(defaults Settings) Settings {
	result := *s

	result.Timezone = orDefault(result.Timezone, defaults.Timezone)
	result.MinSampleSize = orDefault(result.MinSampleSize, defaults.MinSampleSize)
	result.CadenceWeeks = orDefault(result.CadenceWeeks, defaults.CadenceWeeks)
	result.StaleDays = orDefault(result.StaleDays, defaults.StaleDays)
	result.TopRecommendations = orDefault(result.TopRecommendations, defaults.TopRecommendations)

	// Nested sections are replaced as a whole when unset
	result.Prep = orDefault(result.Prep, defaults.Prep)
	result.Mock = orDefault(result.Mock, defaults.Mock)
	result.Synonyms = orDefault(result.Synonyms, defaults.Synonyms)
	result.Forecast = orDefault(result.Forecast, defaults.Forecast)
	result.Scenario = orDefault(result.Scenario, defaults.Scenario)
	result.Strategies = orDefault(result.Strategies, defaults.Strategies)
	result.Thresholds = orDefault(result.Thresholds, defaults.Thresholds)

	return result
}

func orDefault[T any](v, def T) T {
	if reflect.ValueOf(&v).Elem().IsZero() {
		return def
	}
	return v
}

// Validate checks field ranges, the synonym table's statuses and that the
// timezone can be loaded.
func (s *Settings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return &ConfigError{Message: "invalid settings", Cause: err}
	}
	if err := validateSynonyms(s.Synonyms); err != nil {
		return err
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	return nil
}

func validateSynonyms(table *normalize.SynonymTable) error {
	if table == nil {
		return nil
	}
	for i, rule := range table.Rules {
		if !rule.Canonical.IsValid() {
			return &ConfigError{Message: fmt.Sprintf("synonyms rule %d: unknown status %q", i, rule.Canonical)}
		}
	}
	for from, to := range table.OutcomeOverrides {
		if !from.IsValid() || !to.IsValid() {
			return &ConfigError{Message: fmt.Sprintf("synonyms outcome override %q -> %q: unknown status", from, to)}
		}
	}
	return nil
}

// Location resolves Timezone, defaulting to UTC.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("unknown timezone %q", s.Timezone), Cause: err}
	}
	return loc, nil
}

// Normalizer builds the status normalizer for these settings.
func (s *Settings) Normalizer() *normalize.Normalizer {
	if s.Synonyms == nil || len(s.Synonyms.Rules) == 0 {
		return normalize.Default()
	}
	return normalize.New(*s.Synonyms)
}
