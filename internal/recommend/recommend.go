// Package recommend turns aggregated metrics into prioritized, actionable
// suggestions.
package recommend

import (
	"sort"

	"github.com/jonathan/jobsearch-insights/internal/types"
)

// Input is everything the rules may inspect.
type Input struct {
	Funnel        types.FunnelMetrics
	Correlations  types.Correlations
	Patterns      types.Patterns
	WeeklyCadence float64
	Pipeline      types.PipelineHealth
}

// Rule examines the input and produces at most one recommendation.
// Rules must not modify the input.
type Rule func(in *Input, t Thresholds) (types.Recommendation, bool)

// Thresholds control when rules fire.
type Thresholds struct {
	// MinApplications gates every rate-based rule.
	MinApplications int `json:"min_applications" yaml:"min_applications" validate:"gte=0"`
	// MinInterviews gates interview success checks.
	MinInterviews int `json:"min_interviews" yaml:"min_interviews" validate:"gte=0"`
	// MinCorrelationSamples is the smallest subset size compared in a correlation.
	MinCorrelationSamples int `json:"min_correlation_samples" yaml:"min_correlation_samples" validate:"gte=0"`
	// MinPredictions gates the calibration check.
	MinPredictions int `json:"min_predictions" yaml:"min_predictions" validate:"gte=0"`

	LowResponseRate        float64 `json:"low_response_rate" yaml:"low_response_rate" validate:"gte=0,lte=100"`
	LowInterviewConversion float64 `json:"low_interview_conversion" yaml:"low_interview_conversion" validate:"gte=0,lte=100"`
	LowInterviewSuccess    float64 `json:"low_interview_success" yaml:"low_interview_success" validate:"gte=0,lte=100"`
	MeaningfulDelta        float64 `json:"meaningful_delta" yaml:"meaningful_delta" validate:"gte=0,lte=100"`
	LowWeeklyVolume        float64 `json:"low_weekly_volume" yaml:"low_weekly_volume" validate:"gte=0"`
	StaleApplications      int     `json:"stale_applications" yaml:"stale_applications" validate:"gte=1"`
	OverconfidenceGap      float64 `json:"overconfidence_gap" yaml:"overconfidence_gap" validate:"gte=0,lte=100"`
}

// DefaultThresholds returns the standard rule thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinApplications:        5,
		MinInterviews:          3,
		MinCorrelationSamples:  2,
		MinPredictions:         3,
		LowResponseRate:        10,
		LowInterviewConversion: 5,
		LowInterviewSuccess:    20,
		MeaningfulDelta:        15,
		LowWeeklyVolume:        5,
		StaleApplications:      3,
		OverconfidenceGap:      20,
	}
}

// Generator evaluates an ordered rule set.
type Generator struct {
	rules      []Rule
	thresholds Thresholds
}

// New creates a generator with the built-in rules.
func New(t Thresholds) *Generator {
	return NewWithRules(t, DefaultRules()...)
}

// NewWithRules creates a generator with a custom rule set.
func NewWithRules(t Thresholds, rules ...Rule) *Generator {
	return &Generator{rules: rules, thresholds: t}
}

// Generate runs every rule and returns the results ordered high, medium, low.
// Rules with equal priority keep their rule order. The result is never empty:
// when no rule fires a single data-building suggestion is returned.
func (g *Generator) Generate(in *Input) []types.Recommendation {
	if in == nil {
		in = &Input{}
	}

	recs := make([]types.Recommendation, 0, len(g.rules))
	for _, rule := range g.rules {
		if rec, ok := rule(in, g.thresholds); ok {
			recs = append(recs, rec)
		}
	}

	if len(recs) == 0 {
		return []types.Recommendation{Fallback()}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs
}

// Fallback is returned when there is not enough data for any rule.
func Fallback() types.Recommendation {
	return types.Recommendation{
		Priority:    types.PriorityLow,
		Category:    CategoryData,
		Title:       "Keep building your data",
		Description: "Log applications, interviews and prep time consistently. Insights sharpen as your history grows.",
		Metric:      "not enough data yet",
	}
}

// Top returns at most n recommendations. A non-positive n returns all of them.
func Top(recs []types.Recommendation, n int) []types.Recommendation {
	if n <= 0 || n >= len(recs) {
		return recs
	}
	return recs[:n]
}
