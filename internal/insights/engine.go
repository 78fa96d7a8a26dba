// Package insights runs every analytics component over a dataset and
// assembles the results into a single report.
package insights

import (
	"math"
	"time"

	"github.com/jonathan/jobsearch-insights/internal/aggregate"
	"github.com/jonathan/jobsearch-insights/internal/config"
	"github.com/jonathan/jobsearch-insights/internal/correlation"
	"github.com/jonathan/jobsearch-insights/internal/forecast"
	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/patterns"
	"github.com/jonathan/jobsearch-insights/internal/recommend"
	"github.com/jonathan/jobsearch-insights/internal/scenario"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// Engine builds reports. It holds only read-only state and is safe for
// concurrent use.
type Engine struct {
	settings    config.Settings
	normalizer  *normalize.Normalizer
	location    *time.Location
	recommender *recommend.Generator
}

// New creates an engine. Zero-valued settings fields take their defaults
// before the result is validated.
func New(settings config.Settings) (*Engine, error) {
	settings = settings.MergeWithDefaults(config.DefaultSettings())
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}
	return &Engine{
		settings:    settings,
		normalizer:  settings.Normalizer(),
		location:    loc,
		recommender: recommend.New(settings.Thresholds),
	}, nil
}

// NewDefault creates an engine with DefaultSettings.
func NewDefault() *Engine {
	e, err := New(config.DefaultSettings())
	if err != nil {
		// DefaultSettings always validates
		panic(err)
	}
	return e
}

// Settings returns the engine's settings.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// BuildReport analyzes ds as of now. A nil or empty dataset yields a report
// of zeros, default forecast stages and the fallback recommendation.
func (e *Engine) BuildReport(ds *types.Dataset, now time.Time) *types.Report {
	if ds == nil {
		ds = &types.Dataset{}
	}
	n := e.normalizer
	s := e.settings

	report := &types.Report{
		GeneratedAt:   now,
		Funnel:        aggregate.ComputeFunnel(ds.Applications, ds.Interviews, n, now),
		Breakdowns:    aggregate.ComputeBreakdowns(ds.Applications, ds.Interviews, n),
		AverageTimes:  aggregate.AverageTimes(ds.Applications, ds.Interviews, n),
		Activity:      aggregate.ActivitySummary(ds.TimeEntries),
		Referrals:     aggregate.ReferralStats(ds.Applications, n),
		Salary:        aggregate.SalaryStatistics(ds.Applications),
		WeeklyCadence: aggregate.WeeklyCadence(ds.Applications, now, s.CadenceWeeks),
		Skipped:       countSkipped(ds),
	}

	report.Correlations = types.Correlations{
		Prep:          correlation.PrepCorrelation(ds.Interviews, ds.TimeEntries, s.Prep, n, now),
		Mock:          correlation.PrepCorrelation(ds.Interviews, ds.TimeEntries, s.Mock, n, now),
		Research:      correlation.ResearchCorrelation(ds.Applications, ds.Research, n),
		Checklist:     correlation.ChecklistCorrelation(ds.Applications, ds.Checklists, n),
		Predictions:   correlation.PredictionAccuracy(ds.Predictions, n),
		InterviewType: correlation.InterviewTypeSuccess(ds.Interviews, n, now),
	}

	report.Patterns = patterns.Detect(ds.Applications, s.MinSampleSize, e.location, n)

	report.Pipeline = types.PipelineHealth{
		StaleApplications:    aggregate.StaleApplications(ds.Applications, n, now, s.StaleDays),
		UnpreparedInterviews: correlation.UnpreparedUpcoming(ds.Interviews, ds.TimeEntries, s.Prep, now),
	}

	hist, rates := forecast.FromMetrics(report.AverageTimes, report.Funnel)
	report.Forecast = forecast.ForecastMilestones(hist, report.WeeklyCadence, rates, now, s.Forecast)

	report.Scenarios = scenario.Compare(
		report.WeeklyCadence,
		scenario.BaseRatesFromFunnel(report.Funnel),
		s.Strategies,
		s.Scenario,
	)

	report.Recommendations = e.recommender.Generate(&recommend.Input{
		Funnel:        report.Funnel,
		Correlations:  report.Correlations,
		Patterns:      report.Patterns,
		WeeklyCadence: report.WeeklyCadence,
		Pipeline:      report.Pipeline,
	})

	return report
}

// Simulate compares strategies from explicit inputs rather than a dataset.
// Nil strategies means the configured set.
func (e *Engine) Simulate(applicationsPerWeek float64, base scenario.Rates, strategies []scenario.Strategy) []types.Scenario {
	if strategies == nil {
		strategies = e.settings.Strategies
	}
	return scenario.Compare(applicationsPerWeek, base, strategies, e.settings.Scenario)
}

// countSkipped counts records whose required timestamp is missing or whose
// probability is not a number. These are left out of the computations that
// need those fields.
func countSkipped(ds *types.Dataset) types.SkippedCounts {
	var c types.SkippedCounts
	for _, a := range ds.Applications {
		if a.CreatedAt.IsZero() {
			c.Applications++
		}
	}
	for _, iv := range ds.Interviews {
		if iv.InterviewDate.IsZero() {
			c.Interviews++
		}
	}
	for _, te := range ds.TimeEntries {
		if te.StartedAt.IsZero() {
			c.TimeEntries++
		}
	}
	for _, p := range ds.Predictions {
		if math.IsNaN(p.OverallProbability) || math.IsInf(p.OverallProbability, 0) {
			c.Predictions++
		}
	}
	return c
}
