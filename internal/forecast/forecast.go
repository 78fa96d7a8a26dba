// Package forecast projects when the next pipeline milestones are likely to
// happen, based on historical stage durations and the current application pace.
package forecast

import (
	"math"
	"time"

	"github.com/jonathan/jobsearch-insights/internal/calc"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// HistoricalAverages are mean elapsed days from application to each milestone.
// Values that are not positive and finite are treated as missing.
type HistoricalAverages struct {
	ToResponse  float64
	ToInterview float64
	ToOffer     float64
}

// ConversionRates are stage conversion percentages (0-100).
type ConversionRates struct {
	Response  float64
	Interview float64
	Offer     float64
}

// Tier maps a conversion rate above Above to Confidence.
type Tier struct {
	Above      float64 `json:"above" yaml:"above"`
	Confidence int     `json:"confidence" yaml:"confidence" validate:"gte=0,lte=100"`
}

// ConfidenceTiers is an ordered step function: the first tier whose threshold
// the rate exceeds wins, and Floor applies when none does.
type ConfidenceTiers struct {
	Tiers []Tier `json:"tiers" yaml:"tiers" validate:"dive"`
	Floor int    `json:"floor" yaml:"floor" validate:"gte=0,lte=100"`
}

// For returns the confidence for rate.
func (c ConfidenceTiers) For(rate float64) int {
	for _, t := range c.Tiers {
		if rate > t.Above {
			return t.Confidence
		}
	}
	return c.Floor
}

// Settings control pacing and confidence.
type Settings struct {
	HighVolumeThreshold  float64 `json:"high_volume_threshold" yaml:"high_volume_threshold" validate:"gt=0"`
	LowVolumeThreshold   float64 `json:"low_volume_threshold" yaml:"low_volume_threshold" validate:"gt=0,ltefield=HighVolumeThreshold"`
	HighVolumeMultiplier float64 `json:"high_volume_multiplier" yaml:"high_volume_multiplier" validate:"gt=0"`
	LowVolumeMultiplier  float64 `json:"low_volume_multiplier" yaml:"low_volume_multiplier" validate:"gt=0"`

	DefaultResponseDays  float64 `json:"default_response_days" yaml:"default_response_days" validate:"gt=0"`
	DefaultInterviewDays float64 `json:"default_interview_days" yaml:"default_interview_days" validate:"gt=0"`
	DefaultOfferDays     float64 `json:"default_offer_days" yaml:"default_offer_days" validate:"gt=0"`

	ResponseConfidence  ConfidenceTiers `json:"response_confidence" yaml:"response_confidence"`
	InterviewConfidence ConfidenceTiers `json:"interview_confidence" yaml:"interview_confidence"`
	OfferConfidence     ConfidenceTiers `json:"offer_confidence" yaml:"offer_confidence"`
}

// DefaultSettings returns the standard pacing thresholds and confidence tiers.
func DefaultSettings() Settings {
	return Settings{
		HighVolumeThreshold:  10,
		LowVolumeThreshold:   5,
		HighVolumeMultiplier: 0.8,
		LowVolumeMultiplier:  1.3,
		DefaultResponseDays:  7,
		DefaultInterviewDays: 14,
		DefaultOfferDays:     30,
		ResponseConfidence: ConfidenceTiers{
			Tiers: []Tier{{Above: 30, Confidence: 85}, {Above: 15, Confidence: 70}},
			Floor: 60,
		},
		InterviewConfidence: ConfidenceTiers{
			Tiers: []Tier{{Above: 20, Confidence: 80}, {Above: 10, Confidence: 65}},
			Floor: 55,
		},
		OfferConfidence: ConfidenceTiers{
			Tiers: []Tier{{Above: 30, Confidence: 75}, {Above: 15, Confidence: 60}},
			Floor: 50,
		},
	}
}

// ActivityMultiplier scales stage durations by application pace. A busy
// pipeline moves faster in parallel, a thin one slower.
func ActivityMultiplier(applicationsPerWeek float64, s Settings) float64 {
	switch {
	case applicationsPerWeek >= s.HighVolumeThreshold:
		return s.HighVolumeMultiplier
	case applicationsPerWeek < s.LowVolumeThreshold:
		return s.LowVolumeMultiplier
	default:
		return 1.0
	}
}

// ForecastMilestones projects the first response, first interview and offer
// milestones. It always returns all three stages, in pipeline order. The
// activity multiplier scales historical averages only; a stage without
// history gets its default day count unscaled.
func ForecastMilestones(hist HistoricalAverages, applicationsPerWeek float64, rates ConversionRates, now time.Time, s Settings) types.Forecast {
	mult := ActivityMultiplier(calc.Finite(applicationsPerWeek), s)

	stages := []types.Stage{
		stage(types.MilestoneFirstResponse, hist.ToResponse, s.DefaultResponseDays, mult, s.ResponseConfidence.For(rates.Response), now),
		stage(types.MilestoneFirstInterview, hist.ToInterview, s.DefaultInterviewDays, mult, s.InterviewConfidence.For(rates.Interview), now),
		stage(types.MilestoneOffer, hist.ToOffer, s.DefaultOfferDays, mult, s.OfferConfidence.For(rates.Offer), now),
	}

	confidences := make([]float64, 0, len(stages))
	for _, st := range stages {
		confidences = append(confidences, float64(st.Confidence))
	}

	return types.Forecast{
		ActivityMultiplier: mult,
		Stages:             stages,
		OverallConfidence:  calc.RoundInt(calc.Mean(confidences)),
	}
}

// stage scales a measured average by mult. Defaults stand in for missing
// history and are used as-is.
func stage(name string, avg, fallback, mult float64, confidence int, now time.Time) types.Stage {
	usedDefault := !present(avg)
	if usedDefault {
		avg, mult = fallback, 1
	}
	days := calc.RoundInt(avg * mult)
	return types.Stage{
		Name:           name,
		EstimatedDays:  days,
		Confidence:     confidence,
		CompletionDate: now.AddDate(0, 0, days),
		UsedDefault:    usedDefault,
	}
}

func present(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FromMetrics derives forecast inputs from aggregated metrics. An average
// with no samples is reported as missing.
func FromMetrics(avg types.AverageTimes, f types.FunnelMetrics) (HistoricalAverages, ConversionRates) {
	hist := HistoricalAverages{}
	if avg.ResponseSamples > 0 {
		hist.ToResponse = avg.AvgTimeToResponse
	}
	if avg.InterviewSamples > 0 {
		hist.ToInterview = avg.AvgTimeToInterview
	}
	if avg.OfferSamples > 0 {
		hist.ToOffer = avg.AvgTimeToOffer
	}
	rates := ConversionRates{
		Response:  f.ResponseRate,
		Interview: f.InterviewConversion,
		Offer:     f.OfferConversion,
	}
	return hist, rates
}
