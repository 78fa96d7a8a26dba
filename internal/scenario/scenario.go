// Package scenario runs what-if projections: how long until an offer, and how
// many offers in a fixed horizon, for a given cadence and set of conversion rates.
package scenario

import (
	"math"

	"github.com/jonathan/jobsearch-insights/internal/calc"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

const daysPerWeek = 7

// Rates are stage-to-stage conversion percentages (0-100), or multipliers
// applied to them.
type Rates struct {
	Response  float64 `json:"response" yaml:"response" validate:"gte=0"`
	Interview float64 `json:"interview" yaml:"interview" validate:"gte=0"`
	Offer     float64 `json:"offer" yaml:"offer" validate:"gte=0"`
}

// Identity leaves base rates unchanged.
var Identity = Rates{Response: 1, Interview: 1, Offer: 1}

// Band is an inclusive range.
type Band struct {
	Min float64 `json:"min" yaml:"min" validate:"gte=0"`
	Max float64 `json:"max" yaml:"max" validate:"gtefield=Min"`
}

// Contains reports whether v lies in the band.
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Settings hold the simulation constants.
type Settings struct {
	// FallbackApplications is used as "applications needed per offer" when
	// the overall conversion rate is 0.
	FallbackApplications float64 `json:"fallback_applications" yaml:"fallback_applications" validate:"gt=0"`
	MaxDays              int     `json:"max_days" yaml:"max_days" validate:"gt=0"`
	HorizonDays          int     `json:"horizon_days" yaml:"horizon_days" validate:"gt=0"`

	BaseConfidence int `json:"base_confidence" yaml:"base_confidence" validate:"gte=0,lte=100"`
	RateBonus      int `json:"rate_bonus" yaml:"rate_bonus" validate:"gte=0"`
	CadenceBonus   int `json:"cadence_bonus" yaml:"cadence_bonus" validate:"gte=0"`
	MaxConfidence  int `json:"max_confidence" yaml:"max_confidence" validate:"gte=0,lte=100"`

	ResponseBand  Band `json:"response_band" yaml:"response_band"`
	InterviewBand Band `json:"interview_band" yaml:"interview_band"`
	OfferBand     Band `json:"offer_band" yaml:"offer_band"`
	CadenceBand   Band `json:"cadence_band" yaml:"cadence_band"`
}

// DefaultSettings returns the standard simulation constants.
func DefaultSettings() Settings {
	return Settings{
		FallbackApplications: 1000,
		MaxDays:              365,
		HorizonDays:          90,
		BaseConfidence:       50,
		RateBonus:            15,
		CadenceBonus:         5,
		MaxConfidence:        95,
		ResponseBand:         Band{Min: 5, Max: 40},
		InterviewBand:        Band{Min: 10, Max: 50},
		OfferBand:            Band{Min: 10, Max: 50},
		CadenceBand:          Band{Min: 5, Max: 20},
	}
}

// Simulate projects a single scenario. Adjusted rates are capped at 100 and
// estimated days at s.MaxDays. A non-positive cadence never reaches an offer.
func Simulate(name string, applicationsPerWeek float64, base, mult Rates, s Settings) types.Scenario {
	apw := calc.Finite(applicationsPerWeek)
	response := adjust(base.Response, mult.Response)
	interview := adjust(base.Interview, mult.Interview)
	offer := adjust(base.Offer, mult.Offer)

	overall := (response / 100) * (interview / 100) * (offer / 100)

	sc := types.Scenario{
		Name:                name,
		ApplicationsPerWeek: apw,
		ResponseRate:        response,
		InterviewConversion: interview,
		OfferConversion:     offer,
		EstimatedDays:       s.MaxDays,
		Confidence:          confidence(apw, response, interview, offer, s),
	}
	if apw <= 0 {
		return sc
	}

	needed := s.FallbackApplications
	if overall > 0 {
		needed = 1 / overall
	}
	days := needed / apw * daysPerWeek
	sc.EstimatedDays = calc.RoundInt(math.Min(days, float64(s.MaxDays)))

	horizonWeeks := float64(s.HorizonDays) / daysPerWeek
	sc.EstimatedOffers = max(0, calc.RoundInt(apw*horizonWeeks*overall))

	return sc
}

func adjust(base, mult float64) float64 {
	return calc.Clamp(calc.Finite(base*mult), 0, 100)
}

func confidence(apw, response, interview, offer float64, s Settings) int {
	c := s.BaseConfidence
	if s.ResponseBand.Contains(response) {
		c += s.RateBonus
	}
	if s.InterviewBand.Contains(interview) {
		c += s.RateBonus
	}
	if s.OfferBand.Contains(offer) {
		c += s.RateBonus
	}
	if s.CadenceBand.Contains(apw) {
		c += s.CadenceBonus
	}
	return min(c, s.MaxConfidence)
}

// BaseRatesFromFunnel derives stage-to-stage rates: responses per
// application, interviews per response and offers per interview.
func BaseRatesFromFunnel(f types.FunnelMetrics) Rates {
	return Rates{
		Response:  calc.Clamp(f.ResponseRate, 0, 100),
		Interview: calc.Clamp(calc.Percent(f.TotalInterviews, f.Responded), 0, 100),
		Offer:     calc.Clamp(f.InterviewSuccessRate, 0, 100),
	}
}
