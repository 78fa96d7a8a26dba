package scenario

import "github.com/jonathan/jobsearch-insights/internal/types"

// Strategy is a named adjustment to the current cadence and rates.
type Strategy struct {
	Name             string  `json:"name" yaml:"name" validate:"required"`
	VolumeMultiplier float64 `json:"volume_multiplier" yaml:"volume_multiplier" validate:"gte=0"`
	Multipliers      Rates   `json:"multipliers" yaml:"multipliers"`
}

// DefaultStrategies returns the built-in comparison set. The first entry is
// the baseline.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "Current Pace", VolumeMultiplier: 1, Multipliers: Identity},
		{Name: "Quality Focus", VolumeMultiplier: 0.6, Multipliers: Rates{Response: 1.5, Interview: 1.3, Offer: 1.2}},
		{Name: "High Volume", VolumeMultiplier: 2, Multipliers: Rates{Response: 0.7, Interview: 0.9, Offer: 1}},
		{Name: "Networking Focus", VolumeMultiplier: 0.8, Multipliers: Rates{Response: 2, Interview: 1.4, Offer: 1.1}},
	}
}

// Compare simulates each strategy against the same baseline. Results keep the
// order of strategies.
func Compare(applicationsPerWeek float64, base Rates, strategies []Strategy, s Settings) []types.Scenario {
	out := make([]types.Scenario, 0, len(strategies))
	for _, st := range strategies {
		out = append(out, Simulate(st.Name, applicationsPerWeek*st.VolumeMultiplier, base, st.Multipliers, s))
	}
	return out
}
