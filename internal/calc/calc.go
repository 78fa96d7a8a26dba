// Package calc provides zero-safe arithmetic shared by the analytics packages.
package calc

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
)

const hoursPerDay = 24

// Percent returns num/den expressed as a percentage, or 0 when den is not positive.
func Percent(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}

// Ratio returns num/den, or 0 when the result would not be finite.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return Finite(num / den)
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return Finite(m)
}

// Finite maps NaN and infinities to 0.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Days converts a duration to fractional days.
func Days(d time.Duration) float64 {
	return d.Hours() / hoursPerDay
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// RoundInt rounds half away from zero and converts to int.
func RoundInt(v float64) int {
	return int(math.Round(Finite(v)))
}
