// Package aggregate computes funnel counts, conversion rates and descriptive statistics
// over application and interview records.
package aggregate

import (
	"time"

	"github.com/jonathan/jobsearch-insights/internal/calc"
	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// ComputeFunnel calculates the application funnel.
// Every rate is a percentage and is 0 when its denominator is 0.
func ComputeFunnel(
	apps []types.ApplicationRecord,
	interviews []types.InterviewRecord,
	n *normalize.Normalizer,
	now time.Time,
) types.FunnelMetrics {
	var m types.FunnelMetrics
	m.Total = len(apps)

	for _, app := range apps {
		if app.IsActive() {
			m.Active++
		}
		status := n.JobStatus(app.Status)
		if status != types.StatusApplied {
			m.Responded++
		}
		if normalize.IsOffer(status) {
			m.TotalOffers++
		}
	}

	m.TotalInterviews = len(interviews)
	for _, iv := range interviews {
		if iv.InterviewDate.After(now) {
			m.UpcomingInterviews++
		}
	}

	m.ResponseRate = calc.Percent(m.Responded, m.Total)
	m.InterviewConversion = calc.Percent(m.TotalInterviews, m.Total)
	m.OfferConversion = calc.Percent(m.TotalOffers, m.Total)
	m.InterviewSuccessRate = calc.Percent(m.TotalOffers, m.TotalInterviews)

	return m
}
