package aggregate

import (
	"time"

	"github.com/jonathan/jobsearch-insights/internal/calc"
	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// AverageTimes computes mean elapsed days between pipeline events.
// Only records where both timestamps are present and the qualifying
// condition holds contribute; an empty subset yields 0.
func AverageTimes(apps []types.ApplicationRecord, interviews []types.InterviewRecord, n *normalize.Normalizer) types.AverageTimes {
	firstInterview := earliestInterviewByJob(interviews)

	var toResponse, toInterview, toOffer []float64
	for _, app := range apps {
		if app.CreatedAt.IsZero() {
			continue
		}
		status := n.JobStatus(app.Status)

		if elapsed, ok := elapsedDays(app.CreatedAt, app.UpdatedAt); ok {
			if status != types.StatusApplied {
				toResponse = append(toResponse, elapsed)
			}
			if normalize.IsOffer(status) {
				toOffer = append(toOffer, elapsed)
			}
		}

		if first, ok := firstInterview[app.ID]; ok && !first.Before(app.CreatedAt) {
			toInterview = append(toInterview, calc.Days(first.Sub(app.CreatedAt)))
		}
	}

	return types.AverageTimes{
		AvgTimeToResponse:  calc.Mean(toResponse),
		AvgTimeToInterview: calc.Mean(toInterview),
		AvgTimeToOffer:     calc.Mean(toOffer),
		ResponseSamples:    len(toResponse),
		InterviewSamples:   len(toInterview),
		OfferSamples:       len(toOffer),
	}
}

// WeeklyCadence returns the average number of applications created per week
// over the trailing window of the given number of weeks ending at now.
func WeeklyCadence(apps []types.ApplicationRecord, now time.Time, weeks int) float64 {
	if weeks <= 0 {
		return 0
	}
	since := now.AddDate(0, 0, -7*weeks)
	count := 0
	for _, app := range apps {
		if app.CreatedAt.IsZero() {
			continue
		}
		if app.CreatedAt.After(since) && !app.CreatedAt.After(now) {
			count++
		}
	}
	return float64(count) / float64(weeks)
}

// StaleApplications counts active applications without an update for at least staleDays.
func StaleApplications(apps []types.ApplicationRecord, n *normalize.Normalizer, now time.Time, staleDays int) int {
	cutoff := now.AddDate(0, 0, -staleDays)
	count := 0
	for _, app := range apps {
		if !app.IsActive() {
			continue
		}
		status := n.JobStatus(app.Status)
		if status == types.StatusDeclined || normalize.IsOffer(status) {
			continue
		}
		last := app.UpdatedAt
		if last.IsZero() {
			last = app.CreatedAt
		}
		if !last.IsZero() && !last.After(cutoff) {
			count++
		}
	}
	return count
}

func earliestInterviewByJob(interviews []types.InterviewRecord) map[string]time.Time {
	first := make(map[string]time.Time)
	for _, iv := range interviews {
		if iv.JobID == "" || iv.InterviewDate.IsZero() {
			continue
		}
		if cur, ok := first[iv.JobID]; !ok || iv.InterviewDate.Before(cur) {
			first[iv.JobID] = iv.InterviewDate
		}
	}
	return first
}

func elapsedDays(from, to time.Time) (float64, bool) {
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return 0, false
	}
	return calc.Days(to.Sub(from)), true
}
