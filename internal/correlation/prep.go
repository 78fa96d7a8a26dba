// Package correlation measures whether preparatory activity and research
// precede positive outcomes.
package correlation

import (
	"sort"
	"strings"
	"time"

	"github.com/jonathan/jobsearch-insights/internal/calc"
	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// PrepParams configures a look-back correlation.
type PrepParams struct {
	// LookbackDays is the window length searched before each interview.
	LookbackDays int `json:"lookback_days" yaml:"lookback_days" validate:"gte=0"`
	// QualifyingActivities lists activity types that count as preparation (case-insensitive).
	QualifyingActivities []string `json:"qualifying_activities" yaml:"qualifying_activities" validate:"min=1"`
}

// PrepCorrelation partitions completed interviews by whether a qualifying
// time entry started inside [interviewDate - lookback, interviewDate] and
// reports the offer rate of each partition.
//
// Qualifying start times are sorted once and each window is located with a
// binary search, so the join costs O((n+m) log m) for n interviews and m
// entries. A single user's history is small; an interval index would only
// matter for multi-tenant batch runs.
func PrepCorrelation(
	interviews []types.InterviewRecord,
	entries []types.TimeEntry,
	params PrepParams,
	n *normalize.Normalizer,
	now time.Time,
) types.PrepCorrelation {
	result := types.PrepCorrelation{LookbackDays: params.LookbackDays}
	starts := qualifyingStarts(entries, params.QualifyingActivities)
	lookback := time.Duration(max(params.LookbackDays, 0)) * 24 * time.Hour

	var prepSuccess, noPrepSuccess int
	for _, iv := range interviews {
		if iv.InterviewDate.IsZero() {
			result.Skipped++
			continue
		}
		if !n.IsInterviewCompleted(iv, now) {
			continue
		}

		success := normalize.IsOffer(n.InterviewOutcome(iv.Outcome))
		if hasEntryInWindow(starts, iv.InterviewDate.Add(-lookback), iv.InterviewDate) {
			result.WithPrep++
			if success {
				prepSuccess++
			}
		} else {
			result.WithoutPrep++
			if success {
				noPrepSuccess++
			}
		}
	}

	result.SuccessRateWithPrep = calc.Percent(prepSuccess, result.WithPrep)
	result.SuccessRateWithoutPrep = calc.Percent(noPrepSuccess, result.WithoutPrep)
	result.Delta = result.SuccessRateWithPrep - result.SuccessRateWithoutPrep
	return result
}

// UnpreparedUpcoming counts interviews scheduled within the next
// LookbackDays that have no qualifying entry between the start of their
// window and now.
func UnpreparedUpcoming(interviews []types.InterviewRecord, entries []types.TimeEntry, params PrepParams, now time.Time) int {
	starts := qualifyingStarts(entries, params.QualifyingActivities)
	lookback := time.Duration(max(params.LookbackDays, 0)) * 24 * time.Hour
	horizon := now.Add(lookback)

	count := 0
	for _, iv := range interviews {
		if !iv.InterviewDate.After(now) || iv.InterviewDate.After(horizon) {
			continue
		}
		if !hasEntryInWindow(starts, iv.InterviewDate.Add(-lookback), now) {
			count++
		}
	}
	return count
}

// qualifyingStarts returns the sorted start times of entries whose activity
// type is in the qualifying set.
func qualifyingStarts(entries []types.TimeEntry, activities []string) []time.Time {
	allowed := make(map[string]bool, len(activities))
	for _, a := range activities {
		if key := activityKey(a); key != "" {
			allowed[key] = true
		}
	}

	starts := make([]time.Time, 0)
	for _, e := range entries {
		if e.StartedAt.IsZero() || !allowed[activityKey(e.ActivityType)] {
			continue
		}
		starts = append(starts, e.StartedAt)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	return starts
}

// hasEntryInWindow reports whether any start lies in [from, to].
func hasEntryInWindow(sorted []time.Time, from, to time.Time) bool {
	i := sort.Search(len(sorted), func(i int) bool { return !sorted[i].Before(from) })
	return i < len(sorted) && !sorted[i].After(to)
}

func activityKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
