package types

import "sort"

// FunnelMetrics holds the application funnel counts and conversion rates.
// All rates are percentages in the range 0-100.
type FunnelMetrics struct {
	Total                int     `json:"total"`
	Active               int     `json:"active"`
	Responded            int     `json:"responded"`
	ResponseRate         float64 `json:"response_rate"`
	TotalInterviews      int     `json:"total_interviews"`
	UpcomingInterviews   int     `json:"upcoming_interviews"`
	InterviewConversion  float64 `json:"interview_conversion"`
	TotalOffers          int     `json:"total_offers"`
	OfferConversion      float64 `json:"offer_conversion"`
	InterviewSuccessRate float64 `json:"interview_success_rate"`
}

// BreakdownEntry is a single key and its occurrence count.
type BreakdownEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Breakdown is a histogram that preserves first-occurrence order of its keys.
type Breakdown struct {
	Entries []BreakdownEntry `json:"entries"`
}

// Count returns the count recorded for key, or 0 when absent.
func (b Breakdown) Count(key string) int {
	for _, e := range b.Entries {
		if e.Key == key {
			return e.Count
		}
	}
	return 0
}

// SortedByCount returns a copy of the breakdown ordered by count descending.
// Entries with equal counts keep their first-occurrence order.
func (b Breakdown) SortedByCount() Breakdown {
	entries := make([]BreakdownEntry, len(b.Entries))
	copy(entries, b.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return Breakdown{Entries: entries}
}

// Breakdowns groups the histograms computed for a dataset.
type Breakdowns struct {
	Status   Breakdown `json:"status"`
	Company  Breakdown `json:"company"`
	Industry Breakdown `json:"industry"`
	Role     Breakdown `json:"role"`
	Stage    Breakdown `json:"stage"`
}

// AverageTimes holds mean elapsed days between pipeline events.
type AverageTimes struct {
	AvgTimeToResponse  float64 `json:"avg_time_to_response"`
	AvgTimeToInterview float64 `json:"avg_time_to_interview"`
	AvgTimeToOffer     float64 `json:"avg_time_to_offer"`
	ResponseSamples    int     `json:"response_samples"`
	InterviewSamples   int     `json:"interview_samples"`
	OfferSamples       int     `json:"offer_samples"`
}

// ActivityHours is the total tracked time for one activity type.
type ActivityHours struct {
	ActivityType string  `json:"activity_type"`
	Hours        float64 `json:"hours"`
	Entries      int     `json:"entries"`
}

// ActivitySummary aggregates time-tracking entries.
type ActivitySummary struct {
	TotalHours  float64         `json:"total_hours"`
	Entries     int             `json:"entries"`
	OpenEntries int             `json:"open_entries"`
	ByActivity  []ActivityHours `json:"by_activity"`
}

// ReferralStat is the progression rate for applications from one referral source.
type ReferralStat struct {
	Source      string  `json:"source"`
	Count       int     `json:"count"`
	Progressed  int     `json:"progressed"`
	SuccessRate float64 `json:"success_rate"`
}

// SalaryStats summarizes the advertised maximum salaries.
type SalaryStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
}
