package aggregate

import (
	"sort"
	"strings"

	"github.com/jonathan/jobsearch-insights/internal/calc"
	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// ActivitySummary totals tracked hours overall and per activity type.
// Open entries count toward Entries and OpenEntries but add no hours.
func ActivitySummary(entries []types.TimeEntry) types.ActivitySummary {
	summary := types.ActivitySummary{ByActivity: make([]types.ActivityHours, 0)}
	index := make(map[string]int)

	for _, e := range entries {
		hours := e.Hours()
		summary.Entries++
		summary.TotalHours += hours
		if e.EndedAt == nil {
			summary.OpenEntries++
		}

		key := strings.TrimSpace(e.ActivityType)
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(summary.ByActivity)
			index[key] = i
			summary.ByActivity = append(summary.ByActivity, types.ActivityHours{ActivityType: key})
		}
		summary.ByActivity[i].Hours += hours
		summary.ByActivity[i].Entries++
	}

	return summary
}

// ReferralStats reports progression per referral source, most used first.
func ReferralStats(apps []types.ApplicationRecord, n *normalize.Normalizer) []types.ReferralStat {
	stats := make([]types.ReferralStat, 0)
	index := make(map[string]int)

	for _, app := range apps {
		source := strings.TrimSpace(app.ReferralSource)
		if source == "" {
			continue
		}
		i, ok := index[source]
		if !ok {
			i = len(stats)
			index[source] = i
			stats = append(stats, types.ReferralStat{Source: source})
		}
		stats[i].Count++
		if normalize.HasProgressed(n.JobStatus(app.Status)) {
			stats[i].Progressed++
		}
	}

	for i := range stats {
		stats[i].SuccessRate = calc.Percent(stats[i].Progressed, stats[i].Count)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// SalaryStatistics summarizes the positive, finite SalaryMax values.
func SalaryStatistics(apps []types.ApplicationRecord) types.SalaryStats {
	values := make([]float64, 0)
	for _, app := range apps {
		if app.SalaryMax == nil {
			continue
		}
		v := calc.Finite(*app.SalaryMax)
		if v > 0 {
			values = append(values, v)
		}
	}

	out := types.SalaryStats{Count: len(values), Average: calc.Mean(values)}
	for _, v := range values {
		if v > out.Max {
			out.Max = v
		}
	}
	return out
}
