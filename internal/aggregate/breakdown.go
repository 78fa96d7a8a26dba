package aggregate

import (
	"strings"

	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// Breakdown counts records by the key returned from keyFn.
// Keys keep the order of their first occurrence. Empty or blank keys are
// omitted rather than grouped into a placeholder bucket.
func Breakdown[T any](records []T, keyFn func(T) string) types.Breakdown {
	index := make(map[string]int)
	entries := make([]types.BreakdownEntry, 0)

	for _, r := range records {
		key := strings.TrimSpace(keyFn(r))
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			entries[i].Count++
			continue
		}
		index[key] = len(entries)
		entries = append(entries, types.BreakdownEntry{Key: key, Count: 1})
	}

	return types.Breakdown{Entries: entries}
}

// StatusBreakdown counts applications by canonical status.
// A missing status counts as applied.
func StatusBreakdown(apps []types.ApplicationRecord, n *normalize.Normalizer) types.Breakdown {
	return Breakdown(apps, func(a types.ApplicationRecord) string {
		return string(n.JobStatus(a.Status))
	})
}

// CompanyBreakdown counts applications by company name.
func CompanyBreakdown(apps []types.ApplicationRecord) types.Breakdown {
	return Breakdown(apps, func(a types.ApplicationRecord) string { return a.CompanyName })
}

// IndustryBreakdown counts applications by industry.
func IndustryBreakdown(apps []types.ApplicationRecord) types.Breakdown {
	return Breakdown(apps, func(a types.ApplicationRecord) string { return a.Industry })
}

// RoleBreakdown counts applications by job title.
func RoleBreakdown(apps []types.ApplicationRecord) types.Breakdown {
	return Breakdown(apps, func(a types.ApplicationRecord) string { return a.JobTitle })
}

// StageBreakdown counts interviews by interview type.
func StageBreakdown(interviews []types.InterviewRecord) types.Breakdown {
	return Breakdown(interviews, func(iv types.InterviewRecord) string { return iv.InterviewType })
}

// ComputeBreakdowns returns every histogram used in reports.
func ComputeBreakdowns(apps []types.ApplicationRecord, interviews []types.InterviewRecord, n *normalize.Normalizer) types.Breakdowns {
	return types.Breakdowns{
		Status:   StatusBreakdown(apps, n),
		Company:  CompanyBreakdown(apps),
		Industry: IndustryBreakdown(apps),
		Role:     RoleBreakdown(apps),
		Stage:    StageBreakdown(interviews),
	}
}
