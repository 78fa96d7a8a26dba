package correlation

import (
	"strings"
	"time"

	"github.com/jonathan/jobsearch-insights/internal/calc"
	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// ResearchCorrelation joins research records to applications by job id and
// compares the progression rate of researched and unresearched applications.
// Research pointing at unknown applications is ignored.
func ResearchCorrelation(apps []types.ApplicationRecord, research []types.ResearchRecord, n *normalize.Normalizer) types.ResearchCorrelation {
	researched := make(map[string]bool, len(research))
	for _, r := range research {
		if id := strings.TrimSpace(r.JobID); id != "" {
			researched[id] = true
		}
	}

	var result types.ResearchCorrelation
	var withSuccess, withoutSuccess int
	for _, app := range apps {
		progressed := normalize.HasProgressed(n.JobStatus(app.Status))
		if researched[app.ID] {
			result.Researched++
			if progressed {
				withSuccess++
			}
			continue
		}
		result.NotResearched++
		if progressed {
			withoutSuccess++
		}
	}

	result.SuccessRateWithResearch = calc.Percent(withSuccess, result.Researched)
	result.SuccessRateWithoutResearch = calc.Percent(withoutSuccess, result.NotResearched)
	return result
}

// ChecklistCorrelation compares the average checklist completion of
// applications that progressed with those that did not. When several
// checklists reference the same application the highest completion is used.
func ChecklistCorrelation(apps []types.ApplicationRecord, checklists []types.ChecklistRecord, n *normalize.Normalizer) types.ChecklistCorrelation {
	completion := make(map[string]float64)
	for _, c := range checklists {
		if c.CompletionPercentage == nil || c.JobID == "" {
			continue
		}
		v := calc.Clamp(calc.Finite(*c.CompletionPercentage), 0, 100)
		if cur, ok := completion[c.JobID]; !ok || v > cur {
			completion[c.JobID] = v
		}
	}

	var progressed, stalled []float64
	for _, app := range apps {
		v, ok := completion[app.ID]
		if !ok {
			continue
		}
		if normalize.HasProgressed(n.JobStatus(app.Status)) {
			progressed = append(progressed, v)
		} else {
			stalled = append(stalled, v)
		}
	}

	return types.ChecklistCorrelation{
		Samples:                 len(progressed) + len(stalled),
		AvgCompletionProgressed: calc.Mean(progressed),
		AvgCompletionStalled:    calc.Mean(stalled),
	}
}

// InterviewTypeSuccess reports the offer rate of completed interviews per
// interview type, in order of first occurrence.
func InterviewTypeSuccess(interviews []types.InterviewRecord, n *normalize.Normalizer, now time.Time) []types.InterviewTypeStat {
	stats := make([]types.InterviewTypeStat, 0)
	index := make(map[string]int)

	for _, iv := range interviews {
		kind := strings.TrimSpace(iv.InterviewType)
		if kind == "" || !n.IsInterviewCompleted(iv, now) {
			continue
		}
		i, ok := index[kind]
		if !ok {
			i = len(stats)
			index[kind] = i
			stats = append(stats, types.InterviewTypeStat{InterviewType: kind})
		}
		stats[i].Completed++
		if normalize.IsOffer(n.InterviewOutcome(iv.Outcome)) {
			stats[i].Successful++
		}
	}

	for i := range stats {
		stats[i].SuccessRate = calc.Percent(stats[i].Successful, stats[i].Completed)
	}
	return stats
}
