package correlation

import (
	"testing"
	"time"

	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return now.AddDate(0, 0, offset)
}

func ptr[T any](v T) *T {
	return &v
}

func entry(start time.Time, activity string) types.TimeEntry {
	end := start.Add(time.Hour)
	return types.TimeEntry{StartedAt: start, EndedAt: &end, ActivityType: activity}
}

var generalPrep = PrepParams{LookbackDays: 7, QualifyingActivities: []string{"Interview Prep", "Company Research"}}

func TestPrepCorrelation_LiteralExample(t *testing.T) {
	interviews := []types.InterviewRecord{
		{ID: "i1", InterviewDate: day(-20), Status: "completed", Outcome: "offered"},
		{ID: "i2", InterviewDate: day(-10), Status: "completed", Outcome: "declined"},
		{ID: "i3", InterviewDate: day(-2), Status: "completed", Outcome: "declined"},
	}
	entries := []types.TimeEntry{
		entry(day(-22), "interview prep"),
		entry(day(-12), "Interview Prep"),
		entry(day(-30), "interview prep"),
	}

	got := PrepCorrelation(interviews, entries, generalPrep, normalize.Default(), now)

	assert.Equal(t, 2, got.WithPrep)
	assert.Equal(t, 1, got.WithoutPrep)
	assert.InDelta(t, 50.0, got.SuccessRateWithPrep, 1e-9)
	assert.InDelta(t, 0.0, got.SuccessRateWithoutPrep, 1e-9)
	assert.InDelta(t, 50.0, got.Delta, 1e-9)
	assert.Equal(t, 7, got.LookbackDays)
}

func TestPrepCorrelation_WindowBoundsInclusive(t *testing.T) {
	ivDate := day(-1)
	interviews := []types.InterviewRecord{{InterviewDate: ivDate, Status: "done", Outcome: "offer"}}

	atStart := []types.TimeEntry{entry(ivDate.AddDate(0, 0, -7), "interview prep")}
	atEnd := []types.TimeEntry{entry(ivDate, "interview prep")}
	tooEarly := []types.TimeEntry{entry(ivDate.AddDate(0, 0, -7).Add(-time.Second), "interview prep")}
	after := []types.TimeEntry{entry(ivDate.Add(time.Second), "interview prep")}

	n := normalize.Default()
	assert.Equal(t, 1, PrepCorrelation(interviews, atStart, generalPrep, n, now).WithPrep)
	assert.Equal(t, 1, PrepCorrelation(interviews, atEnd, generalPrep, n, now).WithPrep)
	assert.Equal(t, 0, PrepCorrelation(interviews, tooEarly, generalPrep, n, now).WithPrep)
	assert.Equal(t, 0, PrepCorrelation(interviews, after, generalPrep, n, now).WithPrep)
}

func TestPrepCorrelation_LookbackIsAParameter(t *testing.T) {
	interviews := []types.InterviewRecord{{InterviewDate: day(-1), Status: "completed", Outcome: "offer"}}
	entries := []types.TimeEntry{entry(day(-11), "Mock Interview")}
	n := normalize.Default()

	week := PrepCorrelation(interviews, entries, PrepParams{LookbackDays: 7, QualifyingActivities: []string{"mock interview"}}, n, now)
	fortnight := PrepCorrelation(interviews, entries, PrepParams{LookbackDays: 14, QualifyingActivities: []string{"mock interview"}}, n, now)

	assert.Equal(t, 0, week.WithPrep)
	assert.Equal(t, 1, fortnight.WithPrep)
	assert.InDelta(t, 100.0, fortnight.SuccessRateWithPrep, 1e-9)
	assert.Equal(t, 0.0, fortnight.SuccessRateWithoutPrep)
}

func TestPrepCorrelation_IgnoresNonQualifyingAndIncomplete(t *testing.T) {
	interviews := []types.InterviewRecord{
		{InterviewDate: day(-1), Status: "completed", Outcome: "offer"},
		{InterviewDate: day(3), Status: "scheduled"},
		{Status: "completed"},
	}
	entries := []types.TimeEntry{entry(day(-2), "Networking"), {ActivityType: "interview prep"}}

	got := PrepCorrelation(interviews, entries, generalPrep, normalize.Default(), now)

	assert.Equal(t, 0, got.WithPrep)
	assert.Equal(t, 1, got.WithoutPrep)
	assert.Equal(t, 1, got.Skipped)
	assert.InDelta(t, 100.0, got.SuccessRateWithoutPrep, 1e-9)
}

func TestPrepCorrelation_Empty(t *testing.T) {
	got := PrepCorrelation(nil, nil, generalPrep, normalize.Default(), now)

	assert.Equal(t, types.PrepCorrelation{LookbackDays: 7}, got)
}

func TestPrepCorrelation_Idempotent(t *testing.T) {
	interviews := []types.InterviewRecord{{InterviewDate: day(-1), Status: "completed", Outcome: "offer"}}
	entries := []types.TimeEntry{entry(day(-3), "interview prep"), entry(day(-30), "interview prep")}
	n := normalize.Default()

	assert.Equal(t,
		PrepCorrelation(interviews, entries, generalPrep, n, now),
		PrepCorrelation(interviews, entries, generalPrep, n, now))
}

func TestUnpreparedUpcoming(t *testing.T) {
	interviews := []types.InterviewRecord{
		{InterviewDate: day(2)},  // prepped four days ago
		{InterviewDate: day(6)},  // window opens yesterday
		{InterviewDate: day(20)}, // too far out
		{InterviewDate: day(-2)}, // already happened
		{},
	}
	entries := []types.TimeEntry{
		entry(day(-4), "Interview Prep"),
		entry(day(-1), "networking"),
	}

	assert.Equal(t, 1, UnpreparedUpcoming(interviews, entries, generalPrep, now))
	assert.Equal(t, 2, UnpreparedUpcoming(interviews, nil, generalPrep, now))
	assert.Zero(t, UnpreparedUpcoming(nil, entries, generalPrep, now))
}

func TestResearchCorrelation(t *testing.T) {
	apps := []types.ApplicationRecord{
		{ID: "a1", Status: "interviewing"},
		{ID: "a2", Status: "applied"},
		{ID: "a3", Status: "responded"},
		{ID: "a4", Status: "applied"},
		{ID: "a5", Status: "rejected"},
	}
	research := []types.ResearchRecord{
		{ID: "r1", JobID: "a1"},
		{ID: "r2", JobID: "a2"},
		{ID: "r3", JobID: "a1"},
		{ID: "r4", JobID: "missing"},
	}

	got := ResearchCorrelation(apps, research, normalize.Default())

	assert.Equal(t, 2, got.Researched)
	assert.Equal(t, 3, got.NotResearched)
	assert.InDelta(t, 50.0, got.SuccessRateWithResearch, 1e-9)
	assert.InDelta(t, 100.0/3, got.SuccessRateWithoutResearch, 1e-9)
}

func TestResearchCorrelation_NoResearch(t *testing.T) {
	got := ResearchCorrelation([]types.ApplicationRecord{{ID: "a1", Status: "offer"}}, nil, normalize.Default())

	assert.Equal(t, 0, got.Researched)
	assert.Equal(t, 0.0, got.SuccessRateWithResearch)
	assert.InDelta(t, 100.0, got.SuccessRateWithoutResearch, 1e-9)
}

func TestChecklistCorrelation(t *testing.T) {
	apps := []types.ApplicationRecord{
		{ID: "a1", Status: "interviewing"},
		{ID: "a2", Status: "applied"},
		{ID: "a3", Status: "applied"},
	}
	checklists := []types.ChecklistRecord{
		{JobID: "a1", CompletionPercentage: ptr(60.0)},
		{JobID: "a1", CompletionPercentage: ptr(90.0)},
		{JobID: "a2", CompletionPercentage: ptr(40.0)},
		{JobID: "a3", CompletionPercentage: ptr(140.0)},
		{JobID: "a3"},
		{JobID: "ghost", CompletionPercentage: ptr(10.0)},
	}

	got := ChecklistCorrelation(apps, checklists, normalize.Default())

	assert.Equal(t, 3, got.Samples)
	assert.InDelta(t, 90.0, got.AvgCompletionProgressed, 1e-9)
	assert.InDelta(t, 70.0, got.AvgCompletionStalled, 1e-9)
}

func TestInterviewTypeSuccess(t *testing.T) {
	interviews := []types.InterviewRecord{
		{InterviewType: "Technical", InterviewDate: day(-3), Status: "completed", Outcome: "offer"},
		{InterviewType: "Behavioral", InterviewDate: day(-4), Status: "completed", Outcome: "rejected"},
		{InterviewType: "Technical", InterviewDate: day(-5), Status: "completed", Outcome: "rejected"},
		{InterviewType: "Technical", InterviewDate: day(5), Status: "scheduled"},
		{InterviewDate: day(-5), Status: "completed", Outcome: "offer"},
	}

	stats := InterviewTypeSuccess(interviews, normalize.Default(), now)

	require.Len(t, stats, 2)
	assert.Equal(t, "Technical", stats[0].InterviewType)
	assert.Equal(t, 2, stats[0].Completed)
	assert.InDelta(t, 50.0, stats[0].SuccessRate, 1e-9)
	assert.Equal(t, 0.0, stats[1].SuccessRate)
}

func TestPredictionAccuracy(t *testing.T) {
	predictions := []types.PredictionRecord{
		{OverallProbability: 80, ActualOutcome: "offer"},
		{OverallProbability: 0.6, ActualOutcome: "rejected"},
		{OverallProbability: 50},
	}

	got := PredictionAccuracy(predictions, normalize.Default())

	assert.Equal(t, 2, got.Samples)
	assert.Equal(t, 1, got.PendingPredictions)
	assert.InDelta(t, 70.0, got.AvgPredicted, 1e-9)
	assert.InDelta(t, 50.0, got.ActualSuccessRate, 1e-9)
	assert.InDelta(t, 20.0, got.CalibrationGap, 1e-9)
}

func TestPredictionAccuracy_Empty(t *testing.T) {
	assert.Equal(t, types.PredictionAccuracy{}, PredictionAccuracy(nil, normalize.Default()))
}
