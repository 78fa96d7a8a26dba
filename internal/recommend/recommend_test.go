package recommend

import (
	"testing"

	"github.com/jonathan/jobsearch-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(recs []types.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Title)
	}
	return out
}

func TestGenerate_EmptyInputReturnsFallback(t *testing.T) {
	g := New(DefaultThresholds())

	for _, in := range []*Input{nil, {}} {
		recs := g.Generate(in)
		require.Len(t, recs, 1)
		assert.Equal(t, Fallback(), recs[0])
		assert.Equal(t, "Keep building your data", recs[0].Title)
		assert.Equal(t, CategoryData, recs[0].Category)
		assert.Equal(t, types.PriorityLow, recs[0].Priority)
	}
}

func TestGenerate_SortsByPriorityStably(t *testing.T) {
	in := &Input{
		Funnel: types.FunnelMetrics{
			Total:                20,
			Responded:            1,
			ResponseRate:         5,
			TotalInterviews:      4,
			InterviewConversion:  20,
			InterviewSuccessRate: 0,
		},
		WeeklyCadence: 2,
		Pipeline:      types.PipelineHealth{StaleApplications: 4, UnpreparedInterviews: 1},
		Correlations: types.Correlations{
			Predictions: types.PredictionAccuracy{Samples: 4, AvgPredicted: 70, ActualSuccessRate: 25, CalibrationGap: 45},
		},
	}

	recs := New(DefaultThresholds()).Generate(in)

	assert.Equal(t, []string{
		"Improve your response rate",
		"Strengthen your interview performance",
		"Prepare for upcoming interviews",
		"Increase your application volume",
		"Follow up on quiet applications",
		"Recalibrate your expectations",
	}, titles(recs))

	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i-1].Priority.Rank(), recs[i].Priority.Rank())
	}
}

func TestRules_Gating(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name string
		rule Rule
		in   Input
		want bool
	}{
		{"response rate below floor", LowResponseRate, Input{Funnel: types.FunnelMetrics{Total: 10, ResponseRate: 5}}, true},
		{"response rate too few apps", LowResponseRate, Input{Funnel: types.FunnelMetrics{Total: 2, ResponseRate: 0}}, false},
		{"response rate healthy", LowResponseRate, Input{Funnel: types.FunnelMetrics{Total: 10, ResponseRate: 10}}, false},
		{"interview conversion low", LowInterviewConversion, Input{Funnel: types.FunnelMetrics{Total: 40, Responded: 8, InterviewConversion: 2.5}}, true},
		{"interview conversion no responses", LowInterviewConversion, Input{Funnel: types.FunnelMetrics{Total: 40}}, false},
		{"interview success low", LowInterviewSuccess, Input{Funnel: types.FunnelMetrics{TotalInterviews: 3, InterviewSuccessRate: 0}}, true},
		{"interview success few interviews", LowInterviewSuccess, Input{Funnel: types.FunnelMetrics{TotalInterviews: 2}}, false},
		{
			"prep pays off",
			PrepPaysOff,
			Input{Correlations: types.Correlations{Prep: types.PrepCorrelation{LookbackDays: 7, WithPrep: 2, WithoutPrep: 2, Delta: 50}}},
			true,
		},
		{
			"prep too few samples",
			PrepPaysOff,
			Input{Correlations: types.Correlations{Prep: types.PrepCorrelation{WithPrep: 1, WithoutPrep: 5, Delta: 100}}},
			false,
		},
		{
			"mock small delta",
			MockPaysOff,
			Input{Correlations: types.Correlations{Mock: types.PrepCorrelation{WithPrep: 3, WithoutPrep: 3, Delta: 10}}},
			false,
		},
		{
			"research pays off",
			ResearchPaysOff,
			Input{Correlations: types.Correlations{Research: types.ResearchCorrelation{
				Researched: 4, NotResearched: 6, SuccessRateWithResearch: 50, SuccessRateWithoutResearch: 16.7,
			}}},
			true,
		},
		{"no pace without data", LowWeeklyVolume, Input{}, false},
		{"stale below threshold", StalePipeline, Input{Pipeline: types.PipelineHealth{StaleApplications: 2}}, false},
		{"all interviews prepared", UnpreparedInterviews, Input{}, false},
		{
			"well calibrated",
			Overconfidence,
			Input{Correlations: types.Correlations{Predictions: types.PredictionAccuracy{Samples: 10, CalibrationGap: 5}}},
			false,
		},
		{
			"underconfident",
			Overconfidence,
			Input{Correlations: types.Correlations{Predictions: types.PredictionAccuracy{Samples: 10, CalibrationGap: -40}}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			_, ok := tt.rule(&in, th)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestBestApplicationDay(t *testing.T) {
	in := &Input{Patterns: types.Patterns{DayOfWeek: types.BucketRanking{
		Ranked: []types.Bucket{
			{Key: "Tuesday", Count: 6, SuccessRate: 50},
			{Key: "Friday", Count: 4, SuccessRate: 25},
		},
	}}}

	rec, ok := BestApplicationDay(in, DefaultThresholds())

	require.True(t, ok)
	assert.Equal(t, "Apply on Tuesday", rec.Title)
	assert.Equal(t, CategoryTiming, rec.Category)
	assert.Equal(t, "50.0% progress rate over 6 applications", rec.Metric)
}

func TestBestBucketRules_NeedAClearLeader(t *testing.T) {
	single := types.BucketRanking{Ranked: []types.Bucket{{Key: "Fintech", Count: 5, SuccessRate: 80}}}
	tied := types.BucketRanking{Ranked: []types.Bucket{
		{Key: "Fintech", Count: 5, SuccessRate: 40},
		{Key: "Health", Count: 5, SuccessRate: 40},
	}}
	zero := types.BucketRanking{Ranked: []types.Bucket{{Key: "A", Count: 5}, {Key: "B", Count: 3}}}

	for _, r := range []types.BucketRanking{single, tied, zero} {
		_, ok := BestIndustry(&Input{Patterns: types.Patterns{Industry: r}}, DefaultThresholds())
		assert.False(t, ok)
	}
}

func TestGenerate_CustomRules(t *testing.T) {
	always := func(in *Input, _ Thresholds) (types.Recommendation, bool) {
		return types.Recommendation{Priority: types.PriorityLow, Title: "low"}, true
	}
	urgent := func(in *Input, _ Thresholds) (types.Recommendation, bool) {
		return types.Recommendation{Priority: types.PriorityHigh, Title: "high"}, true
	}

	recs := NewWithRules(DefaultThresholds(), always, urgent, always).Generate(&Input{})

	assert.Equal(t, []string{"high", "low", "low"}, titles(recs))
}

func TestTop(t *testing.T) {
	recs := []types.Recommendation{{Title: "a"}, {Title: "b"}, {Title: "c"}}

	assert.Equal(t, []string{"a", "b"}, titles(Top(recs, 2)))
	assert.Len(t, Top(recs, 5), 3)
	assert.Len(t, Top(recs, 0), 3)
	assert.Empty(t, Top(nil, 3))
}

func TestGenerate_Idempotent(t *testing.T) {
	in := &Input{Funnel: types.FunnelMetrics{Total: 10, ResponseRate: 0}, WeeklyCadence: 1}
	g := New(DefaultThresholds())

	assert.Equal(t, g.Generate(in), g.Generate(in))
}
