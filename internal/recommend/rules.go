package recommend

import (
	"fmt"

	"github.com/jonathan/jobsearch-insights/internal/types"
)

// Recommendation categories
const (
	CategoryApplications = "applications"
	CategoryInterviews   = "interviews"
	CategoryPreparation  = "preparation"
	CategoryTiming       = "timing"
	CategoryTargeting    = "targeting"
	CategoryPipeline     = "pipeline"
	CategoryData         = "data"
)

// DefaultRules returns the built-in rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		LowResponseRate,
		LowInterviewConversion,
		LowInterviewSuccess,
		PrepPaysOff,
		MockPaysOff,
		ResearchPaysOff,
		BestApplicationDay,
		BestIndustry,
		LowWeeklyVolume,
		StalePipeline,
		UnpreparedInterviews,
		Overconfidence,
	}
}

// LowResponseRate fires when few applications get any reply.
func LowResponseRate(in *Input, t Thresholds) (types.Recommendation, bool) {
	f := in.Funnel
	if f.Total < t.MinApplications || f.ResponseRate >= t.LowResponseRate {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityHigh,
		Category:    CategoryApplications,
		Title:       "Improve your response rate",
		Description: "Few applications are getting a reply. Tailor your resume to each posting and look for a referral before applying.",
		Metric:      fmt.Sprintf("%.1f%% response rate across %d applications", f.ResponseRate, f.Total),
	}, true
}

// LowInterviewConversion fires when responses rarely turn into interviews.
func LowInterviewConversion(in *Input, t Thresholds) (types.Recommendation, bool) {
	f := in.Funnel
	if f.Total < t.MinApplications || f.Responded == 0 || f.InterviewConversion >= t.LowInterviewConversion {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityMedium,
		Category:    CategoryApplications,
		Title:       "Turn more responses into interviews",
		Description: "Companies reply but few invite you to interview. Follow up quickly and make sure your screening answers match the role.",
		Metric:      fmt.Sprintf("%.1f%% of applications reach an interview", f.InterviewConversion),
	}, true
}

// LowInterviewSuccess fires when interviews rarely end in offers.
func LowInterviewSuccess(in *Input, t Thresholds) (types.Recommendation, bool) {
	f := in.Funnel
	if f.TotalInterviews < t.MinInterviews || f.InterviewSuccessRate >= t.LowInterviewSuccess {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityHigh,
		Category:    CategoryInterviews,
		Title:       "Strengthen your interview performance",
		Description: "Interviews are not converting into offers. Practice common questions and ask for feedback after each round.",
		Metric:      fmt.Sprintf("%.1f%% offer rate over %d interviews", f.InterviewSuccessRate, f.TotalInterviews),
	}, true
}

// PrepPaysOff fires when interviews with recent prep succeed noticeably more often.
func PrepPaysOff(in *Input, t Thresholds) (types.Recommendation, bool) {
	p := in.Correlations.Prep
	if !prepDeltaMeaningful(p, t) {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityMedium,
		Category:    CategoryPreparation,
		Title:       "Keep preparing before interviews",
		Description: fmt.Sprintf("Interviews with prep in the previous %d days go better. Block prep time for every upcoming interview.", p.LookbackDays),
		Metric:      fmt.Sprintf("%.1f%% with prep vs %.1f%% without", p.SuccessRateWithPrep, p.SuccessRateWithoutPrep),
	}, true
}

// MockPaysOff fires when mock interviews or rehearsal correlate with success.
func MockPaysOff(in *Input, t Thresholds) (types.Recommendation, bool) {
	p := in.Correlations.Mock
	if !prepDeltaMeaningful(p, t) {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityMedium,
		Category:    CategoryPreparation,
		Title:       "Schedule mock interviews",
		Description: fmt.Sprintf("Rehearsing within %d days of an interview is linked to better outcomes.", p.LookbackDays),
		Metric:      fmt.Sprintf("%.1f%% with rehearsal vs %.1f%% without", p.SuccessRateWithPrep, p.SuccessRateWithoutPrep),
	}, true
}

func prepDeltaMeaningful(p types.PrepCorrelation, t Thresholds) bool {
	return p.WithPrep >= t.MinCorrelationSamples &&
		p.WithoutPrep >= t.MinCorrelationSamples &&
		p.Delta >= t.MeaningfulDelta
}

// ResearchPaysOff fires when researched companies progress more often.
func ResearchPaysOff(in *Input, t Thresholds) (types.Recommendation, bool) {
	r := in.Correlations.Research
	if r.Researched < t.MinCorrelationSamples || r.NotResearched < t.MinCorrelationSamples {
		return types.Recommendation{}, false
	}
	if r.SuccessRateWithResearch-r.SuccessRateWithoutResearch < t.MeaningfulDelta {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityMedium,
		Category:    CategoryPreparation,
		Title:       "Research companies before applying",
		Description: "Applications to companies you researched progress further. Make research part of every application.",
		Metric:      fmt.Sprintf("%.1f%% progress with research vs %.1f%% without", r.SuccessRateWithResearch, r.SuccessRateWithoutResearch),
	}, true
}

// BestApplicationDay fires when one weekday clearly leads.
func BestApplicationDay(in *Input, _ Thresholds) (types.Recommendation, bool) {
	best, ok := leader(in.Patterns.DayOfWeek)
	if !ok {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityLow,
		Category:    CategoryTiming,
		Title:       fmt.Sprintf("Apply on %s", best.Key),
		Description: fmt.Sprintf("Applications sent on %s get the most traction.", best.Key),
		Metric:      fmt.Sprintf("%.1f%% progress rate over %d applications", best.SuccessRate, best.Count),
	}, true
}

// BestIndustry fires when one industry clearly leads.
func BestIndustry(in *Input, _ Thresholds) (types.Recommendation, bool) {
	best, ok := leader(in.Patterns.Industry)
	if !ok {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityLow,
		Category:    CategoryTargeting,
		Title:       fmt.Sprintf("Focus on %s", best.Key),
		Description: fmt.Sprintf("%s companies respond to you more than other industries.", best.Key),
		Metric:      fmt.Sprintf("%.1f%% progress rate over %d applications", best.SuccessRate, best.Count),
	}, true
}

// leader returns the top bucket when there is something to compare it
// against and it strictly beats the runner-up.
func leader(r types.BucketRanking) (types.Bucket, bool) {
	if len(r.Ranked) < 2 {
		return types.Bucket{}, false
	}
	best := r.Ranked[0]
	if best.SuccessRate <= 0 || best.SuccessRate <= r.Ranked[1].SuccessRate {
		return types.Bucket{}, false
	}
	return best, true
}

// LowWeeklyVolume fires when the recent application pace is thin.
func LowWeeklyVolume(in *Input, t Thresholds) (types.Recommendation, bool) {
	if in.Funnel.Total == 0 || in.WeeklyCadence >= t.LowWeeklyVolume {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityMedium,
		Category:    CategoryApplications,
		Title:       "Increase your application volume",
		Description: "A steadier pace keeps the pipeline full and shortens the time to an offer.",
		Metric:      fmt.Sprintf("%.1f applications per week", in.WeeklyCadence),
	}, true
}

// StalePipeline fires when several active applications have gone quiet.
func StalePipeline(in *Input, t Thresholds) (types.Recommendation, bool) {
	n := in.Pipeline.StaleApplications
	if n < t.StaleApplications {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityMedium,
		Category:    CategoryPipeline,
		Title:       "Follow up on quiet applications",
		Description: "Send a short follow-up or close out applications with no movement.",
		Metric:      fmt.Sprintf("%d stale applications", n),
	}, true
}

// UnpreparedInterviews fires when an upcoming interview has no prep logged.
func UnpreparedInterviews(in *Input, _ Thresholds) (types.Recommendation, bool) {
	n := in.Pipeline.UnpreparedInterviews
	if n == 0 {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityHigh,
		Category:    CategoryInterviews,
		Title:       "Prepare for upcoming interviews",
		Description: "Some interviews this week have no prep time logged yet.",
		Metric:      fmt.Sprintf("%d upcoming interviews without prep", n),
	}, true
}

// Overconfidence fires when self-predicted chances run well above actual results.
func Overconfidence(in *Input, t Thresholds) (types.Recommendation, bool) {
	p := in.Correlations.Predictions
	if p.Samples < t.MinPredictions || p.CalibrationGap < t.OverconfidenceGap {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Priority:    types.PriorityLow,
		Category:    CategoryInterviews,
		Title:       "Recalibrate your expectations",
		Description: "Your predicted chances run higher than actual outcomes. Keep applying while you wait on promising leads.",
		Metric:      fmt.Sprintf("%.1f%% predicted vs %.1f%% actual", p.AvgPredicted, p.ActualSuccessRate),
	}, true
}
