package types

import "time"

// PrepCorrelation compares interview success with and without preparatory activity.
type PrepCorrelation struct {
	LookbackDays           int     `json:"lookback_days"`
	WithPrep               int     `json:"with_prep"`
	WithoutPrep            int     `json:"without_prep"`
	SuccessRateWithPrep    float64 `json:"success_rate_with_prep"`
	SuccessRateWithoutPrep float64 `json:"success_rate_without_prep"`
	Delta                  float64 `json:"delta"`
	Skipped                int     `json:"skipped"`
}

// ResearchCorrelation compares application progression with and without company research.
type ResearchCorrelation struct {
	Researched                 int     `json:"researched"`
	NotResearched              int     `json:"not_researched"`
	SuccessRateWithResearch    float64 `json:"success_rate_with_research"`
	SuccessRateWithoutResearch float64 `json:"success_rate_without_research"`
}

// ChecklistCorrelation compares checklist completion for progressed and stalled applications.
type ChecklistCorrelation struct {
	Samples                 int     `json:"samples"`
	AvgCompletionProgressed float64 `json:"avg_completion_progressed"`
	AvgCompletionStalled    float64 `json:"avg_completion_stalled"`
}

// PredictionAccuracy compares self-predicted probabilities with actual outcomes.
type PredictionAccuracy struct {
	Samples            int     `json:"samples"`
	AvgPredicted       float64 `json:"avg_predicted"`
	ActualSuccessRate  float64 `json:"actual_success_rate"`
	CalibrationGap     float64 `json:"calibration_gap"`
	PendingPredictions int     `json:"pending_predictions"`
}

// InterviewTypeStat is the success rate of completed interviews of one type.
type InterviewTypeStat struct {
	InterviewType string  `json:"interview_type"`
	Completed     int     `json:"completed"`
	Successful    int     `json:"successful"`
	SuccessRate   float64 `json:"success_rate"`
}

// Correlations groups the outputs of the correlation analyzer.
type Correlations struct {
	Prep          PrepCorrelation      `json:"prep"`
	Mock          PrepCorrelation      `json:"mock"`
	Research      ResearchCorrelation  `json:"research"`
	Checklist     ChecklistCorrelation `json:"checklist"`
	Predictions   PredictionAccuracy   `json:"predictions"`
	InterviewType []InterviewTypeStat  `json:"interview_types"`
}

// Bucket is one group of applications sharing a dimension value.
type Bucket struct {
	Key         string  `json:"key"`
	Order       int     `json:"order"`
	Count       int     `json:"count"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
}

// BucketRanking holds buckets ranked by success rate.
// Buckets below the minimum sample size are reported separately.
type BucketRanking struct {
	Dimension     string   `json:"dimension"`
	MinSampleSize int      `json:"min_sample_size"`
	Ranked        []Bucket `json:"ranked"`
	Insufficient  []Bucket `json:"insufficient"`
}

// Best returns the top-ranked bucket, if any.
func (r BucketRanking) Best() (Bucket, bool) {
	if len(r.Ranked) == 0 {
		return Bucket{}, false
	}
	return r.Ranked[0], true
}

// Patterns groups the ranked dimensions.
type Patterns struct {
	DayOfWeek   BucketRanking `json:"day_of_week"`
	Industry    BucketRanking `json:"industry"`
	CompanySize BucketRanking `json:"company_size"`
}

// Milestone names, in pipeline order.
const (
	MilestoneFirstResponse  = "first_response"
	MilestoneFirstInterview = "first_interview"
	MilestoneOffer          = "offer"
)

// Stage is a projected pipeline milestone.
type Stage struct {
	Name           string    `json:"name"`
	EstimatedDays  int       `json:"estimated_days"`
	Confidence     int       `json:"confidence"`
	CompletionDate time.Time `json:"completion_date"`
	UsedDefault    bool      `json:"used_default"`
}

// Forecast is the milestone projection.
type Forecast struct {
	ActivityMultiplier float64 `json:"activity_multiplier"`
	Stages             []Stage `json:"stages"`
	OverallConfidence  int     `json:"overall_confidence"`
}

// Scenario is a what-if projection for one application strategy.
type Scenario struct {
	Name                string  `json:"name"`
	ApplicationsPerWeek float64 `json:"applications_per_week"`
	ResponseRate        float64 `json:"response_rate"`
	InterviewConversion float64 `json:"interview_conversion"`
	OfferConversion     float64 `json:"offer_conversion"`
	EstimatedDays       int     `json:"estimated_days"`
	EstimatedOffers     int     `json:"estimated_offers"`
	Confidence          int     `json:"confidence"`
}

// Priority ranks recommendations.
type Priority string

// Recommendation priorities
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of the priority (lower sorts first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Recommendation is an actionable suggestion derived from the metrics.
type Recommendation struct {
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Metric      string   `json:"metric"`
}

// SkippedCounts reports records left out of computations because of missing or malformed fields.
type SkippedCounts struct {
	Applications int `json:"applications"`
	Interviews   int `json:"interviews"`
	TimeEntries  int `json:"time_entries"`
	Predictions  int `json:"predictions"`
}

// PipelineHealth flags applications and interviews that need attention.
type PipelineHealth struct {
	StaleApplications    int `json:"stale_applications"`
	UnpreparedInterviews int `json:"unprepared_interviews"`
}

// Report is the complete analytics output for one dataset.
type Report struct {
	GeneratedAt     time.Time        `json:"generated_at"`
	Funnel          FunnelMetrics    `json:"funnel"`
	Breakdowns      Breakdowns       `json:"breakdowns"`
	AverageTimes    AverageTimes     `json:"average_times"`
	Activity        ActivitySummary  `json:"activity"`
	Referrals       []ReferralStat   `json:"referrals"`
	Salary          SalaryStats      `json:"salary"`
	WeeklyCadence   float64          `json:"weekly_cadence"`
	Pipeline        PipelineHealth   `json:"pipeline"`
	Correlations    Correlations     `json:"correlations"`
	Patterns        Patterns         `json:"patterns"`
	Forecast        Forecast         `json:"forecast"`
	Scenarios       []Scenario       `json:"scenarios"`
	Recommendations []Recommendation `json:"recommendations"`
	Skipped         SkippedCounts    `json:"skipped"`
}
