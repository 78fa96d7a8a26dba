package dataset

// The document types mirror the on-disk format. Timestamps stay strings so
// that a single malformed value skips one record instead of failing the file.

type document struct {
	Applications []applicationDoc `json:"applications" yaml:"applications"`
	Interviews   []interviewDoc   `json:"interviews" yaml:"interviews"`
	TimeEntries  []timeEntryDoc   `json:"time_entries" yaml:"time_entries"`
	Predictions  []predictionDoc  `json:"predictions" yaml:"predictions"`
	Research     []researchDoc    `json:"research" yaml:"research"`
	Checklists   []checklistDoc   `json:"checklists" yaml:"checklists"`
}

type applicationDoc struct {
	ID             string   `json:"id" yaml:"id"`
	CreatedAt      string   `json:"created_at" yaml:"created_at"`
	UpdatedAt      string   `json:"updated_at" yaml:"updated_at"`
	CompanyName    string   `json:"company_name" yaml:"company_name"`
	JobTitle       string   `json:"job_title" yaml:"job_title"`
	Industry       string   `json:"industry" yaml:"industry"`
	CompanySize    string   `json:"company_size" yaml:"company_size"`
	Status         string   `json:"status" yaml:"status"`
	ArchivedAt     *string  `json:"archived_at" yaml:"archived_at"`
	ReferralSource string   `json:"referral_source" yaml:"referral_source"`
	SalaryMax      *float64 `json:"salary_max" yaml:"salary_max"`
}

type interviewDoc struct {
	ID            string `json:"id" yaml:"id"`
	JobID         string `json:"job_id" yaml:"job_id"`
	InterviewDate string `json:"interview_date" yaml:"interview_date"`
	InterviewType string `json:"interview_type" yaml:"interview_type"`
	Status        string `json:"status" yaml:"status"`
	Outcome       string `json:"outcome" yaml:"outcome"`
}

type timeEntryDoc struct {
	ID           string  `json:"id" yaml:"id"`
	StartedAt    string  `json:"started_at" yaml:"started_at"`
	EndedAt      *string `json:"ended_at" yaml:"ended_at"`
	ActivityType string  `json:"activity_type" yaml:"activity_type"`
}

type predictionDoc struct {
	ID                 string   `json:"id" yaml:"id"`
	CreatedAt          string   `json:"created_at" yaml:"created_at"`
	OverallProbability *float64 `json:"overall_probability" yaml:"overall_probability"`
	ActualOutcome      string   `json:"actual_outcome" yaml:"actual_outcome"`
}

type researchDoc struct {
	ID    string `json:"id" yaml:"id"`
	JobID string `json:"job_id" yaml:"job_id"`
}

type checklistDoc struct {
	ID                   string   `json:"id" yaml:"id"`
	JobID                string   `json:"job_id" yaml:"job_id"`
	CompletionPercentage *float64 `json:"completion_percentage" yaml:"completion_percentage"`
}
