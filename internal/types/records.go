// Package types provides type definitions for the records and derived metrics used throughout the job search insights system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ApplicationRecord represents a logged job application.
// Optional fields are pointers or empty strings; the zero time means the timestamp was absent.
type ApplicationRecord struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CompanyName    string     `json:"company_name"`
	JobTitle       string     `json:"job_title"`
	Industry       string     `json:"industry,omitempty"`
	CompanySize    string     `json:"company_size,omitempty"`
	Status         string     `json:"status"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty"`
	ReferralSource string     `json:"referral_source,omitempty"`
	SalaryMax      *float64   `json:"salary_max,omitempty"`
}

// IsActive reports whether the application has not been archived.
func (a ApplicationRecord) IsActive() bool {
	return a.ArchivedAt == nil
}

// InterviewRecord represents a scheduled or completed interview.
// JobID is a weak reference to ApplicationRecord.ID.
type InterviewRecord struct {
	ID            string    `json:"id"`
	JobID         string    `json:"job_id"`
	InterviewDate time.Time `json:"interview_date"`
	InterviewType string    `json:"interview_type"`
	Status        string    `json:"status"`
	Outcome       string    `json:"outcome"`
}

// TimeEntry represents a time-tracking entry for a job search activity.
type TimeEntry struct {
	ID           string     `json:"id"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	ActivityType string     `json:"activity_type"`
}

// Hours returns the tracked duration in hours.
// Entries that are still open or end before they start contribute zero.
func (e TimeEntry) Hours() float64 {
	if e.EndedAt == nil || e.StartedAt.IsZero() {
		return 0
	}
	d := e.EndedAt.Sub(e.StartedAt)
	if d <= 0 {
		return 0
	}
	return d.Hours()
}

// PredictionRecord represents a self-assessed probability of success.
// OverallProbability is expressed on a 0-100 scale.
type PredictionRecord struct {
	ID                 string    `json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	OverallProbability float64   `json:"overall_probability"`
	ActualOutcome      string    `json:"actual_outcome,omitempty"`
}

// ResearchRecord marks that company research was done for an application.
type ResearchRecord struct {
	ID    string `json:"id"`
	JobID string `json:"job_id"`
}

// ChecklistRecord tracks completion of an application checklist.
type ChecklistRecord struct {
	ID                   string   `json:"id"`
	JobID                string   `json:"job_id"`
	CompletionPercentage *float64 `json:"completion_percentage,omitempty"`
}

// Dataset is the full set of record collections supplied to the analytics core.
type Dataset struct {
	Applications []ApplicationRecord `json:"applications"`
	Interviews   []InterviewRecord   `json:"interviews"`
	TimeEntries  []TimeEntry         `json:"time_entries"`
	Predictions  []PredictionRecord  `json:"predictions"`
	Research     []ResearchRecord    `json:"research"`
	Checklists   []ChecklistRecord   `json:"checklists"`
}

// IsEmpty reports whether the dataset contains no records at all.
func (d *Dataset) IsEmpty() bool {
	if d == nil {
		return true
	}
	return len(d.Applications) == 0 && len(d.Interviews) == 0 && len(d.TimeEntries) == 0 &&
		len(d.Predictions) == 0 && len(d.Research) == 0 && len(d.Checklists) == 0
}
