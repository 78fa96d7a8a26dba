package db

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// -----------------------------------------------------------------------------
// Row types
// -----------------------------------------------------------------------------

// Nullable columns scan into pointers and are resolved to the record
// defaults (empty string, zero time, nil) when converted.

type applicationRow struct {
	ID             uuid.UUID  `db:"id"`
	CompanyName    *string    `db:"company_name"`
	JobTitle       *string    `db:"job_title"`
	Industry       *string    `db:"industry"`
	CompanySize    *string    `db:"company_size"`
	Status         *string    `db:"status"`
	ReferralSource *string    `db:"referral_source"`
	SalaryMax      *float64   `db:"salary_max"`
	ArchivedAt     *time.Time `db:"archived_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
}

type interviewRow struct {
	ID            uuid.UUID  `db:"id"`
	JobID         *uuid.UUID `db:"job_id"`
	InterviewDate *time.Time `db:"interview_date"`
	InterviewType *string    `db:"interview_type"`
	Status        *string    `db:"status"`
	Outcome       *string    `db:"outcome"`
}

type timeEntryRow struct {
	ID           uuid.UUID  `db:"id"`
	StartedAt    *time.Time `db:"started_at"`
	EndedAt      *time.Time `db:"ended_at"`
	ActivityType *string    `db:"activity_type"`
}

type predictionRow struct {
	ID                 uuid.UUID `db:"id"`
	OverallProbability *float64  `db:"overall_probability"`
	ActualOutcome      *string   `db:"actual_outcome"`
	CreatedAt          time.Time `db:"created_at"`
}

type researchRow struct {
	ID    uuid.UUID  `db:"id"`
	JobID *uuid.UUID `db:"job_id"`
}

type checklistRow struct {
	ID                   uuid.UUID  `db:"id"`
	JobID                *uuid.UUID `db:"job_id"`
	CompletionPercentage *float64   `db:"completion_percentage"`
}

// -----------------------------------------------------------------------------
// Queries
// -----------------------------------------------------------------------------

const (
	selectApplications = `SELECT id, company_name, job_title, industry, company_size, status,
		referral_source, salary_max, archived_at, created_at, updated_at
		FROM job_applications WHERE user_id = $1 ORDER BY created_at`
	selectInterviews = `SELECT id, job_id, interview_date, interview_type, status, outcome
		FROM interviews WHERE user_id = $1 ORDER BY interview_date NULLS LAST`
	selectTimeEntries = `SELECT id, started_at, ended_at, activity_type
		FROM time_entries WHERE user_id = $1 ORDER BY started_at NULLS LAST`
	selectPredictions = `SELECT id, overall_probability, actual_outcome, created_at
		FROM interview_predictions WHERE user_id = $1 ORDER BY created_at`
	selectResearch = `SELECT id, job_id
		FROM company_research WHERE user_id = $1 ORDER BY id`
	selectChecklists = `SELECT id, job_id, completion_percentage
		FROM application_checklists WHERE user_id = $1 ORDER BY id`
)

// LoadDataset fetches all of a user's record collections concurrently.
// The first failing query cancels the others.
func (db *DB) LoadDataset(ctx context.Context, userID uuid.UUID) (*types.Dataset, error) {
	var (
		apps        []applicationRow
		interviews  []interviewRow
		entries     []timeEntryRow
		predictions []predictionRow
		research    []researchRow
		checklists  []checklistRow
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		apps, err = queryRows[applicationRow](gCtx, db, "applications", selectApplications, userID)
		return err
	})
	g.Go(func() (err error) {
		interviews, err = queryRows[interviewRow](gCtx, db, "interviews", selectInterviews, userID)
		return err
	})
	g.Go(func() (err error) {
		entries, err = queryRows[timeEntryRow](gCtx, db, "time entries", selectTimeEntries, userID)
		return err
	})
	g.Go(func() (err error) {
		predictions, err = queryRows[predictionRow](gCtx, db, "predictions", selectPredictions, userID)
		return err
	})
	g.Go(func() (err error) {
		research, err = queryRows[researchRow](gCtx, db, "research", selectResearch, userID)
		return err
	})
	g.Go(func() (err error) {
		checklists, err = queryRows[checklistRow](gCtx, db, "checklists", selectChecklists, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.Dataset{
		Applications: mapRows(apps, toApplication),
		Interviews:   mapRows(interviews, toInterview),
		TimeEntries:  mapRows(entries, toTimeEntry),
		Predictions:  mapRows(predictions, toPrediction),
		Research:     mapRows(research, toResearch),
		Checklists:   mapRows(checklists, toChecklist),
	}, nil
}

func queryRows[T any](ctx context.Context, db *DB, what, sql string, userID uuid.UUID) ([]T, error) {
	rows, err := db.pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", what, err)
	}
	return out, nil
}

func mapRows[R, T any](rows []R, fn func(R) T) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

// -----------------------------------------------------------------------------
// Row conversion
// -----------------------------------------------------------------------------

func toApplication(r applicationRow) types.ApplicationRecord {
	return types.ApplicationRecord{
		ID:             r.ID.String(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      deref(r.UpdatedAt),
		CompanyName:    deref(r.CompanyName),
		JobTitle:       deref(r.JobTitle),
		Industry:       deref(r.Industry),
		CompanySize:    deref(r.CompanySize),
		Status:         deref(r.Status),
		ArchivedAt:     r.ArchivedAt,
		ReferralSource: deref(r.ReferralSource),
		SalaryMax:      r.SalaryMax,
	}
}

func toInterview(r interviewRow) types.InterviewRecord {
	return types.InterviewRecord{
		ID:            r.ID.String(),
		JobID:         uuidString(r.JobID),
		InterviewDate: deref(r.InterviewDate),
		InterviewType: deref(r.InterviewType),
		Status:        deref(r.Status),
		Outcome:       deref(r.Outcome),
	}
}

func toTimeEntry(r timeEntryRow) types.TimeEntry {
	return types.TimeEntry{
		ID:           r.ID.String(),
		StartedAt:    deref(r.StartedAt),
		EndedAt:      r.EndedAt,
		ActivityType: deref(r.ActivityType),
	}
}

// toPrediction normalizes the probability to 0-100. A NULL probability
// becomes NaN so the analytics layer skips and counts it.
func toPrediction(r predictionRow) types.PredictionRecord {
	p := math.NaN()
	if r.OverallProbability != nil {
		p = normalize.NormalizeProbability(*r.OverallProbability)
	}
	return types.PredictionRecord{
		ID:                 r.ID.String(),
		CreatedAt:          r.CreatedAt,
		OverallProbability: p,
		ActualOutcome:      deref(r.ActualOutcome),
	}
}

func toResearch(r researchRow) types.ResearchRecord {
	return types.ResearchRecord{ID: r.ID.String(), JobID: uuidString(r.JobID)}
}

func toChecklist(r checklistRow) types.ChecklistRecord {
	return types.ChecklistRecord{
		ID:                   r.ID.String(),
		JobID:                uuidString(r.JobID),
		CompletionPercentage: r.CompletionPercentage,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
