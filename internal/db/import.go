package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/jobsearch-insights/internal/types"
)

// ImportResult reports how many rows were written per collection.
type ImportResult struct {
	Applications int `json:"applications"`
	Interviews   int `json:"interviews"`
	TimeEntries  int `json:"time_entries"`
	Predictions  int `json:"predictions"`
	Research     int `json:"research"`
	Checklists   int `json:"checklists"`
}

// Total returns the number of rows written.
func (r ImportResult) Total() int {
	return r.Applications + r.Interviews + r.TimeEntries + r.Predictions + r.Research + r.Checklists
}

var userTables = []string{
	"job_applications",
	"interviews",
	"time_entries",
	"interview_predictions",
	"company_research",
	"application_checklists",
}

// ImportDataset replaces all of a user's records with the contents of ds
// inside a single transaction.
func (db *DB) ImportDataset(ctx context.Context, userID uuid.UUID, ds *types.Dataset) (ImportResult, error) {
	var res ImportResult
	if ds == nil {
		ds = &types.Dataset{}
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rErr)
		}
	}()

	for _, table := range userTables {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE user_id = $1", userID); err != nil {
			return res, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	batch := &pgx.Batch{}
	for _, a := range ds.Applications {
		batch.Queue(`INSERT INTO job_applications (id, user_id, company_name, job_title, industry, company_size,
			status, referral_source, salary_max, archived_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			recordID(userID, a.ID), userID, a.CompanyName, a.JobTitle, nullString(a.Industry),
			nullString(a.CompanySize), a.Status, nullString(a.ReferralSource), a.SalaryMax,
			a.ArchivedAt, a.CreatedAt, nullTime(a.UpdatedAt))
		res.Applications++
	}
	for _, iv := range ds.Interviews {
		batch.Queue(`INSERT INTO interviews (id, user_id, job_id, interview_date, interview_type, status, outcome)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			recordID(userID, iv.ID), userID, jobRef(userID, iv.JobID), nullTime(iv.InterviewDate),
			iv.InterviewType, iv.Status, iv.Outcome)
		res.Interviews++
	}
	for _, e := range ds.TimeEntries {
		batch.Queue(`INSERT INTO time_entries (id, user_id, started_at, ended_at, activity_type)
			VALUES ($1, $2, $3, $4, $5)`,
			recordID(userID, e.ID), userID, nullTime(e.StartedAt), e.EndedAt, e.ActivityType)
		res.TimeEntries++
	}
	for _, p := range ds.Predictions {
		batch.Queue(`INSERT INTO interview_predictions (id, user_id, overall_probability, actual_outcome, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			recordID(userID, p.ID), userID, nullFloat(p.OverallProbability), nullString(p.ActualOutcome),
			createdAt(p.CreatedAt))
		res.Predictions++
	}
	for _, r := range ds.Research {
		batch.Queue(`INSERT INTO company_research (id, user_id, job_id) VALUES ($1, $2, $3)`,
			recordID(userID, r.ID), userID, jobRef(userID, r.JobID))
		res.Research++
	}
	for _, c := range ds.Checklists {
		batch.Queue(`INSERT INTO application_checklists (id, user_id, job_id, completion_percentage)
			VALUES ($1, $2, $3, $4)`,
			recordID(userID, c.ID), userID, jobRef(userID, c.JobID), c.CompletionPercentage)
		res.Checklists++
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return ImportResult{}, fmt.Errorf("failed to insert records: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return ImportResult{}, fmt.Errorf("failed to commit import: %w", err)
	}
	return res, nil
}

// recordID keeps identifiers that are already UUIDs. Any other identifier
// is mapped to a stable name-based UUID scoped to the user, so weak
// references between collections survive the import.
func recordID(userID uuid.UUID, id string) uuid.UUID {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed
	}
	if id == "" {
		return uuid.New()
	}
	return uuid.NewSHA1(userID, []byte(id))
}

func jobRef(userID uuid.UUID, jobID string) *uuid.UUID {
	if jobID == "" {
		return nil
	}
	id := recordID(userID, jobID)
	return &id
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nullFloat(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
