// Package dataset reads job-search record collections from JSON or YAML
// documents. Loading is lenient: a record with a missing or malformed
// required field is skipped and reported, never fatal.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/schemas"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// Format is a dataset document encoding.
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format by file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Collection names used in skip reports
const (
	CollectionApplications = "applications"
	CollectionInterviews   = "interviews"
	CollectionTimeEntries  = "time_entries"
	CollectionPredictions  = "predictions"
	CollectionResearch     = "research"
	CollectionChecklists   = "checklists"
)

// Skip describes one record left out of the dataset.
type Skip struct {
	Collection string `json:"collection"`
	Index      int    `json:"index"`
	ID         string `json:"id,omitempty"`
	Reason     string `json:"reason"`
}

// SkipReport lists every skipped record.
type SkipReport struct {
	Skips []Skip `json:"skips"`
}

// Count returns the number of records skipped from collection.
func (r SkipReport) Count(collection string) int {
	n := 0
	for _, s := range r.Skips {
		if s.Collection == collection {
			n++
		}
	}
	return n
}

// Total returns the number of skipped records.
func (r SkipReport) Total() int {
	return len(r.Skips)
}

func (r *SkipReport) add(collection string, index int, id, reason string) {
	r.Skips = append(r.Skips, Skip{Collection: collection, Index: index, ID: id, Reason: reason})
}

// Load reads and parses a dataset file.
func Load(path string) (*types.Dataset, SkipReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SkipReport{}, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	ds, report, err := Parse(data, FormatFromPath(path))
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, report, err
	}
	return ds, report, nil
}

// Parse decodes a dataset document. JSON input, and YAML after conversion,
// is checked against the dataset schema before records are converted.
func Parse(data []byte, format Format) (*types.Dataset, SkipReport, error) {
	jsonData, err := toJSON(data, format)
	if err != nil {
		return nil, SkipReport{}, err
	}

	if err := schemas.ValidateDataset(jsonData); err != nil {
		return nil, SkipReport{}, &LoadError{Message: "document does not match dataset schema", Cause: err}
	}

	var doc document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, SkipReport{}, &LoadError{Message: "failed to decode dataset", Cause: err}
	}

	ds, report := convert(doc)
	return ds, report, nil
}

// toJSON returns data as JSON, converting YAML through a generic value.
func toJSON(data []byte, format Format) ([]byte, error) {
	if format != FormatYAML {
		return data, nil
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if v == nil {
		v = map[string]any{}
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, &LoadError{Message: "failed to convert YAML to JSON", Cause: err}
	}
	return out, nil
}

func convert(doc document) (*types.Dataset, SkipReport) {
	var report SkipReport
	ds := &types.Dataset{
		Applications: make([]types.ApplicationRecord, 0, len(doc.Applications)),
		Interviews:   make([]types.InterviewRecord, 0, len(doc.Interviews)),
		TimeEntries:  make([]types.TimeEntry, 0, len(doc.TimeEntries)),
		Predictions:  make([]types.PredictionRecord, 0, len(doc.Predictions)),
		Research:     make([]types.ResearchRecord, 0, len(doc.Research)),
		Checklists:   make([]types.ChecklistRecord, 0, len(doc.Checklists)),
	}

	for i, a := range doc.Applications {
		if strings.TrimSpace(a.ID) == "" {
			report.add(CollectionApplications, i, "", "missing id")
			continue
		}
		created, ok := ParseTimestamp(a.CreatedAt)
		if !ok {
			report.add(CollectionApplications, i, a.ID, timestampReason("created_at", a.CreatedAt))
			continue
		}
		updated, _ := ParseTimestamp(a.UpdatedAt)
		ds.Applications = append(ds.Applications, types.ApplicationRecord{
			ID:             a.ID,
			CreatedAt:      created,
			UpdatedAt:      updated,
			CompanyName:    a.CompanyName,
			JobTitle:       a.JobTitle,
			Industry:       a.Industry,
			CompanySize:    a.CompanySize,
			Status:         a.Status,
			ArchivedAt:     optionalTimestamp(a.ArchivedAt),
			ReferralSource: a.ReferralSource,
			SalaryMax:      a.SalaryMax,
		})
	}

	for i, iv := range doc.Interviews {
		date, ok := ParseTimestamp(iv.InterviewDate)
		if !ok {
			report.add(CollectionInterviews, i, iv.ID, timestampReason("interview_date", iv.InterviewDate))
			continue
		}
		ds.Interviews = append(ds.Interviews, types.InterviewRecord{
			ID:            iv.ID,
			JobID:         iv.JobID,
			InterviewDate: date,
			InterviewType: iv.InterviewType,
			Status:        iv.Status,
			Outcome:       iv.Outcome,
		})
	}

	for i, te := range doc.TimeEntries {
		started, ok := ParseTimestamp(te.StartedAt)
		if !ok {
			report.add(CollectionTimeEntries, i, te.ID, timestampReason("started_at", te.StartedAt))
			continue
		}
		ds.TimeEntries = append(ds.TimeEntries, types.TimeEntry{
			ID:           te.ID,
			StartedAt:    started,
			EndedAt:      optionalTimestamp(te.EndedAt),
			ActivityType: te.ActivityType,
		})
	}

	for i, p := range doc.Predictions {
		if p.OverallProbability == nil || math.IsNaN(*p.OverallProbability) || math.IsInf(*p.OverallProbability, 0) {
			report.add(CollectionPredictions, i, p.ID, "missing overall_probability")
			continue
		}
		created, _ := ParseTimestamp(p.CreatedAt)
		ds.Predictions = append(ds.Predictions, types.PredictionRecord{
			ID:                 p.ID,
			CreatedAt:          created,
			OverallProbability: normalize.NormalizeProbability(*p.OverallProbability),
			ActualOutcome:      p.ActualOutcome,
		})
	}

	for i, r := range doc.Research {
		if strings.TrimSpace(r.JobID) == "" {
			report.add(CollectionResearch, i, r.ID, "missing job_id")
			continue
		}
		ds.Research = append(ds.Research, types.ResearchRecord{ID: r.ID, JobID: r.JobID})
	}

	for i, c := range doc.Checklists {
		if strings.TrimSpace(c.JobID) == "" {
			report.add(CollectionChecklists, i, c.ID, "missing job_id")
			continue
		}
		ds.Checklists = append(ds.Checklists, types.ChecklistRecord{
			ID:                   c.ID,
			JobID:                c.JobID,
			CompletionPercentage: c.CompletionPercentage,
		})
	}

	return ds, report
}

func timestampReason(field, value string) string {
	if strings.TrimSpace(value) == "" {
		return "missing " + field
	}
	return fmt.Sprintf("unparsable %s %q", field, value)
}
