package normalize

import (
	"testing"
	"time"

	"github.com/jonathan/jobsearch-insights/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestClassify_JobStatus(t *testing.T) {
	n := Default()

	tests := []struct {
		raw  string
		want types.CanonicalStatus
	}{
		{"", types.StatusApplied},
		{"   ", types.StatusApplied},
		{"Applied", types.StatusApplied},
		{"APPLICATION_SENT", types.StatusApplied},
		{"Recruiter replied", types.StatusResponded},
		{"in-review", types.StatusResponded},
		{"Phone Screen", types.StatusInterviewing},
		{"Final round", types.StatusInterviewing},
		{"Offer Received", types.StatusOffered},
		{"offer", types.StatusOffered},
		{"Offer Accepted", types.StatusAccepted},
		{"hired", types.StatusAccepted},
		{"Rejected", types.StatusDeclined},
		{"No offer", types.StatusDeclined},
		{"Offer declined", types.StatusDeclined},
		{"not selected after onsite", types.StatusDeclined},
		{"Not offered", types.StatusDeclined},
		{"Did not receive offer", types.StatusDeclined},
		{"Not accepted", types.StatusDeclined},
		{"didn't get the offer", types.StatusDeclined},
		{"Offer rescinded", types.StatusDeclined},
		{"Not interviewing", types.StatusDeclined},
		{"never heard back (no response)", types.StatusDeclined},
		{"Nothing yet", types.StatusOther},
		{"Notified: offer", types.StatusOffered},
		{"something odd", types.StatusOther},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, n.JobStatus(tt.raw))
		})
	}
}

func TestClassify_InterviewOutcome(t *testing.T) {
	n := Default()

	assert.Equal(t, types.StatusOther, n.InterviewOutcome(""))
	assert.Equal(t, types.StatusOffered, n.InterviewOutcome("Offer Received"))
	assert.Equal(t, types.StatusOffered, n.InterviewOutcome("accepted"))
	assert.Equal(t, types.StatusOffered, n.InterviewOutcome("OFFERED"))
	assert.Equal(t, types.StatusDeclined, n.InterviewOutcome("declined"))
	assert.Equal(t, types.StatusOther, n.InterviewOutcome("pending"))
	assert.Equal(t, types.StatusOther, n.InterviewOutcome("¯\\_(ツ)_/¯"))

	for _, raw := range []string{"Not offered", "Did not receive offer", "Not accepted", "Offer rescinded", "Not interviewing"} {
		assert.Equal(t, types.StatusDeclined, n.InterviewOutcome(raw), raw)
	}
	assert.Equal(t, types.StatusOther, n.InterviewOutcome("Not yet"))
	assert.Equal(t, types.StatusOther, n.InterviewOutcome("TBD"))
}

func TestNew_WordRulesMatchWholeWords(t *testing.T) {
	n := New(SynonymTable{
		Rules: []Rule{
			{Canonical: types.StatusDeclined, Words: []string{"not"}},
			{Canonical: types.StatusOffered, Contains: []string{"offer"}},
		},
	})

	assert.Equal(t, types.StatusDeclined, n.JobStatus("offer: not extended"))
	assert.Equal(t, types.StatusDeclined, n.JobStatus("offer (not)"))
	assert.Equal(t, types.StatusOffered, n.JobStatus("notable offer"))
}

func TestClassify_EmptyDiffersOnlyByField(t *testing.T) {
	n := Default()

	job := n.Classify(FieldJobStatus, "")
	outcome := n.Classify(FieldInterviewOutcome, "")

	assert.True(t, job.IsValid())
	assert.True(t, outcome.IsValid())
	assert.NotEqual(t, job, outcome)
	assert.Equal(t, types.StatusOffered, n.Classify(FieldJobStatus, "Offer Received"))
	assert.Equal(t, types.StatusOffered, n.Classify(FieldInterviewOutcome, "Offer Received"))
}

func TestNew_CustomTable(t *testing.T) {
	n := New(SynonymTable{
		Rules: []Rule{
			{Canonical: types.StatusOffered, Exact: []string{"Zusage"}},
			{Canonical: types.StatusDeclined, Contains: []string{"absage"}},
		},
	})

	assert.Equal(t, types.StatusOffered, n.JobStatus("zusage"))
	assert.Equal(t, types.StatusDeclined, n.JobStatus("Absage erhalten"))
	assert.Equal(t, types.StatusOther, n.JobStatus("applied"))
}

func TestNew_FirstExactWins(t *testing.T) {
	n := New(SynonymTable{
		Rules: []Rule{
			{Canonical: types.StatusResponded, Exact: []string{"ok"}},
			{Canonical: types.StatusOffered, Exact: []string{"OK"}},
		},
	})

	assert.Equal(t, types.StatusResponded, n.JobStatus("ok"))
}

func TestIsOffer(t *testing.T) {
	assert.True(t, IsOffer(types.StatusOffered))
	assert.True(t, IsOffer(types.StatusAccepted))
	assert.False(t, IsOffer(types.StatusInterviewing))
	assert.False(t, IsOffer(types.StatusDeclined))
}

func TestHasProgressed(t *testing.T) {
	assert.False(t, HasProgressed(types.StatusApplied))
	assert.True(t, HasProgressed(types.StatusResponded))
	assert.True(t, HasProgressed(types.StatusInterviewing))
	assert.True(t, HasProgressed(types.StatusAccepted))
	assert.False(t, HasProgressed(types.StatusDeclined))
	assert.False(t, HasProgressed(types.StatusOther))
}

func TestIsInterviewCompleted(t *testing.T) {
	n := Default()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name string
		iv   types.InterviewRecord
		want bool
	}{
		{"explicit completed", types.InterviewRecord{Status: "Completed", InterviewDate: future}, true},
		{"cancelled with outcome", types.InterviewRecord{Status: "cancelled", Outcome: "offer"}, false},
		{"outcome recorded", types.InterviewRecord{Status: "scheduled", Outcome: "rejected", InterviewDate: past}, true},
		{"past without status", types.InterviewRecord{InterviewDate: past}, true},
		{"future without status", types.InterviewRecord{InterviewDate: future}, false},
		{"scheduled in past", types.InterviewRecord{Status: "scheduled", InterviewDate: past}, false},
		{"missing date", types.InterviewRecord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.IsInterviewCompleted(tt.iv, now))
		})
	}
}

func TestNormalizeProbability(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.35, 35},
		{1, 100},
		{35, 35},
		{150, 100},
		{-5, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeProbability(tt.in), 1e-9, "input %v", tt.in)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	n := Default()
	for _, raw := range []string{"Offer Received", "", "phone screen", "???"} {
		assert.Equal(t, n.JobStatus(raw), n.JobStatus(raw))
	}
}
