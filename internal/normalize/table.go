// Package normalize classifies free-text statuses and outcomes into canonical statuses.
package normalize

import "github.com/jonathan/jobsearch-insights/internal/types"

// Rule maps raw strings onto one canonical status.
// Exact values are compared against the whole cleaned string; Words match a
// whole word of it; Contains values match anywhere inside it.
type Rule struct {
	Canonical types.CanonicalStatus `json:"canonical" yaml:"canonical" validate:"required"`
	Exact     []string              `json:"exact,omitempty" yaml:"exact,omitempty"`
	Words     []string              `json:"words,omitempty" yaml:"words,omitempty"`
	Contains  []string              `json:"contains,omitempty" yaml:"contains,omitempty"`
}

// SynonymTable is the ordered rule list used by a Normalizer.
// Exact matches are tried across all rules first, then whole-word matches,
// then substring rules in table order, so negations must come first.
type SynonymTable struct {
	Rules []Rule `json:"rules" yaml:"rules" validate:"dive"`

	// OutcomeOverrides remaps statuses when classifying interview outcomes.
	OutcomeOverrides map[types.CanonicalStatus]types.CanonicalStatus `json:"outcome_overrides,omitempty" yaml:"outcome_overrides,omitempty"`
}

// DefaultTable returns the built-in synonym table.
func DefaultTable() SynonymTable {
	return SynonymTable{
		Rules: []Rule{
			// A negated status never counts as progress, whatever it negates.
			{
				Canonical: types.StatusDeclined,
				Exact:     []string{"declined", "rejected", "rejection", "no", "closed", "withdrawn", "ghosted", "failed"},
				Words:     []string{"not", "no", "never", "didn't", "didnt", "wasn't", "wasnt", "won't", "wont", "isn't", "cannot", "can't"},
				Contains:  []string{"unsuccessful", "reject", "declin", "withdr", "ghost", "turned down", "rescind", "revoke", "retract"},
			},
			{
				Canonical: types.StatusAccepted,
				Exact:     []string{"accepted", "hired", "signed"},
				Contains:  []string{"accept", "hired", "signed offer"},
			},
			{
				Canonical: types.StatusOffered,
				Exact:     []string{"offer", "offered", "offer received", "offer extended", "success", "successful"},
				Contains:  []string{"offer"},
			},
			{
				Canonical: types.StatusInterviewing,
				Exact:     []string{"interview", "interviewing", "interviewed", "onsite", "screening", "final round"},
				Contains:  []string{"interview", "screen", "onsite", "on site", "technical", " round"},
			},
			{
				Canonical: types.StatusResponded,
				Exact:     []string{"responded", "response", "replied", "contacted", "in review", "reviewing", "assessment", "next steps"},
				Contains:  []string{"respon", "repl", "contact", "review", "assessment", "callback", "call back", "recruiter"},
			},
			{
				Canonical: types.StatusApplied,
				Exact:     []string{"applied", "application sent", "submitted", "saved", "wishlist", "pending"},
				Contains:  []string{"appl", "submit"},
			},
			{
				Canonical: types.StatusOther,
				Exact:     []string{"not yet", "not known", "unknown", "tbd", "n/a"},
			},
		},
		// An interview outcome of "accepted" means the company accepted the
		// candidate, which is an offer from the pipeline's point of view.
		// "Pending" or "submitted" outcomes carry no result yet.
		OutcomeOverrides: map[types.CanonicalStatus]types.CanonicalStatus{
			types.StatusAccepted: types.StatusOffered,
			types.StatusApplied:  types.StatusOther,
		},
	}
}
