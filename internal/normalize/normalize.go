package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/jonathan/jobsearch-insights/internal/types"
)

// Field selects the semantics used for empty input.
type Field int

const (
	// FieldJobStatus classifies application statuses; empty means "applied".
	FieldJobStatus Field = iota
	// FieldInterviewOutcome classifies interview outcomes; empty means "other".
	FieldInterviewOutcome
)

// Normalizer classifies raw strings using a synonym table.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	exact     map[string]types.CanonicalStatus
	words     []containsRule
	contains  []containsRule
	overrides map[types.CanonicalStatus]types.CanonicalStatus
}

type containsRule struct {
	needle    string
	canonical types.CanonicalStatus
}

// New builds a Normalizer from the given table.
// When the same exact value appears in several rules the first rule wins.
func New(table SynonymTable) *Normalizer {
	n := &Normalizer{
		exact:     make(map[string]types.CanonicalStatus),
		overrides: make(map[types.CanonicalStatus]types.CanonicalStatus, len(table.OutcomeOverrides)),
	}
	for _, rule := range table.Rules {
		for _, v := range rule.Exact {
			key := clean(v)
			if key == "" {
				continue
			}
			if _, exists := n.exact[key]; !exists {
				n.exact[key] = rule.Canonical
			}
		}
		for _, v := range rule.Words {
			if word := clean(v); word != "" {
				n.words = append(n.words, containsRule{needle: word, canonical: rule.Canonical})
			}
		}
		for _, v := range rule.Contains {
			needle := clean(v)
			if needle != "" {
				n.contains = append(n.contains, containsRule{needle: needle, canonical: rule.Canonical})
			}
		}
	}
	for from, to := range table.OutcomeOverrides {
		n.overrides[from] = to
	}
	return n
}

// Default returns a Normalizer using DefaultTable.
func Default() *Normalizer {
	return New(DefaultTable())
}

// Classify maps raw onto a canonical status. It is total: every input,
// including the empty string, yields a defined value.
func (n *Normalizer) Classify(field Field, raw string) types.CanonicalStatus {
	key := clean(raw)
	if key == "" {
		if field == FieldJobStatus {
			return types.StatusApplied
		}
		return types.StatusOther
	}

	status, ok := n.exact[key]
	if !ok {
		status, ok = n.matchWord(key)
	}
	if !ok {
		status = types.StatusOther
		for _, rule := range n.contains {
			if strings.Contains(key, rule.needle) {
				status = rule.canonical
				break
			}
		}
	}

	if field == FieldInterviewOutcome {
		if mapped, ok := n.overrides[status]; ok {
			return mapped
		}
	}
	return status
}

// matchWord returns the status of the first word rule matching a whole word of key.
func (n *Normalizer) matchWord(key string) (types.CanonicalStatus, bool) {
	if len(n.words) == 0 {
		return "", false
	}
	fields := strings.Fields(key)
	for _, rule := range n.words {
		for _, f := range fields {
			if strings.Trim(f, wordPunct) == rule.needle {
				return rule.canonical, true
			}
		}
	}
	return "", false
}

const wordPunct = ".,;:!?()[]{}\"/"

// JobStatus classifies an application status.
func (n *Normalizer) JobStatus(raw string) types.CanonicalStatus {
	return n.Classify(FieldJobStatus, raw)
}

// InterviewOutcome classifies an interview outcome.
func (n *Normalizer) InterviewOutcome(raw string) types.CanonicalStatus {
	return n.Classify(FieldInterviewOutcome, raw)
}

// IsOffer reports whether the status represents an offer.
func IsOffer(s types.CanonicalStatus) bool {
	return s == types.StatusOffered || s == types.StatusAccepted
}

// HasProgressed reports whether an application moved forward past submission.
// Declined and unclassified statuses do not count as progress.
func HasProgressed(s types.CanonicalStatus) bool {
	switch s {
	case types.StatusResponded, types.StatusInterviewing, types.StatusOffered, types.StatusAccepted:
		return true
	default:
		return false
	}
}

var (
	completedMarkers = []string{"complete", "done", "finished", "attended", "held"}
	cancelledMarkers = []string{"cancel", "reschedul", "no show", "postpone"}
)

// IsInterviewCompleted reports whether an interview took place.
// Explicit completion wins, cancellation never counts, and a recorded outcome
// implies completion. Without either, an interview in the past is assumed held
// when its status is blank.
func (n *Normalizer) IsInterviewCompleted(iv types.InterviewRecord, now time.Time) bool {
	status := clean(iv.Status)
	for _, m := range cancelledMarkers {
		if strings.Contains(status, m) {
			return false
		}
	}
	for _, m := range completedMarkers {
		if strings.Contains(status, m) {
			return true
		}
	}
	if n.InterviewOutcome(iv.Outcome) != types.StatusOther {
		return true
	}
	return status == "" && !iv.InterviewDate.IsZero() && !iv.InterviewDate.After(now)
}

// NormalizeProbability converts a probability to the canonical 0-100 scale.
// Values in [0, 1] are treated as fractions; results are clamped to [0, 100].
func NormalizeProbability(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	if p > 0 && p <= 1 {
		p *= 100
	}
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// clean lowercases, trims and collapses separators so "Offer_Received" and
// "offer-received" compare equal to "offer received".
func clean(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
