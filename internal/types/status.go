package types

// CanonicalStatus is the fixed vocabulary free-text statuses and outcomes are normalized into.
type CanonicalStatus string

// Canonical status values
const (
	StatusApplied      CanonicalStatus = "applied"
	StatusResponded    CanonicalStatus = "responded"
	StatusInterviewing CanonicalStatus = "interviewing"
	StatusOffered      CanonicalStatus = "offered"
	StatusAccepted     CanonicalStatus = "accepted"
	StatusDeclined     CanonicalStatus = "declined"
	StatusOther        CanonicalStatus = "other"
)

// AllStatuses lists every canonical status in funnel order.
var AllStatuses = []CanonicalStatus{
	StatusApplied,
	StatusResponded,
	StatusInterviewing,
	StatusOffered,
	StatusAccepted,
	StatusDeclined,
	StatusOther,
}

// IsValid reports whether s is one of the canonical values.
func (s CanonicalStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}
