package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakdown_SortedByCount(t *testing.T) {
	b := Breakdown{Entries: []BreakdownEntry{
		{Key: "Fintech", Count: 1},
		{Key: "Health", Count: 3},
		{Key: "Retail", Count: 1},
		{Key: "Gaming", Count: 2},
	}}

	sorted := b.SortedByCount()

	assert.Equal(t, []string{"Health", "Gaming", "Fintech", "Retail"}, keys(sorted))
	// Original order is untouched
	assert.Equal(t, []string{"Fintech", "Health", "Retail", "Gaming"}, keys(b))
}

func TestBreakdown_Count(t *testing.T) {
	b := Breakdown{Entries: []BreakdownEntry{{Key: "applied", Count: 4}}}
	assert.Equal(t, 4, b.Count("applied"))
	assert.Equal(t, 0, b.Count("offered"))
}

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Less(t, PriorityLow.Rank(), Priority("unknown").Rank())
}

func TestBucketRanking_Best(t *testing.T) {
	_, ok := BucketRanking{}.Best()
	assert.False(t, ok)

	r := BucketRanking{Ranked: []Bucket{{Key: "Tuesday", SuccessRate: 50}, {Key: "Friday"}}}
	best, ok := r.Best()
	assert.True(t, ok)
	assert.Equal(t, "Tuesday", best.Key)
}

func keys(b Breakdown) []string {
	out := make([]string, 0, len(b.Entries))
	for _, e := range b.Entries {
		out = append(out, e.Key)
	}
	return out
}
