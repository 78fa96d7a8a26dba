// Package patterns groups applications along a dimension (day of week,
// industry, company size) and ranks the groups by success rate.
package patterns

import (
	"sort"
	"strings"
	"time"

	"github.com/jonathan/jobsearch-insights/internal/calc"
	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// KeyFunc extracts a bucket key and its natural sort order from an application.
// ok is false when the application has no value for the dimension.
type KeyFunc func(app types.ApplicationRecord) (key string, order int, ok bool)

// Dimension names a grouping of applications.
type Dimension struct {
	Name string
	Key  KeyFunc
}

// DayOfWeek groups applications by the weekday of their creation time in loc.
// Sunday sorts first. A nil loc means UTC.
func DayOfWeek(loc *time.Location) Dimension {
	if loc == nil {
		loc = time.UTC
	}
	return Dimension{
		Name: "day_of_week",
		Key: func(app types.ApplicationRecord) (string, int, bool) {
			if app.CreatedAt.IsZero() {
				return "", 0, false
			}
			wd := app.CreatedAt.In(loc).Weekday()
			return wd.String(), int(wd), true
		},
	}
}

// Industry groups applications by industry.
func Industry() Dimension {
	return Dimension{Name: "industry", Key: textKey(func(a types.ApplicationRecord) string { return a.Industry })}
}

// CompanySize groups applications by company size.
func CompanySize() Dimension {
	return Dimension{Name: "company_size", Key: textKey(func(a types.ApplicationRecord) string { return a.CompanySize })}
}

// textKey builds a KeyFunc for free-text fields; the natural order of text
// buckets is alphabetical, applied in BestBuckets when orders tie.
func textKey(field func(types.ApplicationRecord) string) KeyFunc {
	return func(app types.ApplicationRecord) (string, int, bool) {
		key := strings.TrimSpace(field(app))
		return key, 0, key != ""
	}
}

// BestBuckets groups applications by dim and ranks the groups by success
// rate, then count, then natural order. Groups with fewer than minSampleSize
// applications are still computed but returned in Insufficient instead of
// Ranked. Success means the application progressed past submission.
func BestBuckets(apps []types.ApplicationRecord, dim Dimension, minSampleSize int, n *normalize.Normalizer) types.BucketRanking {
	index := make(map[string]int)
	buckets := make([]types.Bucket, 0)

	for _, app := range apps {
		key, order, ok := dim.Key(app)
		if !ok {
			continue
		}
		i, exists := index[key]
		if !exists {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, types.Bucket{Key: key, Order: order})
		}
		buckets[i].Count++
		if normalize.HasProgressed(n.JobStatus(app.Status)) {
			buckets[i].Successes++
		}
	}

	for i := range buckets {
		buckets[i].SuccessRate = calc.Percent(buckets[i].Successes, buckets[i].Count)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		a, b := buckets[i], buckets[j]
		if a.SuccessRate != b.SuccessRate {
			return a.SuccessRate > b.SuccessRate
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Key < b.Key
	})

	ranking := types.BucketRanking{
		Dimension:     dim.Name,
		MinSampleSize: minSampleSize,
		Ranked:        make([]types.Bucket, 0),
		Insufficient:  make([]types.Bucket, 0),
	}
	for _, b := range buckets {
		if b.Count < minSampleSize {
			ranking.Insufficient = append(ranking.Insufficient, b)
			continue
		}
		ranking.Ranked = append(ranking.Ranked, b)
	}
	return ranking
}

// Detect ranks every supported dimension.
func Detect(apps []types.ApplicationRecord, minSampleSize int, loc *time.Location, n *normalize.Normalizer) types.Patterns {
	return types.Patterns{
		DayOfWeek:   BestBuckets(apps, DayOfWeek(loc), minSampleSize, n),
		Industry:    BestBuckets(apps, Industry(), minSampleSize, n),
		CompanySize: BestBuckets(apps, CompanySize(), minSampleSize, n),
	}
}
