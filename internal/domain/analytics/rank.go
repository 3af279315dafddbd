package analytics

import (
	"sort"
)

// TopN returns the n entities with the highest metric, descending. Ties are
// broken by ascending entity ID so ordering is reproducible across runs on
// identical input.
//
// No hard cap on n: a very large n degrades to a full sort, which is fine at
// farm scale (thousands of records, not millions).
func TopN(entities []RankedEntity, n int) []RankedEntity {
	return rank(entities, n, func(a, b RankedEntity) bool {
		if !a.Metric.Equal(b.Metric) {
			return a.Metric.GreaterThan(b.Metric)
		}
		return a.ID < b.ID
	})
}

// BottomN returns the n entities with the lowest metric, ascending, with the
// same ID tie-break as TopN.
func BottomN(entities []RankedEntity, n int) []RankedEntity {
	return rank(entities, n, func(a, b RankedEntity) bool {
		if !a.Metric.Equal(b.Metric) {
			return a.Metric.LessThan(b.Metric)
		}
		return a.ID < b.ID
	})
}

func rank(entities []RankedEntity, n int, less func(a, b RankedEntity) bool) []RankedEntity {
	if n <= 0 {
		n = DefaultTopN
	}
	sorted := make([]RankedEntity, len(entities))
	copy(sorted, entities)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
