package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"herdboard/internal/core/types"
)

// OtherBucketKey receives records whose grouping key is missing. They stay in
// the breakdown; the completeness invariant requires every record to land in
// exactly one bucket.
const OtherBucketKey = "Other"

// Aggregate groups records by key and computes per-group total, count,
// average and count-based percentage of the whole.
//
// Result ordering is deterministic: total descending, ties broken by
// ascending key.
func Aggregate[T any](records []T, amountOf func(T) types.Money, keyOf func(T) string) []AggregateBucket {
	type group struct {
		total types.Money
		count int
	}
	groups := make(map[string]*group)
	for _, r := range records {
		key := keyOf(r)
		if key == "" {
			key = OtherBucketKey
		}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
		}
		g.total = g.total.Add(amountOf(r))
		g.count++
	}

	buckets := make([]AggregateBucket, 0, len(groups))
	for key, g := range groups {
		avg := decimal.Zero
		if g.count > 0 {
			avg = g.total.Div(decimal.NewFromInt(int64(g.count))).Round(2)
		}
		buckets = append(buckets, AggregateBucket{
			Key:     key,
			Total:   g.total,
			Count:   g.count,
			Average: avg,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].Total.Equal(buckets[j].Total) {
			return buckets[i].Total.GreaterThan(buckets[j].Total)
		}
		return buckets[i].Key < buckets[j].Key
	})

	allocatePercentages(buckets, len(records))
	return buckets
}

var oneCent = decimal.New(1, -2)

// allocatePercentages fills PercentageOfWhole by largest remainder: each
// bucket gets its exact count share truncated to 2 decimal places, then the
// leftover hundredths go to the buckets with the largest truncated remainders.
// Rounding each share independently drifts up to a whole point on
// many-bucket breakdowns and breaks the closure to 100.
func allocatePercentages(buckets []AggregateBucket, totalCount int) {
	if len(buckets) == 0 || totalCount == 0 {
		return
	}

	whole := decimal.NewFromInt(int64(totalCount))
	floorSum := decimal.Zero
	remainders := make([]decimal.Decimal, len(buckets))
	for i := range buckets {
		exact := decimal.NewFromInt(int64(buckets[i].Count)).Mul(types.Hundred).Div(whole)
		floor := exact.RoundDown(2)
		buckets[i].PercentageOfWhole = floor
		remainders[i] = exact.Sub(floor)
		floorSum = floorSum.Add(floor)
	}

	leftoverCents := types.Hundred.Sub(floorSum).Div(oneCent).Round(0).IntPart()
	if leftoverCents <= 0 {
		return
	}

	// Ties in remainder resolve by bucket position, which is already
	// deterministic.
	order := make([]int, len(buckets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})

	for k := int64(0); k < leftoverCents && k < int64(len(order)); k++ {
		i := order[k]
		buckets[i].PercentageOfWhole = buckets[i].PercentageOfWhole.Add(oneCent)
	}
}

// SumAmounts totals the monetary field over a record set.
func SumAmounts[T any](records []T, amountOf func(T) types.Money) types.Money {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(amountOf(r))
	}
	return total
}

// AverageAmount returns total/len, or zero for an empty set.
func AverageAmount[T any](records []T, amountOf func(T) types.Money) types.Money {
	if len(records) == 0 {
		return decimal.Zero
	}
	return SumAmounts(records, amountOf).Div(decimal.NewFromInt(int64(len(records)))).Round(2)
}
