package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"herdboard/internal/core/types"
)

// intervalLabel renders a human-readable label for a trend bucket. Buckets a
// month wide or wider label by month, narrower ones by day.
func intervalLabel(start time.Time, width time.Duration) string {
	if width >= 28*24*time.Hour {
		return start.Format("Jan 2006")
	}
	return start.Format("02 Jan")
}

// subRanges splits the resolved period into IntervalCount consecutive
// half-open sub-ranges, most-recent-last. The final sub-range ends exactly at
// the period end so duration rounding never truncates the window.
func subRanges(rp ResolvedPeriod) []ResolvedPeriod {
	ranges := make([]ResolvedPeriod, rp.IntervalCount)
	for i := 0; i < rp.IntervalCount; i++ {
		start := rp.Start.Add(time.Duration(i) * rp.IntervalWidth)
		end := rp.Start.Add(time.Duration(i+1) * rp.IntervalWidth)
		if i == rp.IntervalCount-1 {
			end = rp.End
		}
		ranges[i] = ResolvedPeriod{Start: start, End: end}
	}
	return ranges
}

// BuildTrend assembles an ordered trend series over the resolved period.
// Exactly IntervalCount points come back regardless of how sparse the data
// is; empty intervals report zero, they are never omitted.
//
// Records carrying a zero date (missing/unparsable at the adapter boundary)
// are excluded here exactly as in the main filter pass.
func BuildTrend[T any](records []T, rp ResolvedPeriod, dateOf func(T) time.Time, amountOf func(T) types.Money) []TrendPoint {
	points := make([]TrendPoint, 0, rp.IntervalCount)
	cumulative := decimal.Zero

	for _, sub := range subRanges(rp) {
		filtered := FilterByDate(records, dateOf, sub)
		total := SumAmounts(filtered.Records, amountOf)
		cumulative = cumulative.Add(total)

		points = append(points, TrendPoint{
			IntervalLabel:   intervalLabel(sub.Start, rp.IntervalWidth),
			Start:           sub.Start,
			End:             sub.End,
			Total:           total,
			Count:           len(filtered.Records),
			CumulativeTotal: cumulative,
		})
	}
	return points
}
