package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdboard/internal/core/types"
	"herdboard/internal/domain/ledger"
)

func datedCost(d time.Time, amount string) ledger.CostEntry {
	return ledger.CostEntry{Date: d, Amount: types.MustMoney(amount), Category: "feed"}
}

func mustResolve(t *testing.T, start, end time.Time) ResolvedPeriod {
	t.Helper()
	rp, err := ResolvePeriod(Period{StartDate: start, EndDate: end}, testNow,
		DefaultTargetIntervalDays, MaxTrendIntervals)
	require.NoError(t, err)
	return rp
}

func TestBuildTrend_PointCountMatchesIntervals(t *testing.T) {
	rp := mustResolve(t, day(2026, 1, 1), day(2026, 3, 12)) // 70 days, 10 intervals

	points := BuildTrend(nil, rp, costDate, costAmount)
	require.Len(t, points, 10, "empty input still yields one point per interval")
	for _, p := range points {
		assert.True(t, p.Total.IsZero())
		assert.Zero(t, p.Count)
	}
}

func TestBuildTrend_Conservation(t *testing.T) {
	rp := mustResolve(t, day(2026, 2, 1), day(2026, 3, 1))

	entries := []ledger.CostEntry{
		datedCost(day(2026, 2, 1), "10"),  // first instant of the period
		datedCost(day(2026, 2, 10), "20"),
		datedCost(day(2026, 2, 28), "30"), // last day
		datedCost(day(2026, 3, 1), "99"),  // at End, excluded by half-open range
		datedCost(day(2026, 1, 15), "77"), // before the period
	}

	points := BuildTrend(entries, rp, costDate, costAmount)
	require.Len(t, points, rp.IntervalCount)

	trendSum := decimal.Zero
	for _, p := range points {
		trendSum = trendSum.Add(p.Total)
	}
	inPeriod := SumAmounts(FilterByDate(entries, costDate, rp).Records, costAmount)
	assert.True(t, trendSum.Equal(inPeriod), "trend totals must equal the period aggregate, got %s vs %s", trendSum, inPeriod)
	assert.Equal(t, "60", trendSum.String())
}

func TestBuildTrend_CumulativeIsRunningSum(t *testing.T) {
	rp := mustResolve(t, day(2026, 2, 1), day(2026, 2, 15)) // 14 days, 2 intervals

	entries := []ledger.CostEntry{
		datedCost(day(2026, 2, 2), "100"),
		datedCost(day(2026, 2, 9), "50"),
	}

	points := BuildTrend(entries, rp, costDate, costAmount)
	require.Len(t, points, 2)
	assert.Equal(t, "100", points[0].Total.String())
	assert.Equal(t, "100", points[0].CumulativeTotal.String())
	assert.Equal(t, "50", points[1].Total.String())
	assert.Equal(t, "150", points[1].CumulativeTotal.String())
}

func TestBuildTrend_LastIntervalEndsAtPeriodEnd(t *testing.T) {
	// 10 days over 2 intervals: width 5 days, last sub-range must still end
	// exactly at the period end.
	rp := mustResolve(t, day(2026, 2, 1), day(2026, 2, 11))

	points := BuildTrend(nil, rp, costDate, costAmount)
	require.NotEmpty(t, points)
	assert.Equal(t, rp.Start, points[0].Start)
	assert.Equal(t, rp.End, points[len(points)-1].End)
}

func TestBuildTrend_SkipsZeroDates(t *testing.T) {
	rp := mustResolve(t, day(2026, 2, 1), day(2026, 2, 8))

	entries := []ledger.CostEntry{
		datedCost(day(2026, 2, 3), "40"),
		{Amount: types.MustMoney("1000"), Category: "feed"}, // zero date
	}

	points := BuildTrend(entries, rp, costDate, costAmount)
	require.Len(t, points, 1)
	assert.Equal(t, "40", points[0].Total.String())
}

func TestIntervalLabel(t *testing.T) {
	assert.Equal(t, "Feb 2026", intervalLabel(day(2026, 2, 1), 30*24*time.Hour))
	assert.Equal(t, "01 Feb", intervalLabel(day(2026, 2, 1), 7*24*time.Hour))
}
