package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdboard/internal/core/apperror"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriod_IntervalGeometry(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		wantCount  int
		wantWidth  time.Duration
	}{
		{
			name:      "70 days yields 10 weekly intervals",
			start:     day(2026, 1, 1),
			end:       day(2026, 3, 12),
			wantCount: 10,
			wantWidth: 7 * 24 * time.Hour,
		},
		{
			name:      "one year caps at 12 intervals",
			start:     day(2025, 1, 1),
			end:       day(2026, 1, 1),
			wantCount: 12,
			wantWidth: 365 * 24 * time.Hour / 12,
		},
		{
			name:      "3 days under target still yields one interval",
			start:     day(2026, 3, 1),
			end:       day(2026, 3, 4),
			wantCount: 1,
			wantWidth: 3 * 24 * time.Hour,
		},
		{
			name:      "8 days rounds interval count up",
			start:     day(2026, 3, 1),
			end:       day(2026, 3, 9),
			wantCount: 2,
			wantWidth: 4 * 24 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rp, err := ResolvePeriod(Period{StartDate: tt.start, EndDate: tt.end}, testNow,
				DefaultTargetIntervalDays, MaxTrendIntervals)
			require.NoError(t, err)
			assert.Equal(t, tt.start, rp.Start)
			assert.Equal(t, tt.end, rp.End)
			assert.Equal(t, tt.wantCount, rp.IntervalCount)
			assert.Equal(t, tt.wantWidth, rp.IntervalWidth)
		})
	}
}

func TestResolvePeriod_RelativeDays(t *testing.T) {
	rp, err := ResolvePeriod(Period{RelativeDays: 30}, testNow, DefaultTargetIntervalDays, MaxTrendIntervals)
	require.NoError(t, err)
	assert.Equal(t, testNow, rp.End)
	assert.Equal(t, testNow.AddDate(0, 0, -30), rp.Start)
	assert.Equal(t, 5, rp.IntervalCount)
}

func TestResolvePeriod_RelativeDaysWinsOverExplicitRange(t *testing.T) {
	p := Period{
		StartDate:    day(2020, 1, 1),
		EndDate:      day(2020, 2, 1),
		RelativeDays: 7,
	}
	rp, err := ResolvePeriod(p, testNow, DefaultTargetIntervalDays, MaxTrendIntervals)
	require.NoError(t, err)
	assert.Equal(t, testNow, rp.End)
	assert.Equal(t, testNow.AddDate(0, 0, -7), rp.Start)
}

func TestResolvePeriod_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		period Period
	}{
		{"zero dates", Period{}},
		{"end equals start", Period{StartDate: day(2026, 1, 1), EndDate: day(2026, 1, 1)}},
		{"end before start", Period{StartDate: day(2026, 2, 1), EndDate: day(2026, 1, 1)}},
		{"only start", Period{StartDate: day(2026, 1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePeriod(tt.period, testNow, DefaultTargetIntervalDays, MaxTrendIntervals)
			require.Error(t, err)
			assert.True(t, apperror.IsInvalidPeriod(err))
		})
	}
}

func TestResolvedPeriod_ContainsHalfOpen(t *testing.T) {
	rp, err := ResolvePeriod(Period{StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 8)}, testNow,
		DefaultTargetIntervalDays, MaxTrendIntervals)
	require.NoError(t, err)

	assert.True(t, rp.Contains(day(2026, 3, 1)), "start is inclusive")
	assert.True(t, rp.Contains(day(2026, 3, 7)))
	assert.False(t, rp.Contains(day(2026, 3, 8)), "end is exclusive")
	assert.False(t, rp.Contains(day(2026, 2, 28)))
}

func TestResolvedPeriod_Previous(t *testing.T) {
	rp, err := ResolvePeriod(Period{StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 15)}, testNow,
		DefaultTargetIntervalDays, MaxTrendIntervals)
	require.NoError(t, err)

	prev := rp.Previous()
	assert.Equal(t, day(2026, 2, 15), prev.Start)
	assert.Equal(t, rp.Start, prev.End)
	assert.Equal(t, rp.IntervalCount, prev.IntervalCount)
	assert.False(t, prev.Contains(rp.Start), "previous period excludes the current period's start")
}
