package analytics

import (
	"math"
	"time"

	"herdboard/internal/core/apperror"
)

// Period is a report window request: either an explicit [StartDate, EndDate)
// range or a relative day count anchored at "now". Exactly one form is used;
// RelativeDays wins when positive.
type Period struct {
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	RelativeDays int       `json:"relativeDays,omitempty"`
}

// ResolvedPeriod is the canonical half-open range all downstream stages use,
// plus the trend sub-interval geometry derived from it.
type ResolvedPeriod struct {
	Start time.Time
	End   time.Time

	IntervalCount int
	IntervalWidth time.Duration
}

// LengthDays returns the period length in (possibly fractional) days.
func (rp ResolvedPeriod) LengthDays() float64 {
	return rp.End.Sub(rp.Start).Hours() / 24
}

// Contains reports whether t falls inside the half-open range.
// A record at exactly End is excluded.
func (rp ResolvedPeriod) Contains(t time.Time) bool {
	return !t.Before(rp.Start) && t.Before(rp.End)
}

// Previous returns the immediately preceding period of identical length.
// Interval geometry carries over unchanged.
func (rp ResolvedPeriod) Previous() ResolvedPeriod {
	length := rp.End.Sub(rp.Start)
	return ResolvedPeriod{
		Start:         rp.Start.Add(-length),
		End:           rp.Start,
		IntervalCount: rp.IntervalCount,
		IntervalWidth: rp.IntervalWidth,
	}
}

// ResolvePeriod normalizes a period request against a reference now.
//
// Interval count is min(ceil(lengthDays/targetDays), maxIntervals), so trend
// granularity degrades gracefully: a one-year window yields 12 roughly-monthly
// buckets, not 52 weekly ones. Interval width is length divided by count, not
// fixed at a week.
func ResolvePeriod(p Period, now time.Time, targetDays, maxIntervals int) (ResolvedPeriod, error) {
	if targetDays <= 0 {
		targetDays = DefaultTargetIntervalDays
	}
	if maxIntervals <= 0 {
		maxIntervals = MaxTrendIntervals
	}

	start, end := p.StartDate, p.EndDate
	if p.RelativeDays > 0 {
		end = now
		start = now.AddDate(0, 0, -p.RelativeDays)
	}

	if start.IsZero() || end.IsZero() {
		return ResolvedPeriod{}, apperror.NewInvalidPeriod("period start and end are required").
			WithDetail("start", start).
			WithDetail("end", end)
	}
	if !end.After(start) {
		return ResolvedPeriod{}, apperror.NewInvalidPeriod("period end must be after start").
			WithDetail("start", start).
			WithDetail("end", end)
	}

	length := end.Sub(start)
	lengthDays := length.Hours() / 24

	count := int(math.Ceil(lengthDays / float64(targetDays)))
	if count < 1 {
		count = 1
	}
	if count > maxIntervals {
		count = maxIntervals
	}

	return ResolvedPeriod{
		Start:         start,
		End:           end,
		IntervalCount: count,
		IntervalWidth: length / time.Duration(count),
	}, nil
}
