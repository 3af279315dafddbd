package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"herdboard/internal/core/types"
)

var percentFactor = decimal.NewFromInt(100)

// Compare computes the same scalar aggregate for the current period and the
// immediately preceding period of equal length, and derives the percentage
// change between them.
//
// Zero baseline semantics: both sides zero means zero change; a non-zero
// current over a zero baseline is undefined growth, flagged explicitly rather
// than mapped to an arbitrary number. The legacy reports quietly returned 0
// in that case, under-reporting genuinely new spend; the flag lets callers
// decide how to present it.
func Compare[T any](records []T, rp ResolvedPeriod, dateOf func(T) time.Time, amountOf func(T) types.Money) ComparisonResult {
	current := SumAmounts(FilterByDate(records, dateOf, rp).Records, amountOf)
	previous := SumAmounts(FilterByDate(records, dateOf, rp.Previous()).Records, amountOf)
	return NewComparison(current, previous)
}

// NewComparison derives a ComparisonResult from two already-computed scalars.
func NewComparison(current, previous types.Money) ComparisonResult {
	res := ComparisonResult{
		CurrentValue:  current,
		PreviousValue: previous,
		PercentChange: decimal.Zero,
	}
	switch {
	case !previous.IsZero():
		res.PercentChange = current.Sub(previous).Div(previous).Mul(percentFactor).Round(2)
	case !current.IsZero():
		res.UndefinedGrowth = true
	}
	return res
}
