package analytics

import (
	"github.com/shopspring/decimal"

	"herdboard/internal/core/types"
)

// MarginPercent returns (revenue-cost)/revenue*100, or zero when revenue is
// zero. Ratio denominators are legitimately zero in sparse periods; none of
// these functions ever raise.
func MarginPercent(revenue, cost types.Money) types.Money {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return revenue.Sub(cost).Div(revenue).Mul(percentFactor).Round(2)
}

// ROIPercent returns (revenue-cost)/cost*100, or zero when cost is zero.
func ROIPercent(revenue, cost types.Money) types.Money {
	if cost.IsZero() {
		return decimal.Zero
	}
	return revenue.Sub(cost).Div(cost).Mul(percentFactor).Round(2)
}

// ComputeBreakEven derives the break-even unit count and revenue from unit
// economics. A non-positive contribution margin means no break-even exists at
// current unit economics: Achievable is false and callers must check it
// before using Units or Revenue.
func ComputeBreakEven(totalCost, avgRevenuePerUnit, avgCostPerUnit types.Money) BreakEven {
	cm := avgRevenuePerUnit.Sub(avgCostPerUnit)
	be := BreakEven{ContributionMargin: cm.Round(2)}
	if !cm.IsPositive() {
		return be
	}
	units := totalCost.Div(cm).Ceil().IntPart()
	if units < 0 {
		units = 0
	}
	be.Achievable = true
	be.Units = units
	be.Revenue = avgRevenuePerUnit.Mul(decimal.NewFromInt(units)).Round(2)
	return be
}

var (
	daysMonthly   = decimal.NewFromInt(30)
	daysQuarterly = decimal.NewFromInt(90)
	daysYearly    = decimal.NewFromInt(365)
)

// Project extrapolates a period total linearly from its daily rate. Pure
// linear extrapolation; no seasonality, no regression.
func Project(periodTotal types.Money, periodLengthDays float64) Projection {
	if periodLengthDays <= 0 {
		return Projection{
			DailyRate: decimal.Zero,
			Monthly:   decimal.Zero,
			Quarterly: decimal.Zero,
			Yearly:    decimal.Zero,
		}
	}
	rate := periodTotal.Div(decimal.NewFromFloat(periodLengthDays))
	return Projection{
		DailyRate: rate.Round(2),
		Monthly:   rate.Mul(daysMonthly).Round(2),
		Quarterly: rate.Mul(daysQuarterly).Round(2),
		Yearly:    rate.Mul(daysYearly).Round(2),
	}
}
