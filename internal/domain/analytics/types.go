// Package analytics turns raw herd records into period-bucketed summaries,
// breakdowns, trend series, comparisons, projections, break-even points and
// threshold alerts. The engine is a pure function of its input snapshot:
// no storage access, no shared state between calls.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"herdboard/internal/core/types"
)

// ReportType selects which report sections Generate produces.
type ReportType string

const (
	ReportCost         ReportType = "cost"
	ReportProductivity ReportType = "productivity"
	ReportFinancial    ReportType = "financial"
)

// ValidReportType reports whether t names a known report type.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportCost, ReportProductivity, ReportFinancial:
		return true
	}
	return false
}

// Named caps and defaults. Callers override via Config, never inline.
const (
	// MaxTrendIntervals bounds trend bucket count regardless of period
	// length so bucket width stays meaningful.
	MaxTrendIntervals = 12

	// DefaultTargetIntervalDays is the preferred trend bucket width before
	// the MaxTrendIntervals cap kicks in.
	DefaultTargetIntervalDays = 7

	// DefaultTopN is used for rankings when the caller does not say.
	DefaultTopN = 5

	// DefaultElevatedCostFactor flags single records above this multiple of
	// their dimension's average.
	DefaultElevatedCostFactor = 1.5
)

// AggregateBucket is the sum/count/average/percentage for one grouping key
// within a period.
type AggregateBucket struct {
	Key     string      `json:"key"`
	Total   types.Money `json:"total"`
	Count   int         `json:"count"`
	Average types.Money `json:"average"`

	// PercentageOfWhole is count-based (share of records, not of amount),
	// preserved for output compatibility with the legacy reports.
	PercentageOfWhole types.Money `json:"percentageOfWhole"`
}

// TrendPoint is one interval of a trend series.
type TrendPoint struct {
	IntervalLabel   string      `json:"intervalLabel"`
	Start           time.Time   `json:"start"`
	End             time.Time   `json:"end"`
	Total           types.Money `json:"total"`
	Count           int         `json:"count"`
	CumulativeTotal types.Money `json:"cumulativeTotal"`
}

// ComparisonResult compares the current period against the immediately
// preceding period of equal length.
//
// When PreviousValue is zero and CurrentValue is not, growth has no defined
// percentage; UndefinedGrowth is set and PercentChange stays zero. Callers
// must treat that as "new activity", never as an error.
type ComparisonResult struct {
	CurrentValue    types.Money `json:"currentValue"`
	PreviousValue   types.Money `json:"previousValue"`
	PercentChange   types.Money `json:"percentChange"`
	UndefinedGrowth bool        `json:"undefinedGrowth,omitempty"`
}

// Projection extrapolates a period total linearly from its daily rate.
// No seasonality, no regression.
type Projection struct {
	DailyRate types.Money `json:"dailyRate"`
	Monthly   types.Money `json:"monthly"`
	Quarterly types.Money `json:"quarterly"`
	Yearly    types.Money `json:"yearly"`
}

// BreakEven is the unit count and revenue at which cumulative contribution
// margin covers total cost. Achievable is false when the contribution margin
// is not positive; Units and Revenue are meaningless in that case.
type BreakEven struct {
	Achievable         bool        `json:"achievable"`
	ContributionMargin types.Money `json:"contributionMargin"`
	Units              int64       `json:"units,omitempty"`
	Revenue            types.Money `json:"revenue,omitempty"`
}

// RankedEntity is one row of a top-N / bottom-N ranking.
type RankedEntity struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Metric types.Money `json:"metric"`
}

// AlertSeverity grades alerts.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is a structured, stateless finding. The engine never persists,
// deduplicates or tracks alerts across calls.
type Alert struct {
	Kind     string        `json:"kind"`
	Severity AlertSeverity `json:"severity"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
}

// --- Assembled report ---

// ReportMeta describes how a report was produced.
type ReportMeta struct {
	GeneratedAt   time.Time `json:"generatedAt"`
	PeriodStart   time.Time `json:"periodStart"`
	PeriodEnd     time.Time `json:"periodEnd"`
	IntervalCount int       `json:"intervalCount"`

	// Skipped records (missing or unparsable dates) are excluded from every
	// computation but always surfaced here, never silently dropped.
	SkippedCosts  int `json:"skippedCosts"`
	SkippedSales  int `json:"skippedSales"`
	SkippedBirths int `json:"skippedBirths"`
}

// CostSummary holds the scalar KPIs of the cost report.
type CostSummary struct {
	TotalCosts       types.Money `json:"totalCosts"`
	RecordCount      int         `json:"recordCount"`
	AvgCostPerRecord types.Money `json:"avgCostPerRecord"`
	AvgCostPerAnimal types.Money `json:"avgCostPerAnimal"`

	// UnattributedCosts is the share not linked to any animal (overheads).
	UnattributedCosts types.Money `json:"unattributedCosts"`
}

// CostReport is the cost analysis section.
type CostReport struct {
	Summary    CostSummary       `json:"summary"`
	ByCategory []AggregateBucket `json:"byCategory"`
	ByAnimal   []AggregateBucket `json:"byAnimal"`
	ByLocation []AggregateBucket `json:"byLocation"`
	Trend      []TrendPoint      `json:"trend"`
	Comparison ComparisonResult  `json:"comparison"`
	Projection Projection        `json:"projection"`
	TopAnimals []RankedEntity    `json:"topAnimals"`
	Alerts     []Alert           `json:"alerts"`
}

// ProductivitySummary holds the scalar KPIs of the productivity report.
type ProductivitySummary struct {
	BirthCount    int `json:"birthCount"`
	ActiveAnimals int `json:"activeAnimals"`
	ActiveFemales int `json:"activeFemales"`

	// ReproductionEfficiency is births per active female over the period,
	// expressed as a percentage.
	ReproductionEfficiency types.Money `json:"reproductionEfficiency"`
}

// ProductivityReport is the herd productivity section.
type ProductivityReport struct {
	Summary      ProductivitySummary `json:"summary"`
	HerdByBreed  []AggregateBucket   `json:"herdByBreed"`
	HerdByCohort []AggregateBucket   `json:"herdByCohort"`
	BirthTrend   []TrendPoint        `json:"birthTrend"`
	Comparison   ComparisonResult    `json:"comparison"`
	TopMothers   []RankedEntity      `json:"topMothers"`
}

// FinancialSummary holds the scalar KPIs of the financial report.
type FinancialSummary struct {
	TotalRevenue      types.Money `json:"totalRevenue"`
	TotalCosts        types.Money `json:"totalCosts"`
	NetResult         types.Money `json:"netResult"`
	MarginPct         types.Money `json:"marginPct"`
	ROIPct            types.Money `json:"roiPct"`
	SaleCount         int         `json:"saleCount"`
	AvgRevenuePerSale types.Money `json:"avgRevenuePerSale"`
}

// FinancialReport is the financial analysis section.
type FinancialReport struct {
	Summary           FinancialSummary  `json:"summary"`
	RevenueByAnimal   []AggregateBucket `json:"revenueByAnimal"`
	RevenueTrend      []TrendPoint      `json:"revenueTrend"`
	RevenueComparison ComparisonResult  `json:"revenueComparison"`
	CostComparison    ComparisonResult  `json:"costComparison"`
	RevenueProjection Projection        `json:"revenueProjection"`
	CostProjection    Projection        `json:"costProjection"`
	BreakEven         BreakEven         `json:"breakEven"`
	TopAnimalsByNet   []RankedEntity    `json:"topAnimalsByNet"`
	BottomAnimalsByNet []RankedEntity   `json:"bottomAnimalsByNet"`
	Alerts            []Alert           `json:"alerts"`
}

// Report is the assembled result handed to rendering/export collaborators.
// Sections not requested stay nil.
type Report struct {
	Meta         ReportMeta          `json:"meta"`
	Cost         *CostReport         `json:"cost,omitempty"`
	Productivity *ProductivityReport `json:"productivity,omitempty"`
	Financial    *FinancialReport    `json:"financial,omitempty"`
}

// one is the unit amount used when a trend or breakdown counts events
// (births, head of cattle) instead of summing money.
var one = decimal.NewFromInt(1)
