package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"herdboard/internal/domain/analytics"
)

// CSVRenderer flattens the report into a single CSV document: a metadata
// block, then one titled table per present section. Spreadsheet users filter
// on the first column.
type CSVRenderer struct{}

// NewCSVRenderer creates the CSV renderer.
func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

func (r *CSVRenderer) Render(report *analytics.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	writeMeta(w, report.Meta)
	if report.Cost != nil {
		writeCostSection(w, report.Cost)
	}
	if report.Productivity != nil {
		writeProductivitySection(w, report.Productivity)
	}
	if report.Financial != nil {
		writeFinancialSection(w, report.Financial)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *CSVRenderer) ContentType() string { return "text/csv" }
func (r *CSVRenderer) Extension() string   { return "csv" }

func writeMeta(w *csv.Writer, meta analytics.ReportMeta) {
	_ = w.Write([]string{"meta", "generated_at", meta.GeneratedAt.Format("2006-01-02T15:04:05Z07:00")})
	_ = w.Write([]string{"meta", "period_start", timestamp(meta.PeriodStart)})
	_ = w.Write([]string{"meta", "period_end", timestamp(meta.PeriodEnd)})
	_ = w.Write([]string{"meta", "skipped_costs", strconv.Itoa(meta.SkippedCosts)})
	_ = w.Write([]string{"meta", "skipped_sales", strconv.Itoa(meta.SkippedSales)})
	_ = w.Write([]string{"meta", "skipped_births", strconv.Itoa(meta.SkippedBirths)})
}

func writeBuckets(w *csv.Writer, section, table string, buckets []analytics.AggregateBucket) {
	_ = w.Write([]string{section, table, "key", "total", "count", "average", "percentage"})
	for _, b := range buckets {
		_ = w.Write([]string{
			section, table, b.Key,
			b.Total.StringFixed(2),
			strconv.Itoa(b.Count),
			b.Average.StringFixed(2),
			b.PercentageOfWhole.StringFixed(2),
		})
	}
}

func writeTrend(w *csv.Writer, section, table string, points []analytics.TrendPoint) {
	_ = w.Write([]string{section, table, "interval", "start", "end", "total", "count", "cumulative"})
	for _, p := range points {
		_ = w.Write([]string{
			section, table, p.IntervalLabel,
			timestamp(p.Start), timestamp(p.End),
			p.Total.StringFixed(2),
			strconv.Itoa(p.Count),
			p.CumulativeTotal.StringFixed(2),
		})
	}
}

func writeComparison(w *csv.Writer, section, table string, c analytics.ComparisonResult) {
	change := c.PercentChange.StringFixed(2)
	if c.UndefinedGrowth {
		change = "new"
	}
	_ = w.Write([]string{section, table, "current", c.CurrentValue.StringFixed(2)})
	_ = w.Write([]string{section, table, "previous", c.PreviousValue.StringFixed(2)})
	_ = w.Write([]string{section, table, "change_pct", change})
}

func writeRanking(w *csv.Writer, section, table string, rows []analytics.RankedEntity) {
	_ = w.Write([]string{section, table, "label", "value"})
	for _, e := range rows {
		_ = w.Write([]string{section, table, e.Label, e.Metric.StringFixed(2)})
	}
}

func writeAlerts(w *csv.Writer, section string, alerts []analytics.Alert) {
	for _, a := range alerts {
		_ = w.Write([]string{section, "alert", string(a.Severity), a.Title, a.Message})
	}
}

func writeCostSection(w *csv.Writer, c *analytics.CostReport) {
	_ = w.Write([]string{"cost", "summary", "total_costs", c.Summary.TotalCosts.StringFixed(2)})
	_ = w.Write([]string{"cost", "summary", "record_count", strconv.Itoa(c.Summary.RecordCount)})
	_ = w.Write([]string{"cost", "summary", "avg_per_record", c.Summary.AvgCostPerRecord.StringFixed(2)})
	_ = w.Write([]string{"cost", "summary", "avg_per_animal", c.Summary.AvgCostPerAnimal.StringFixed(2)})
	_ = w.Write([]string{"cost", "summary", "unattributed", c.Summary.UnattributedCosts.StringFixed(2)})

	writeBuckets(w, "cost", "by_category", c.ByCategory)
	writeBuckets(w, "cost", "by_animal", c.ByAnimal)
	writeBuckets(w, "cost", "by_location", c.ByLocation)
	writeTrend(w, "cost", "trend", c.Trend)
	writeComparison(w, "cost", "comparison", c.Comparison)
	writeRanking(w, "cost", "top_animals", c.TopAnimals)
	writeAlerts(w, "cost", c.Alerts)
}

func writeProductivitySection(w *csv.Writer, p *analytics.ProductivityReport) {
	_ = w.Write([]string{"productivity", "summary", "birth_count", strconv.Itoa(p.Summary.BirthCount)})
	_ = w.Write([]string{"productivity", "summary", "active_animals", strconv.Itoa(p.Summary.ActiveAnimals)})
	_ = w.Write([]string{"productivity", "summary", "active_females", strconv.Itoa(p.Summary.ActiveFemales)})
	_ = w.Write([]string{"productivity", "summary", "reproduction_efficiency", p.Summary.ReproductionEfficiency.StringFixed(2)})

	writeBuckets(w, "productivity", "herd_by_breed", p.HerdByBreed)
	writeBuckets(w, "productivity", "herd_by_cohort", p.HerdByCohort)
	writeTrend(w, "productivity", "birth_trend", p.BirthTrend)
	writeComparison(w, "productivity", "comparison", p.Comparison)
	writeRanking(w, "productivity", "top_mothers", p.TopMothers)
}

func writeFinancialSection(w *csv.Writer, f *analytics.FinancialReport) {
	_ = w.Write([]string{"financial", "summary", "total_revenue", f.Summary.TotalRevenue.StringFixed(2)})
	_ = w.Write([]string{"financial", "summary", "total_costs", f.Summary.TotalCosts.StringFixed(2)})
	_ = w.Write([]string{"financial", "summary", "net_result", f.Summary.NetResult.StringFixed(2)})
	_ = w.Write([]string{"financial", "summary", "margin_pct", f.Summary.MarginPct.StringFixed(2)})
	_ = w.Write([]string{"financial", "summary", "roi_pct", f.Summary.ROIPct.StringFixed(2)})
	_ = w.Write([]string{"financial", "summary", "sale_count", strconv.Itoa(f.Summary.SaleCount)})

	writeBuckets(w, "financial", "revenue_by_animal", f.RevenueByAnimal)
	writeTrend(w, "financial", "revenue_trend", f.RevenueTrend)
	writeComparison(w, "financial", "revenue_comparison", f.RevenueComparison)
	writeComparison(w, "financial", "cost_comparison", f.CostComparison)

	if f.BreakEven.Achievable {
		_ = w.Write([]string{"financial", "break_even", "units", strconv.FormatInt(f.BreakEven.Units, 10)})
		_ = w.Write([]string{"financial", "break_even", "revenue", f.BreakEven.Revenue.StringFixed(2)})
	} else {
		_ = w.Write([]string{"financial", "break_even", "achievable", "false"})
	}

	writeRanking(w, "financial", "top_by_net", f.TopAnimalsByNet)
	writeRanking(w, "financial", "bottom_by_net", f.BottomAnimalsByNet)
	writeAlerts(w, "financial", f.Alerts)
}
