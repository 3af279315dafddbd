// PDF rendering via Maroto v2.
//
// Page layout:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: title + period + generated-at        │
//	│  ───────────────────────────────────────────  │
//	│  per section: summary lines, breakdown table  │
//	│  ───────────────────────────────────────────  │
//	│  ALERTS                                       │
//	└───────────────────────────────────────────────┘
package export

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"herdboard/internal/domain/analytics"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 85, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFRenderer produces a printable report document.
type PDFRenderer struct{}

// NewPDFRenderer creates the PDF renderer.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) Render(report *analytics.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Herd Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(report.Meta)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if report.Cost != nil {
		m.AddRows(costRows(report.Cost)...)
	}
	if report.Productivity != nil {
		m.AddRows(productivityRows(report.Productivity)...)
	}
	if report.Financial != nil {
		m.AddRows(financialRows(report.Financial)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) Extension() string   { return "pdf" }

func headerRows(meta analytics.ReportMeta) []core.Row {
	period := fmt.Sprintf("%s to %s", timestamp(meta.PeriodStart), timestamp(meta.PeriodEnd))
	skipped := meta.SkippedCosts + meta.SkippedSales + meta.SkippedBirths

	rows := []core.Row{
		row.New(14).Add(
			col.New(7).Add(
				text.New("Herd Operations Report", props.Text{
					Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
				}),
				text.New(period, props.Text{Size: 9, Top: 9, Color: colorGray}),
			),
			col.New(5).Add(
				text.New("Generated "+timestamp(meta.GeneratedAt), props.Text{
					Size: 9, Top: 2, Align: align.Right, Color: colorGray,
				}),
			),
		),
	}
	if skipped > 0 {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%d record(s) excluded for missing dates", skipped), props.Text{
				Size: 8, Color: colorGray,
			}),
		)))
	}
	return rows
}

func sectionTitleRow(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 3}),
	))
}

func kvRow(label, value string) core.Row {
	return row.New(5).Add(
		col.New(6).Add(text.New(label, props.Text{Size: 9})),
		col.New(6).Add(text.New(value, props.Text{Size: 9, Align: align.Right})),
	)
}

func bucketHeaderRow() core.Row {
	return row.New(6).Add(
		col.New(5).Add(text.New("Group", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(3).Add(text.New("Total", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
		col.New(2).Add(text.New("Count", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
		col.New(2).Add(text.New("Share %", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
	)
}

func bucketRows(buckets []analytics.AggregateBucket) []core.Row {
	rows := []core.Row{bucketHeaderRow()}
	for _, b := range buckets {
		rows = append(rows, row.New(5).Add(
			col.New(5).Add(text.New(b.Key, props.Text{Size: 8})),
			col.New(3).Add(text.New(b.Total.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(strconv.Itoa(b.Count), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(b.PercentageOfWhole.StringFixed(1), props.Text{Size: 8, Align: align.Right})),
		))
	}
	return rows
}

func comparisonValue(c analytics.ComparisonResult) string {
	if c.UndefinedGrowth {
		return "new activity (no baseline)"
	}
	return c.PercentChange.StringFixed(2) + " %"
}

func alertRows(alerts []analytics.Alert) []core.Row {
	var rows []core.Row
	for _, a := range alerts {
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(string(a.Severity), props.Text{Size: 8, Style: fontstyle.Bold})),
			col.New(10).Add(text.New(a.Title+": "+a.Message, props.Text{Size: 8})),
		))
	}
	return rows
}

func costRows(c *analytics.CostReport) []core.Row {
	rows := []core.Row{
		sectionTitleRow("Cost Analysis"),
		kvRow("Total costs", c.Summary.TotalCosts.StringFixed(2)),
		kvRow("Records", strconv.Itoa(c.Summary.RecordCount)),
		kvRow("Average per animal", c.Summary.AvgCostPerAnimal.StringFixed(2)),
		kvRow("Unattributed (overhead)", c.Summary.UnattributedCosts.StringFixed(2)),
		kvRow("Change vs previous period", comparisonValue(c.Comparison)),
		kvRow("Projected monthly", c.Projection.Monthly.StringFixed(2)),
	}
	rows = append(rows, bucketRows(c.ByCategory)...)
	rows = append(rows, alertRows(c.Alerts)...)
	return rows
}

func productivityRows(p *analytics.ProductivityReport) []core.Row {
	rows := []core.Row{
		sectionTitleRow("Herd Productivity"),
		kvRow("Births this period", strconv.Itoa(p.Summary.BirthCount)),
		kvRow("Active animals", strconv.Itoa(p.Summary.ActiveAnimals)),
		kvRow("Active females", strconv.Itoa(p.Summary.ActiveFemales)),
		kvRow("Reproduction efficiency %", p.Summary.ReproductionEfficiency.StringFixed(2)),
		kvRow("Births vs previous period", comparisonValue(p.Comparison)),
	}
	rows = append(rows, bucketRows(p.HerdByCohort)...)
	return rows
}

func financialRows(f *analytics.FinancialReport) []core.Row {
	breakEven := "not achievable at current unit economics"
	if f.BreakEven.Achievable {
		breakEven = fmt.Sprintf("%d sales (%s revenue)", f.BreakEven.Units, f.BreakEven.Revenue.StringFixed(2))
	}

	rows := []core.Row{
		sectionTitleRow("Financial Summary"),
		kvRow("Total revenue", f.Summary.TotalRevenue.StringFixed(2)),
		kvRow("Total costs", f.Summary.TotalCosts.StringFixed(2)),
		kvRow("Net result", f.Summary.NetResult.StringFixed(2)),
		kvRow("Margin %", f.Summary.MarginPct.StringFixed(2)),
		kvRow("ROI %", f.Summary.ROIPct.StringFixed(2)),
		kvRow("Revenue change", comparisonValue(f.RevenueComparison)),
		kvRow("Break-even", breakEven),
	}
	rows = append(rows, bucketRows(f.RevenueByAnimal)...)
	rows = append(rows, alertRows(f.Alerts)...)
	return rows
}
