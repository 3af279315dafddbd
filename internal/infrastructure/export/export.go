// Package export renders assembled reports into downloadable formats. The
// engine computes once; renderers only serialize what they are handed.
package export

import (
	"fmt"
	"strings"
	"time"

	"herdboard/internal/core/apperror"
	"herdboard/internal/domain/analytics"
)

// Format names a supported download serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat normalizes a requested format string.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", apperror.NewUnsupportedFormat(raw)
}

// Result is a rendered report ready to ship as a download.
type Result struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Renderer serializes one report into one format.
type Renderer interface {
	Render(report *analytics.Report) ([]byte, error)
	ContentType() string
	Extension() string
}

// Exporter dispatches reports to the registered renderers.
type Exporter struct {
	renderers map[Format]Renderer
}

// NewExporter creates an exporter with all built-in renderers registered.
func NewExporter() *Exporter {
	return &Exporter{
		renderers: map[Format]Renderer{
			FormatJSON: NewJSONRenderer(),
			FormatCSV:  NewCSVRenderer(),
			FormatPDF:  NewPDFRenderer(),
		},
	}
}

// Export renders the report in the requested format.
func (e *Exporter) Export(report *analytics.Report, format Format) (*Result, error) {
	renderer, ok := e.renderers[format]
	if !ok {
		return nil, apperror.NewUnsupportedFormat(string(format))
	}

	data, err := renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}

	return &Result{
		Data:        data,
		ContentType: renderer.ContentType(),
		Filename:    filename(report, renderer.Extension()),
	}, nil
}

func filename(report *analytics.Report, ext string) string {
	return fmt.Sprintf("herd-report-%s-%s.%s",
		report.Meta.PeriodStart.Format("20060102"),
		report.Meta.PeriodEnd.Format("20060102"),
		ext,
	)
}

// timestamp formats report dates consistently across renderers.
func timestamp(t time.Time) string {
	return t.Format("2006-01-02")
}
