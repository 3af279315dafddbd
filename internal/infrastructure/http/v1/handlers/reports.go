package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"herdboard/internal/domain/analytics"
	"herdboard/internal/infrastructure/export"
	"herdboard/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves analytics report generation and download.
type ReportsHandler struct {
	base      *BaseHandler
	analytics *analytics.Service
	exporter  *export.Exporter
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, svc *analytics.Service, exporter *export.Exporter) *ReportsHandler {
	return &ReportsHandler{base: base, analytics: svc, exporter: exporter}
}

// Generate produces a report and returns it as JSON.
// GET /api/v1/reports
func (h *ReportsHandler) Generate(c *gin.Context) {
	report, ok := h.generate(c)
	if !ok {
		return
	}

	h.base.OK(c, report)
}

// Download produces a report rendered in the requested format (json, csv or
// pdf) as a file attachment. Responses are gzip-compressed when the client
// accepts it.
// GET /api/v1/reports/download
func (h *ReportsHandler) Download(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		h.base.Error(c, err)
		return
	}

	report, ok := h.generate(c)
	if !ok {
		return
	}

	result, err := h.exporter.Export(report, format)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	data := result.Data
	if acceptsGzip(c.Request) {
		compressed, err := export.Compress(data)
		if err != nil {
			h.base.Error(c, err)
			return
		}
		data = compressed
		c.Header("Content-Encoding", "gzip")
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, data)
}

func (h *ReportsHandler) generate(c *gin.Context) (*analytics.Report, bool) {
	var req dto.ReportRequest
	if !h.base.BindQuery(c, &req) {
		return nil, false
	}

	genReq, err := req.ToGenerateRequest(time.Now().UTC())
	if err != nil {
		h.base.Error(c, err)
		return nil, false
	}

	report, err := h.analytics.Generate(c.Request.Context(), genReq)
	if err != nil {
		h.base.Error(c, err)
		return nil, false
	}
	return report, true
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}
