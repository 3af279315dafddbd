package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"herdboard/internal/core/apperror"
	"herdboard/internal/core/id"
	"herdboard/internal/core/types"
	"herdboard/internal/domain/analytics"
	"herdboard/internal/domain/herd"
)

// ReportRequest is the query surface of both report endpoints. Dates arrive
// as YYYY-MM-DD; the window is half-open, endDate itself is excluded.
type ReportRequest struct {
	Types    string `form:"types"`
	LastDays int    `form:"lastDays" binding:"omitempty,min=1"`

	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`

	Breed       string   `form:"breed"`
	Sex         string   `form:"sex" binding:"omitempty,oneof=female male"`
	LocationIDs []string `form:"locationId"`
	Category    string   `form:"category"`
	MinAmount   *string  `form:"minAmount"`
	MaxAmount   *string  `form:"maxAmount"`

	TopN int `form:"topN" binding:"omitempty,min=1,max=100"`

	// Format applies to the download endpoint only; the JSON endpoint
	// ignores it.
	Format string `form:"format"`
}

// ToGenerateRequest converts query parameters to a fully-specified engine
// request anchored at now.
func (r *ReportRequest) ToGenerateRequest(now time.Time) (analytics.GenerateRequest, error) {
	req := analytics.GenerateRequest{
		Types: parseReportTypes(r.Types),
		TopN:  r.TopN,
		Now:   now,
	}

	req.Period.RelativeDays = r.LastDays
	if r.StartDate != nil {
		req.Period.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		req.Period.EndDate = *r.EndDate
	}

	filters, err := r.toFilterSet()
	if err != nil {
		return analytics.GenerateRequest{}, err
	}
	req.Filters = filters
	return req, nil
}

func (r *ReportRequest) toFilterSet() (*analytics.FilterSet, error) {
	f := &analytics.FilterSet{
		BreedContains: r.Breed,
	}
	if strings.TrimSpace(r.Category) != "" {
		category, ok := analytics.LookupCategory(r.Category)
		if !ok {
			return nil, apperror.NewValidation("unknown cost category").
				WithDetail("category", r.Category)
		}
		f.Category = category
	}
	if r.Sex != "" {
		sex := herd.Sex(r.Sex)
		f.Sex = &sex
	}
	for _, raw := range r.LocationIDs {
		locationID, err := id.Parse(raw)
		if err != nil {
			return nil, apperror.NewValidation("invalid location id").
				WithDetail("locationId", raw)
		}
		f.LocationIDs = append(f.LocationIDs, locationID)
	}
	if r.MinAmount != nil {
		min, err := parseFilterAmount(*r.MinAmount, "minAmount")
		if err != nil {
			return nil, err
		}
		f.MinAmount = &min
	}
	if r.MaxAmount != nil {
		max, err := parseFilterAmount(*r.MaxAmount, "maxAmount")
		if err != nil {
			return nil, err
		}
		f.MaxAmount = &max
	}
	if f.IsZero() {
		return nil, nil
	}
	return f, nil
}

// parseReportTypes splits a comma-separated list; "all" or empty selects
// every section. Unknown names pass through so the engine rejects them with
// a proper validation error.
func parseReportTypes(raw string) []analytics.ReportType {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return []analytics.ReportType{
			analytics.ReportCost, analytics.ReportProductivity, analytics.ReportFinancial,
		}
	}
	var out []analytics.ReportType
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, analytics.ReportType(strings.ToLower(part)))
	}
	return out
}

func parseFilterAmount(raw, field string) (types.Money, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return types.Money{}, apperror.NewValidation("invalid amount filter").
			WithDetail(field, raw)
	}
	return amount, nil
}
