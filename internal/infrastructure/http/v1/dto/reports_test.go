package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdboard/internal/core/apperror"
	"herdboard/internal/domain/analytics"
)

func TestReportRequest_CategoryFilter(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		category string
		want     analytics.Category
		wantErr  bool
	}{
		{"enum member", "feed", analytics.CategoryFeed, false},
		{"synonym classifies", "fuel", analytics.CategoryTransport, false},
		{"case and spacing normalized", " Silage ", analytics.CategoryFeed, false},
		{"empty means no filter", "", "", false},
		{"typo rejected", "fedd", "", true},
		{"unknown rejected", "consulting", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ReportRequest{LastDays: 30, Category: tt.category}

			genReq, err := req.ToGenerateRequest(now)
			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
				return
			}

			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, genReq.Filters, "no predicates means no filter set")
				return
			}
			require.NotNil(t, genReq.Filters)
			assert.Equal(t, tt.want, genReq.Filters.Category)
		})
	}
}

func TestReportRequest_TypesParsing(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	all := []analytics.ReportType{
		analytics.ReportCost, analytics.ReportProductivity, analytics.ReportFinancial,
	}

	tests := []struct {
		raw  string
		want []analytics.ReportType
	}{
		{"", all},
		{"all", all},
		{"cost", []analytics.ReportType{analytics.ReportCost}},
		{"cost, Financial", []analytics.ReportType{analytics.ReportCost, analytics.ReportFinancial}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := ReportRequest{Types: tt.raw, LastDays: 30}
			genReq, err := req.ToGenerateRequest(now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, genReq.Types)
		})
	}
}
