package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"herdboard/internal/core/types"
)

func TestMarginPercent(t *testing.T) {
	tests := []struct {
		name    string
		revenue string
		cost    string
		want    string
	}{
		{"profit", "200", "150", "25"},
		{"loss", "100", "150", "-50"},
		{"zero revenue is zero not error", "0", "100", "0"},
		{"zero cost is full margin", "100", "0", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarginPercent(types.MustMoney(tt.revenue), types.MustMoney(tt.cost))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestROIPercent(t *testing.T) {
	tests := []struct {
		name    string
		revenue string
		cost    string
		want    string
	}{
		{"positive return", "150", "100", "50"},
		{"negative return", "50", "100", "-50"},
		{"zero cost is zero not error", "100", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ROIPercent(types.MustMoney(tt.revenue), types.MustMoney(tt.cost))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestComputeBreakEven(t *testing.T) {
	t.Run("achievable", func(t *testing.T) {
		be := ComputeBreakEven(types.MustMoney("1000"), types.MustMoney("150"), types.MustMoney("100"))
		assert.True(t, be.Achievable)
		assert.Equal(t, "50", be.ContributionMargin.String())
		assert.Equal(t, int64(20), be.Units)
		assert.Equal(t, "3000", be.Revenue.String())
	})

	t.Run("fractional units round up", func(t *testing.T) {
		be := ComputeBreakEven(types.MustMoney("1001"), types.MustMoney("150"), types.MustMoney("100"))
		assert.True(t, be.Achievable)
		assert.Equal(t, int64(21), be.Units, "partial units do not cover cost")
	})

	t.Run("negative contribution margin is not achievable", func(t *testing.T) {
		be := ComputeBreakEven(types.MustMoney("1000"), types.MustMoney("95"), types.MustMoney("100"))
		assert.False(t, be.Achievable)
		assert.Equal(t, "-5", be.ContributionMargin.String())
		assert.Zero(t, be.Units, "no negative or infinite unit count")
		assert.True(t, be.Revenue.IsZero())
	})

	t.Run("zero contribution margin is not achievable", func(t *testing.T) {
		be := ComputeBreakEven(types.MustMoney("1000"), types.MustMoney("100"), types.MustMoney("100"))
		assert.False(t, be.Achievable)
	})
}

func TestProject(t *testing.T) {
	t.Run("linear extrapolation", func(t *testing.T) {
		p := Project(types.MustMoney("300"), 30)
		assert.Equal(t, "10", p.DailyRate.String())
		assert.Equal(t, "300", p.Monthly.String())
		assert.Equal(t, "900", p.Quarterly.String())
		assert.Equal(t, "3650", p.Yearly.String())
	})

	t.Run("zero length period projects zero", func(t *testing.T) {
		p := Project(types.MustMoney("300"), 0)
		assert.True(t, p.DailyRate.IsZero())
		assert.True(t, p.Yearly.IsZero())
	})
}
