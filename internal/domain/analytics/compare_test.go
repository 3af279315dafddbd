package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdboard/internal/core/types"
	"herdboard/internal/domain/ledger"
)

func TestNewComparison(t *testing.T) {
	tests := []struct {
		name          string
		current       string
		previous      string
		wantPct       string
		wantUndefined bool
	}{
		{"growth", "150", "100", "50", false},
		{"decline", "50", "100", "-50", false},
		{"flat", "100", "100", "0", false},
		{"both zero", "0", "0", "0", false},
		{"zero baseline with activity", "100", "0", "0", true},
		{"activity stops", "0", "100", "-100", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewComparison(types.MustMoney(tt.current), types.MustMoney(tt.previous))
			assert.Equal(t, tt.wantPct, res.PercentChange.String())
			assert.Equal(t, tt.wantUndefined, res.UndefinedGrowth)
			assert.Equal(t, tt.current, res.CurrentValue.String())
			assert.Equal(t, tt.previous, res.PreviousValue.String())
		})
	}
}

func TestCompare_SplitsByPeriod(t *testing.T) {
	rp := mustResolve(t, day(2026, 2, 15), day(2026, 3, 1)) // previous is Feb 1 - Feb 15

	entries := []ledger.CostEntry{
		datedCost(day(2026, 2, 20), "300"), // current
		datedCost(day(2026, 2, 5), "100"),  // previous
		datedCost(day(2026, 2, 10), "100"), // previous
		datedCost(day(2026, 1, 20), "999"), // before both, ignored
	}

	res := Compare(entries, rp, costDate, costAmount)
	assert.Equal(t, "300", res.CurrentValue.String())
	assert.Equal(t, "200", res.PreviousValue.String())
	assert.Equal(t, "50", res.PercentChange.String())
	assert.False(t, res.UndefinedGrowth)
}

func TestCompare_PeriodBoundaryRecord(t *testing.T) {
	rp := mustResolve(t, day(2026, 2, 15), day(2026, 3, 1))

	// A record exactly at the current period's start belongs to the current
	// period only; the previous period is half-open at that instant.
	entries := []ledger.CostEntry{datedCost(day(2026, 2, 15), "42")}

	res := Compare(entries, rp, costDate, costAmount)
	require.Equal(t, "42", res.CurrentValue.String())
	assert.True(t, res.PreviousValue.IsZero())
	assert.True(t, res.UndefinedGrowth)
}
