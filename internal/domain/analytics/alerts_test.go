package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdboard/internal/core/types"
	"herdboard/internal/domain/ledger"
)

func TestDetectElevatedCosts(t *testing.T) {
	factor := decimal.NewFromFloat(DefaultElevatedCostFactor)

	t.Run("flags outlier within its category", func(t *testing.T) {
		entries := []ledger.CostEntry{
			costEntry("100", "feed"),
			costEntry("100", "feed"),
			costEntry("100", "feed"),
			costEntry("1000", "feed"), // avg 325, threshold 487.50
		}

		alerts := DetectElevatedCosts(entries, factor)
		require.Len(t, alerts, 1)
		assert.Equal(t, AlertKindElevatedCost, alerts[0].Kind)
		assert.Equal(t, SeverityWarning, alerts[0].Severity)
	})

	t.Run("categories are independent", func(t *testing.T) {
		// 500 for vet work is unremarkable next to other vet records; it must
		// not be compared against the feed average.
		entries := []ledger.CostEntry{
			costEntry("10", "feed"),
			costEntry("12", "feed"),
			costEntry("500", "vet"),
			costEntry("480", "vet"),
		}
		assert.Empty(t, DetectElevatedCosts(entries, factor))
	})

	t.Run("single record category never flags", func(t *testing.T) {
		entries := []ledger.CostEntry{costEntry("9999", "feed")}
		assert.Empty(t, DetectElevatedCosts(entries, factor))
	})

	t.Run("non-positive average never flags", func(t *testing.T) {
		entries := []ledger.CostEntry{
			costEntry("-100", "feed"),
			costEntry("50", "feed"),
		}
		assert.Empty(t, DetectElevatedCosts(entries, factor))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, DetectElevatedCosts(nil, factor))
	})
}

func TestDetectHighVolume(t *testing.T) {
	t.Run("over threshold", func(t *testing.T) {
		alerts := DetectHighVolume(types.MustMoney("12000"), types.MustMoney("10000"))
		require.Len(t, alerts, 1)
		assert.Equal(t, AlertKindHighVolume, alerts[0].Kind)
		assert.Equal(t, SeverityInfo, alerts[0].Severity)
	})

	t.Run("at threshold does not fire", func(t *testing.T) {
		assert.Empty(t, DetectHighVolume(types.MustMoney("10000"), types.MustMoney("10000")))
	})

	t.Run("zero threshold disables the rule", func(t *testing.T) {
		assert.Empty(t, DetectHighVolume(types.MustMoney("999999"), types.Zero()))
	})
}
