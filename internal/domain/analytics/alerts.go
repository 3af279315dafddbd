package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"herdboard/internal/core/types"
	"herdboard/internal/domain/ledger"
)

// Alert kinds emitted by the built-in rules.
const (
	AlertKindElevatedCost = "elevated_cost"
	AlertKindHighVolume   = "high_volume"
	AlertKindCustomRule   = "custom_rule"
)

// DetectElevatedCosts flags single cost entries whose amount exceeds
// factor × the average of their classified category. Rules are stateless:
// every generation re-evaluates from scratch.
func DetectElevatedCosts(entries []ledger.CostEntry, factor decimal.Decimal) []Alert {
	type stats struct {
		total types.Money
		count int64
	}
	byCategory := make(map[Category]*stats)
	for _, e := range entries {
		c := ClassifyCategory(e.Category)
		s, ok := byCategory[c]
		if !ok {
			s = &stats{}
			byCategory[c] = s
		}
		s.total = s.total.Add(e.Amount)
		s.count++
	}

	var alerts []Alert
	for _, e := range entries {
		c := ClassifyCategory(e.Category)
		s := byCategory[c]
		if s.count < 2 {
			// A single record always equals its own average.
			continue
		}
		avg := s.total.Div(decimal.NewFromInt(s.count))
		if !avg.IsPositive() {
			continue
		}
		if e.Amount.GreaterThan(avg.Mul(factor)) {
			alerts = append(alerts, Alert{
				Kind:     AlertKindElevatedCost,
				Severity: SeverityWarning,
				Title:    fmt.Sprintf("Elevated %s cost", c),
				Message: fmt.Sprintf(
					"entry %s on %s: %s is above %sx the %s average of %s",
					e.ID, e.Date.Format("2006-01-02"),
					e.Amount.StringFixed(2), factor.String(), c, avg.StringFixed(2),
				),
			})
		}
	}
	return alerts
}

// DetectHighVolume flags a monthly-equivalent total above the configured
// informational threshold. A zero threshold disables the rule.
func DetectHighVolume(monthlyEquivalent, threshold types.Money) []Alert {
	if threshold.IsZero() || !monthlyEquivalent.GreaterThan(threshold) {
		return nil
	}
	return []Alert{{
		Kind:     AlertKindHighVolume,
		Severity: SeverityInfo,
		Title:    "High spending volume",
		Message: fmt.Sprintf(
			"monthly-equivalent total %s exceeds the %s threshold",
			monthlyEquivalent.StringFixed(2), threshold.StringFixed(2),
		),
	}}
}
