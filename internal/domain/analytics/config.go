package analytics

import (
	"github.com/shopspring/decimal"

	"herdboard/internal/core/types"
)

// Config carries the tunable constants of the engine. Every numeric cap that
// used to be inline in the legacy reports lives here under a name.
type Config struct {
	// TargetIntervalDays is the preferred trend bucket width in days.
	TargetIntervalDays int `mapstructure:"target_interval_days"`

	// MaxTrendIntervals caps the trend bucket count for long windows.
	MaxTrendIntervals int `mapstructure:"max_trend_intervals"`

	// TopN is the default ranking size when a request does not specify one.
	TopN int `mapstructure:"top_n"`

	// ElevatedCostFactor flags single cost entries above this multiple of
	// their category average.
	ElevatedCostFactor decimal.Decimal `mapstructure:"elevated_cost_factor"`

	// HighVolumeMonthlyThreshold is the informational monthly-equivalent
	// spend threshold. Zero disables the rule.
	HighVolumeMonthlyThreshold types.Money `mapstructure:"high_volume_monthly_threshold"`

	// Rules are operator-defined CEL alert conditions.
	Rules []Rule `mapstructure:"rules"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		TargetIntervalDays: DefaultTargetIntervalDays,
		MaxTrendIntervals:  MaxTrendIntervals,
		TopN:               DefaultTopN,
		ElevatedCostFactor: decimal.NewFromFloat(DefaultElevatedCostFactor),
	}
}

// normalized fills zero values with defaults so a partially-populated config
// never silently disables a stage.
func (c Config) normalized() Config {
	if c.TargetIntervalDays <= 0 {
		c.TargetIntervalDays = DefaultTargetIntervalDays
	}
	if c.MaxTrendIntervals <= 0 {
		c.MaxTrendIntervals = MaxTrendIntervals
	}
	if c.TopN <= 0 {
		c.TopN = DefaultTopN
	}
	if c.ElevatedCostFactor.IsZero() {
		c.ElevatedCostFactor = decimal.NewFromFloat(DefaultElevatedCostFactor)
	}
	return c
}
