package analytics

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdboard/internal/core/types"
	"herdboard/internal/domain/ledger"
)

func costEntry(amount string, category string) ledger.CostEntry {
	return ledger.CostEntry{
		Date:     day(2026, 3, 1),
		Amount:   types.MustMoney(amount),
		Category: category,
	}
}

func TestAggregate_CategoryBreakdown(t *testing.T) {
	entries := []ledger.CostEntry{
		costEntry("100", "feed"),
		costEntry("50", "vet"),
	}

	buckets := Aggregate(entries, costAmount, func(e ledger.CostEntry) string {
		return string(ClassifyCategory(e.Category))
	})

	require.Len(t, buckets, 2)
	assert.Equal(t, "feed", buckets[0].Key)
	assert.Equal(t, "100", buckets[0].Total.String())
	assert.Equal(t, "50", buckets[0].PercentageOfWhole.String())
	assert.Equal(t, "veterinary", buckets[1].Key)
	assert.Equal(t, "50", buckets[1].Total.String())
	assert.Equal(t, "50", buckets[1].PercentageOfWhole.String())

	assert.Equal(t, "150", SumAmounts(entries, costAmount).String())
}

func TestAggregate_Completeness(t *testing.T) {
	entries := []ledger.CostEntry{
		costEntry("33.33", "feed"),
		costEntry("66.67", "feed"),
		costEntry("12.50", "vet"),
		costEntry("0.01", "fuel"),
		costEntry("89.99", "mystery category"),
	}

	buckets := Aggregate(entries, costAmount, func(e ledger.CostEntry) string {
		return string(ClassifyCategory(e.Category))
	})

	bucketSum := decimal.Zero
	for _, b := range buckets {
		bucketSum = bucketSum.Add(b.Total)
	}
	assert.True(t, bucketSum.Equal(SumAmounts(entries, costAmount)),
		"bucket totals must sum to the record total, got %s", bucketSum)
}

func TestAggregate_PercentageClosure(t *testing.T) {
	entries := []ledger.CostEntry{
		costEntry("10", "feed"),
		costEntry("20", "vet"),
		costEntry("30", "labor"),
		costEntry("40", "fuel"),
		costEntry("50", "fencing"),
		costEntry("60", "semen"),
		costEntry("70", "unknown"),
	}

	buckets := Aggregate(entries, costAmount, func(e ledger.CostEntry) string {
		return string(ClassifyCategory(e.Category))
	})

	pctSum := decimal.Zero
	for _, b := range buckets {
		pctSum = pctSum.Add(b.PercentageOfWhole)
	}
	diff := pctSum.Sub(decimal.NewFromInt(100)).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.1)),
		"percentages must close to 100 within 0.1, got %s", pctSum)
}

func TestAggregate_PercentageClosureManyBuckets(t *testing.T) {
	// One record per animal across a full-size herd. Rounding each share
	// independently would lose a whole point here (300 x 0.33 = 99).
	entries := make([]ledger.CostEntry, 0, 300)
	for i := 0; i < 300; i++ {
		e := costEntry("10", "feed")
		e.Description = fmt.Sprintf("animal %03d", i)
		entries = append(entries, e)
	}

	buckets := Aggregate(entries, costAmount, func(e ledger.CostEntry) string {
		return e.Description
	})
	require.Len(t, buckets, 300)

	pctSum := decimal.Zero
	for _, b := range buckets {
		assert.True(t, b.PercentageOfWhole.Exponent() >= -2,
			"percentages carry at most 2 decimal places, got %s", b.PercentageOfWhole)
		pctSum = pctSum.Add(b.PercentageOfWhole)
	}
	assert.True(t, pctSum.Equal(decimal.NewFromInt(100)),
		"percentages must close to exactly 100, got %s", pctSum)
}

func TestAggregate_Empty(t *testing.T) {
	buckets := Aggregate(nil, costAmount, func(e ledger.CostEntry) string { return e.Category })
	assert.Empty(t, buckets)
}

func TestAggregate_MissingKeyLandsInOther(t *testing.T) {
	entries := []ledger.CostEntry{
		{Date: day(2026, 3, 1), Amount: types.MustMoney("25")},
	}
	buckets := Aggregate(entries, costAmount, func(e ledger.CostEntry) string { return e.Category })

	require.Len(t, buckets, 1)
	assert.Equal(t, OtherBucketKey, buckets[0].Key)
	assert.Equal(t, "25", buckets[0].Total.String())
}

func TestAggregate_DeterministicOrdering(t *testing.T) {
	entries := []ledger.CostEntry{
		costEntry("50", "vet"),
		costEntry("50", "feed"),
		costEntry("100", "labor"),
	}

	buckets := Aggregate(entries, costAmount, func(e ledger.CostEntry) string {
		return string(ClassifyCategory(e.Category))
	})

	require.Len(t, buckets, 3)
	assert.Equal(t, "labor", buckets[0].Key, "highest total first")
	assert.Equal(t, "feed", buckets[1].Key, "ties break by ascending key")
	assert.Equal(t, "veterinary", buckets[2].Key)
}

func TestAverageAmount(t *testing.T) {
	assert.Equal(t, "0", AverageAmount(nil, costAmount).String(), "empty set averages to zero")

	entries := []ledger.CostEntry{costEntry("10", "feed"), costEntry("5", "feed")}
	assert.Equal(t, "7.5", AverageAmount(entries, costAmount).String())
}
