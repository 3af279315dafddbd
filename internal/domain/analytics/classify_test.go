package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"herdboard/internal/domain/herd"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want Category
	}{
		{"feed", CategoryFeed},
		{"Hay", CategoryFeed},
		{"  silage  ", CategoryFeed},
		{"vet", CategoryVeterinary},
		{"VACCINATION", CategoryVeterinary},
		{"wages", CategoryLabor},
		{"fencing", CategoryInfrastructure},
		{"fuel", CategoryTransport},
		{"insemination", CategoryBreeding},
		{"", CategoryOther},
		{"veterinary supplies", CategoryOther}, // exact token match, not substring
		{"misc", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCategory(tt.raw))
		})
	}
}

func TestLookupCategory(t *testing.T) {
	tests := []struct {
		raw    string
		want   Category
		wantOK bool
	}{
		{"feed", CategoryFeed, true},
		{"other", CategoryOther, true}, // enum member, not a synonym
		{"fuel", CategoryTransport, true},
		{" Silage ", CategoryFeed, true},
		{"", CategoryOther, false},
		{"misc", CategoryOther, false},
		{"veterinary supplies", CategoryOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := LookupCategory(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategories_IsClosedSet(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 7)
	assert.Equal(t, CategoryOther, cats[len(cats)-1])

	seen := make(map[Category]bool)
	for _, c := range categorySynonyms {
		seen[c] = true
	}
	for c := range seen {
		assert.Contains(t, cats, c, "every synonym target must be in the closed set")
	}
}

func TestAgeCohort(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth *time.Time
		want  string
	}{
		{"six months old", ptr(day(2025, 9, 1)), CohortCalf},
		{"just under a year", ptr(day(2025, 3, 2)), CohortCalf},
		{"exactly twelve months", ptr(day(2025, 3, 1)), CohortYearling},
		{"eighteen months", ptr(day(2024, 9, 1)), CohortYearling},
		{"three years", ptr(day(2023, 3, 1)), CohortAdult},
		{"exactly five years", ptr(day(2021, 3, 1)), CohortMature},
		{"eight years", ptr(day(2018, 3, 1)), CohortMature},
		{"no birth date", nil, CohortUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &herd.Animal{TagNumber: "X", BirthDate: tt.birth}
			assert.Equal(t, tt.want, AgeCohort(a, at))
		})
	}
}

func TestAgeCohort_NilAnimal(t *testing.T) {
	assert.Equal(t, CohortUnknown, AgeCohort(nil, testNow))
}
