package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdboard/internal/core/id"
	"herdboard/internal/core/types"
	"herdboard/internal/domain/herd"
	"herdboard/internal/domain/ledger"
)

func ptr[T any](v T) *T { return &v }

func testHerd() ([]herd.Animal, AnimalIndex) {
	pastureA := id.MustParse("018f0000-0000-7000-8000-00000000000a")
	pastureB := id.MustParse("018f0000-0000-7000-8000-00000000000b")

	animals := []herd.Animal{
		{
			ID:         id.MustParse("018f0000-0000-7000-8000-000000000001"),
			TagNumber:  "BR-001",
			Breed:      "Nelore",
			Sex:        herd.SexFemale,
			Status:     herd.StatusActive,
			LocationID: &pastureA,
			BirthDate:  ptr(day(2022, 5, 1)),
		},
		{
			ID:         id.MustParse("018f0000-0000-7000-8000-000000000002"),
			TagNumber:  "BR-002",
			Breed:      "Angus",
			Sex:        herd.SexMale,
			Status:     herd.StatusActive,
			LocationID: &pastureB,
			BirthDate:  ptr(day(2025, 9, 1)),
		},
		{
			ID:        id.MustParse("018f0000-0000-7000-8000-000000000003"),
			TagNumber: "BR-003",
			Breed:     "Nelore x Angus",
			Sex:       herd.SexFemale,
			Status:    herd.StatusSold,
		},
	}
	return animals, NewAnimalIndex(animals)
}

func TestFilterByDate_SkipsAndCounts(t *testing.T) {
	rp := mustResolve(t, day(2026, 2, 1), day(2026, 3, 1))

	entries := []ledger.CostEntry{
		datedCost(day(2026, 2, 10), "100"),
		{Amount: types.MustMoney("50"), Category: "feed"}, // missing date
		datedCost(day(2026, 1, 10), "30"),                 // out of range, not skipped
	}

	got := FilterByDate(entries, costDate, rp)
	assert.Len(t, got.Records, 1)
	assert.Equal(t, 1, got.SkippedCount, "only the dateless record counts as skipped")
	assert.Equal(t, "100", SumAmounts(got.Records, costAmount).String(),
		"aggregates are unaffected by the skipped record")
}

func TestFilterSet_IsZero(t *testing.T) {
	var f *FilterSet
	assert.True(t, f.IsZero())
	assert.True(t, (&FilterSet{}).IsZero())
	assert.False(t, (&FilterSet{BreedContains: "nelore"}).IsZero())
}

func TestFilterAnimals(t *testing.T) {
	animals, _ := testHerd()

	tests := []struct {
		name     string
		filter   *FilterSet
		wantTags []string
	}{
		{"nil filter keeps all", nil, []string{"BR-001", "BR-002", "BR-003"}},
		{"by sex", &FilterSet{Sex: ptr(herd.SexFemale)}, []string{"BR-001", "BR-003"}},
		{"breed substring is case-insensitive", &FilterSet{BreedContains: "NELORE"}, []string{"BR-001", "BR-003"}},
		{
			"by location",
			&FilterSet{LocationIDs: []id.ID{id.MustParse("018f0000-0000-7000-8000-00000000000a")}},
			[]string{"BR-001"},
		},
		{
			"combined predicates AND together",
			&FilterSet{Sex: ptr(herd.SexFemale), BreedContains: "angus"},
			[]string{"BR-003"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAnimals(animals, tt.filter)
			tags := make([]string, 0, len(got))
			for _, a := range got {
				tags = append(tags, a.TagNumber)
			}
			assert.Equal(t, tt.wantTags, tags)
		})
	}
}

func TestFilterCosts(t *testing.T) {
	animals, idx := testHerd()
	female := animals[0].ID

	entries := []ledger.CostEntry{
		{Date: day(2026, 2, 1), Amount: types.MustMoney("100"), Category: "feed", AnimalID: &female},
		{Date: day(2026, 2, 2), Amount: types.MustMoney("500"), Category: "vet"},
		{Date: day(2026, 2, 3), Amount: types.MustMoney("20"), Category: "hay"},
	}

	t.Run("by classified category", func(t *testing.T) {
		got := FilterCosts(entries, &FilterSet{Category: CategoryFeed}, idx)
		require.Len(t, got, 2, "synonym categories classify into the same bucket")
	})

	t.Run("by amount range", func(t *testing.T) {
		got := FilterCosts(entries, &FilterSet{
			MinAmount: ptr(types.MustMoney("50")),
			MaxAmount: ptr(types.MustMoney("200")),
		}, idx)
		require.Len(t, got, 1)
		assert.Equal(t, "100", got[0].Amount.String())
	})

	t.Run("animal predicate excludes unattributed records", func(t *testing.T) {
		got := FilterCosts(entries, &FilterSet{Sex: ptr(herd.SexFemale)}, idx)
		require.Len(t, got, 1)
		assert.Equal(t, &female, got[0].AnimalID)
	})
}

func TestFilterBirths_ByMotherAttributes(t *testing.T) {
	animals, idx := testHerd()

	records := []ledger.BirthRecord{
		{Date: day(2026, 2, 1), MotherAnimalID: animals[0].ID},
		{Date: day(2026, 2, 2), MotherAnimalID: animals[1].ID},
	}

	got := FilterBirths(records, &FilterSet{BreedContains: "nelore"}, idx)
	require.Len(t, got, 1)
	assert.Equal(t, animals[0].ID, got[0].MotherAnimalID)
}

func TestAnimalIndex_Lookup(t *testing.T) {
	animals, idx := testHerd()

	assert.Nil(t, idx.Lookup(nil))
	assert.Nil(t, idx.Lookup(ptr(id.New())), "unknown reference resolves to nil")

	got := idx.Lookup(&animals[1].ID)
	require.NotNil(t, got)
	assert.Equal(t, "BR-002", got.TagNumber)
}
