package analytics

import (
	"strings"
	"time"

	"herdboard/internal/core/id"
	"herdboard/internal/core/types"
	"herdboard/internal/domain/herd"
	"herdboard/internal/domain/ledger"
)

// FilterSet narrows the record set ahead of aggregation. All fields are
// optional predicates combined with AND. It is always passed explicitly and
// fully specified; the engine resolves no hidden defaults mid-computation.
type FilterSet struct {
	Sex           *herd.Sex `json:"sex,omitempty"`
	BreedContains string    `json:"breedContains,omitempty"`
	LocationIDs   []id.ID   `json:"locationIds,omitempty"`

	// Category restricts cost entries to one classified category.
	Category Category `json:"category,omitempty"`

	MinAmount *types.Money `json:"minAmount,omitempty"`
	MaxAmount *types.Money `json:"maxAmount,omitempty"`
}

// IsZero reports whether the filter set carries no predicates.
func (f *FilterSet) IsZero() bool {
	return f == nil || (f.Sex == nil && f.BreedContains == "" && len(f.LocationIDs) == 0 &&
		f.Category == "" && f.MinAmount == nil && f.MaxAmount == nil)
}

func (f *FilterSet) matchesAmount(amount types.Money) bool {
	if f == nil {
		return true
	}
	if f.MinAmount != nil && amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	return true
}

func (f *FilterSet) matchesAnimal(a *herd.Animal) bool {
	if f == nil {
		return true
	}
	if a == nil {
		// Records without a resolvable animal pass animal predicates only
		// when none are set.
		return f.Sex == nil && f.BreedContains == "" && len(f.LocationIDs) == 0
	}
	if f.Sex != nil && a.Sex != *f.Sex {
		return false
	}
	if f.BreedContains != "" && !strings.Contains(strings.ToLower(a.Breed), strings.ToLower(f.BreedContains)) {
		return false
	}
	if len(f.LocationIDs) > 0 {
		if a.LocationID == nil {
			return false
		}
		found := false
		for _, loc := range f.LocationIDs {
			if *a.LocationID == loc {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Filtered is the output of a filter pass: surviving records plus the count
// of records excluded because their date was missing or unparsable. Skips
// are always surfaced, never silently dropped.
type Filtered[T any] struct {
	Records      []T
	SkippedCount int
}

// FilterByDate selects records whose date falls inside the half-open range.
// A zero date marks a record whose source value was missing or failed to
// parse at the adapter boundary; such records are counted as skipped.
func FilterByDate[T any](records []T, dateOf func(T) time.Time, rp ResolvedPeriod) Filtered[T] {
	out := Filtered[T]{Records: make([]T, 0, len(records))}
	for _, r := range records {
		d := dateOf(r)
		if d.IsZero() {
			out.SkippedCount++
			continue
		}
		if rp.Contains(d) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// AnimalIndex resolves animal references on ledger records.
type AnimalIndex map[id.ID]*herd.Animal

// NewAnimalIndex builds an index over the snapshot's animals.
func NewAnimalIndex(animals []herd.Animal) AnimalIndex {
	idx := make(AnimalIndex, len(animals))
	for i := range animals {
		idx[animals[i].ID] = &animals[i]
	}
	return idx
}

// Lookup returns the animal for the given optional reference, or nil.
func (idx AnimalIndex) Lookup(ref *id.ID) *herd.Animal {
	if ref == nil {
		return nil
	}
	return idx[*ref]
}

// FilterCosts applies the filter set to cost entries.
func FilterCosts(entries []ledger.CostEntry, f *FilterSet, idx AnimalIndex) []ledger.CostEntry {
	if f.IsZero() {
		return entries
	}
	out := make([]ledger.CostEntry, 0, len(entries))
	for _, e := range entries {
		if f.Category != "" && ClassifyCategory(e.Category) != f.Category {
			continue
		}
		if !f.matchesAmount(e.Amount) {
			continue
		}
		if !f.matchesAnimal(idx.Lookup(e.AnimalID)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSales applies the filter set to sale entries.
func FilterSales(entries []ledger.SaleEntry, f *FilterSet, idx AnimalIndex) []ledger.SaleEntry {
	if f.IsZero() {
		return entries
	}
	out := make([]ledger.SaleEntry, 0, len(entries))
	for _, e := range entries {
		if !f.matchesAmount(e.Amount) {
			continue
		}
		animalID := e.AnimalID
		if !f.matchesAnimal(idx.Lookup(&animalID)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterBirths applies the filter set (mother attributes) to birth records.
func FilterBirths(records []ledger.BirthRecord, f *FilterSet, idx AnimalIndex) []ledger.BirthRecord {
	if f.IsZero() {
		return records
	}
	out := make([]ledger.BirthRecord, 0, len(records))
	for _, r := range records {
		motherID := r.MotherAnimalID
		if !f.matchesAnimal(idx.Lookup(&motherID)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterAnimals applies the filter set's animal predicates to the registry.
func FilterAnimals(animals []herd.Animal, f *FilterSet) []herd.Animal {
	if f.IsZero() {
		return animals
	}
	out := make([]herd.Animal, 0, len(animals))
	for i := range animals {
		if f.matchesAnimal(&animals[i]) {
			out = append(out, animals[i])
		}
	}
	return out
}
