package analytics

import (
	"strings"
	"time"

	"herdboard/internal/domain/herd"
)

// Category is the closed cost-category enumeration grouping keys are drawn
// from. Raw category text on records stays free-form; classification maps it
// here so grouping keys are stable and testable.
type Category string

const (
	CategoryFeed           Category = "feed"
	CategoryVeterinary     Category = "veterinary"
	CategoryLabor          Category = "labor"
	CategoryInfrastructure Category = "infrastructure"
	CategoryTransport      Category = "transport"
	CategoryBreeding       Category = "breeding"
	CategoryOther          Category = "other"
)

// categorySynonyms maps normalized raw category names onto the closed set.
// Exact-token matching, not substrings: "supplement" classifies because it is
// listed, not because it happens to contain some marker string.
var categorySynonyms = map[string]Category{
	"feed":        CategoryFeed,
	"feeding":     CategoryFeed,
	"nutrition":   CategoryFeed,
	"hay":         CategoryFeed,
	"silage":      CategoryFeed,
	"supplement":  CategoryFeed,
	"mineral":     CategoryFeed,
	"vet":         CategoryVeterinary,
	"veterinary":  CategoryVeterinary,
	"health":      CategoryVeterinary,
	"medicine":    CategoryVeterinary,
	"vaccine":     CategoryVeterinary,
	"vaccination": CategoryVeterinary,
	"deworming":   CategoryVeterinary,
	"labor":       CategoryLabor,
	"labour":      CategoryLabor,
	"wages":       CategoryLabor,
	"payroll":     CategoryLabor,
	"infrastructure": CategoryInfrastructure,
	"maintenance":    CategoryInfrastructure,
	"fencing":        CategoryInfrastructure,
	"equipment":      CategoryInfrastructure,
	"machinery":      CategoryInfrastructure,
	"water":          CategoryInfrastructure,
	"transport":      CategoryTransport,
	"freight":        CategoryTransport,
	"fuel":           CategoryTransport,
	"hauling":        CategoryTransport,
	"breeding":       CategoryBreeding,
	"insemination":   CategoryBreeding,
	"semen":          CategoryBreeding,
	"bull":           CategoryBreeding,
}

// ClassifyCategory maps a raw record category onto the closed enumeration.
// Unknown or empty input maps to CategoryOther, never dropped.
func ClassifyCategory(raw string) Category {
	if c, ok := LookupCategory(raw); ok {
		return c
	}
	return CategoryOther
}

// LookupCategory resolves a raw category token to a member of the closed
// enumeration. ok is false when the token is neither a member nor a known
// synonym; callers that must not swallow typos (filters) check it, record
// classification falls back to CategoryOther instead.
func LookupCategory(raw string) (Category, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	if ValidCategory(Category(norm)) {
		return Category(norm), true
	}
	if c, ok := categorySynonyms[norm]; ok {
		return c, true
	}
	return CategoryOther, false
}

// ValidCategory reports whether c is a member of the closed enumeration.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryFeed, CategoryVeterinary, CategoryLabor,
		CategoryInfrastructure, CategoryTransport, CategoryBreeding,
		CategoryOther:
		return true
	}
	return false
}

// Categories returns the closed enumeration in display order.
func Categories() []Category {
	return []Category{
		CategoryFeed, CategoryVeterinary, CategoryLabor,
		CategoryInfrastructure, CategoryTransport, CategoryBreeding,
		CategoryOther,
	}
}

// Age cohort boundaries in months.
const (
	calfMaxMonths     = 12
	yearlingMaxMonths = 24
	adultMaxMonths    = 60
)

// Cohort labels. CohortUnknown marks animals without a birth date; they form
// their own bucket instead of polluting a real cohort.
const (
	CohortCalf     = "calf"
	CohortYearling = "yearling"
	CohortAdult    = "adult"
	CohortMature   = "mature"
	CohortUnknown  = "unknown"
)

// AgeCohort derives the grouping cohort of an animal at the reference time.
func AgeCohort(a *herd.Animal, at time.Time) string {
	if a == nil {
		return CohortUnknown
	}
	months := a.AgeMonths(at)
	switch {
	case months < 0:
		return CohortUnknown
	case months < calfMaxMonths:
		return CohortCalf
	case months < yearlingMaxMonths:
		return CohortYearling
	case months < adultMaxMonths:
		return CohortAdult
	default:
		return CohortMature
	}
}
