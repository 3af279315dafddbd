package ledger

import (
	"context"
	"time"

	"herdboard/internal/core/id"

	"herdboard/internal/domain/herd"
)

// RangeFilter narrows ledger listings to a half-open [From, To) window.
// Zero values leave the bound open.
type RangeFilter struct {
	From time.Time
	To   time.Time

	AnimalID *id.ID
	Category string // cost entries only

	Limit  int
	Offset int
}

// CostRepository is the persistence boundary for cost entries.
type CostRepository interface {
	Create(ctx context.Context, e *CostEntry) error
	GetByID(ctx context.Context, entryID id.ID) (*CostEntry, error)
	List(ctx context.Context, filter RangeFilter) ([]CostEntry, error)
	Delete(ctx context.Context, entryID id.ID) error
}

// SaleRepository is the persistence boundary for sale entries.
type SaleRepository interface {
	Create(ctx context.Context, e *SaleEntry) error
	GetByID(ctx context.Context, entryID id.ID) (*SaleEntry, error)
	List(ctx context.Context, filter RangeFilter) ([]SaleEntry, error)
	Delete(ctx context.Context, entryID id.ID) error
}

// BirthRepository is the persistence boundary for birth records.
type BirthRepository interface {
	Create(ctx context.Context, r *BirthRecord) error
	GetByID(ctx context.Context, recordID id.ID) (*BirthRecord, error)
	List(ctx context.Context, filter RangeFilter) ([]BirthRecord, error)
	Delete(ctx context.Context, recordID id.ID) error
}

// Snapshot is the immutable record set one report generation works on.
// It is fetched once, before the engine runs; the engine never goes back
// to storage.
type Snapshot struct {
	Animals []herd.Animal
	Costs   []CostEntry
	Sales   []SaleEntry
	Births  []BirthRecord
}

// Source supplies the four flat record collections for report generation.
// Implementations fetch fresh data per call; the engine does not care whether
// it comes from a database, file or remote service.
type Source interface {
	// FetchSnapshot loads every collection needed to cover reports over
	// [from, to) including the preceding comparison window. A failure on any
	// collection fails the whole fetch.
	FetchSnapshot(ctx context.Context, from, to time.Time) (*Snapshot, error)
}
