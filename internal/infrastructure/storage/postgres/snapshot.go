package postgres

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"herdboard/internal/core/apperror"
	"herdboard/internal/domain/herd"
	"herdboard/internal/domain/ledger"
)

// SnapshotSource implements ledger.Source by loading the four collections a
// report needs in one fetch. The full registry is always loaded (age cohorts
// and herd breakdowns need animals regardless of ledger activity); ledger
// collections are restricted to the requested window.
type SnapshotSource struct {
	animals *AnimalRepo
	costs   *CostRepo
	sales   *SaleRepo
	births  *BirthRepo
}

// NewSnapshotSource wires the snapshot source over the domain repositories.
func NewSnapshotSource(animals *AnimalRepo, costs *CostRepo, sales *SaleRepo, births *BirthRepo) *SnapshotSource {
	return &SnapshotSource{animals: animals, costs: costs, sales: sales, births: births}
}

// FetchSnapshot loads every collection concurrently. Any collection failing
// fails the whole fetch; the report layer never works from a partial
// snapshot.
func (s *SnapshotSource) FetchSnapshot(ctx context.Context, from, to time.Time) (*ledger.Snapshot, error) {
	window := ledger.RangeFilter{From: from, To: to}
	snap := &ledger.Snapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		animals, err := s.animals.List(ctx, herd.ListFilter{})
		if err != nil {
			return apperror.NewDataUnavailable("animals", err)
		}
		snap.Animals = animals
		return nil
	})
	g.Go(func() error {
		costs, err := s.costs.List(ctx, window)
		if err != nil {
			return apperror.NewDataUnavailable("costs", err)
		}
		snap.Costs = costs
		return nil
	})
	g.Go(func() error {
		sales, err := s.sales.List(ctx, window)
		if err != nil {
			return apperror.NewDataUnavailable("sales", err)
		}
		snap.Sales = sales
		return nil
	})
	g.Go(func() error {
		births, err := s.births.List(ctx, window)
		if err != nil {
			return apperror.NewDataUnavailable("births", err)
		}
		snap.Births = births
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch snapshot [%s, %s): %w",
			from.Format("2006-01-02"), to.Format("2006-01-02"), err)
	}
	return snap, nil
}
