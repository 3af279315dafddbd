package ledger

import (
	"context"
	"time"

	"herdboard/internal/core/id"
)

const (
	defaultListLimit = 200
	maxListLimit     = 2000
)

func clampLimit(f *RangeFilter) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
}

// CostService provides CRUD over cost entries.
type CostService struct {
	repo CostRepository
}

// NewCostService creates a cost service.
func NewCostService(repo CostRepository) *CostService {
	return &CostService{repo: repo}
}

// Create validates and stores a cost entry.
func (s *CostService) Create(ctx context.Context, e *CostEntry) error {
	if id.IsNil(e.ID) {
		e.ID = id.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := e.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, e)
}

// Get returns one cost entry.
func (s *CostService) Get(ctx context.Context, entryID id.ID) (*CostEntry, error) {
	return s.repo.GetByID(ctx, entryID)
}

// List returns cost entries inside the filter window.
func (s *CostService) List(ctx context.Context, filter RangeFilter) ([]CostEntry, error) {
	clampLimit(&filter)
	return s.repo.List(ctx, filter)
}

// Delete removes a cost entry.
func (s *CostService) Delete(ctx context.Context, entryID id.ID) error {
	return s.repo.Delete(ctx, entryID)
}

// SaleService provides CRUD over sale entries.
type SaleService struct {
	repo SaleRepository
}

// NewSaleService creates a sale service.
func NewSaleService(repo SaleRepository) *SaleService {
	return &SaleService{repo: repo}
}

// Create validates and stores a sale entry.
func (s *SaleService) Create(ctx context.Context, e *SaleEntry) error {
	if id.IsNil(e.ID) {
		e.ID = id.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := e.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, e)
}

// Get returns one sale entry.
func (s *SaleService) Get(ctx context.Context, entryID id.ID) (*SaleEntry, error) {
	return s.repo.GetByID(ctx, entryID)
}

// List returns sale entries inside the filter window.
func (s *SaleService) List(ctx context.Context, filter RangeFilter) ([]SaleEntry, error) {
	clampLimit(&filter)
	return s.repo.List(ctx, filter)
}

// Delete removes a sale entry.
func (s *SaleService) Delete(ctx context.Context, entryID id.ID) error {
	return s.repo.Delete(ctx, entryID)
}

// BirthService provides CRUD over birth records.
type BirthService struct {
	repo BirthRepository
}

// NewBirthService creates a birth service.
func NewBirthService(repo BirthRepository) *BirthService {
	return &BirthService{repo: repo}
}

// Create validates and stores a birth record.
func (s *BirthService) Create(ctx context.Context, r *BirthRecord) error {
	if id.IsNil(r.ID) {
		r.ID = id.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if err := r.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, r)
}

// Get returns one birth record.
func (s *BirthService) Get(ctx context.Context, recordID id.ID) (*BirthRecord, error) {
	return s.repo.GetByID(ctx, recordID)
}

// List returns birth records inside the filter window.
func (s *BirthService) List(ctx context.Context, filter RangeFilter) ([]BirthRecord, error) {
	clampLimit(&filter)
	return s.repo.List(ctx, filter)
}

// Delete removes a birth record.
func (s *BirthService) Delete(ctx context.Context, recordID id.ID) error {
	return s.repo.Delete(ctx, recordID)
}
