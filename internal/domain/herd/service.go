package herd

import (
	"context"
	"time"

	"herdboard/internal/core/apperror"
	"herdboard/internal/core/id"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Service provides business logic for the animal registry.
type Service struct {
	repo Repository
}

// NewService creates a new herd service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new animal.
func (s *Service) Create(ctx context.Context, a *Animal) error {
	if id.IsNil(a.ID) {
		a.ID = id.New()
	}
	if a.Status == "" {
		a.Status = StatusActive
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	if err := a.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, a)
}

// Get returns one animal by ID.
func (s *Service) Get(ctx context.Context, animalID id.ID) (*Animal, error) {
	return s.repo.GetByID(ctx, animalID)
}

// List returns animals matching the filter with total count.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Animal, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	animals, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return animals, total, nil
}

// Update validates and stores changes to an existing animal.
func (s *Service) Update(ctx context.Context, a *Animal) error {
	if id.IsNil(a.ID) {
		return apperror.NewValidation("animal id is required")
	}
	a.UpdatedAt = time.Now().UTC()
	if err := a.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, a)
}

// SetStatus transitions an animal to sold or deceased (or back to active).
func (s *Service) SetStatus(ctx context.Context, animalID id.ID, status Status) error {
	if !isValidStatus(status) {
		return apperror.NewValidation("invalid animal status").
			WithDetail("value", string(status))
	}
	return s.repo.UpdateStatus(ctx, animalID, status)
}
