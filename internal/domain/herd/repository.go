package herd

import (
	"context"

	"herdboard/internal/core/id"
)

// ListFilter narrows List results.
type ListFilter struct {
	// BreedContains matches breed case-insensitively by substring.
	BreedContains string

	// LocationIDs restricts to animals assigned to the given locations.
	LocationIDs []id.ID

	// Statuses restricts to the given statuses; empty means all.
	Statuses []Status

	Sex *Sex

	Limit  int
	Offset int
}

// Repository is the persistence boundary for the animal registry.
type Repository interface {
	Create(ctx context.Context, a *Animal) error
	GetByID(ctx context.Context, animalID id.ID) (*Animal, error)
	List(ctx context.Context, filter ListFilter) ([]Animal, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	Update(ctx context.Context, a *Animal) error
	UpdateStatus(ctx context.Context, animalID id.ID, status Status) error
}
