package dto

import (
	"time"

	"herdboard/internal/core/apperror"
	"herdboard/internal/core/id"
	"herdboard/internal/domain/herd"
)

// CreateAnimalRequest registers a new animal.
type CreateAnimalRequest struct {
	TagNumber  string     `json:"tagNumber" binding:"required"`
	Name       string     `json:"name"`
	Breed      string     `json:"breed" binding:"required"`
	Sex        string     `json:"sex" binding:"required,oneof=female male"`
	BirthDate  *time.Time `json:"birthDate"`
	LocationID *string    `json:"locationId"`
}

// ToModel converts the request to a domain animal.
func (r *CreateAnimalRequest) ToModel() (*herd.Animal, error) {
	a := herd.NewAnimal(r.TagNumber, r.Breed, herd.Sex(r.Sex))
	a.Name = r.Name
	a.BirthDate = r.BirthDate
	if r.LocationID != nil {
		locID, err := id.Parse(*r.LocationID)
		if err != nil {
			return nil, apperror.NewValidation("invalid location id").
				WithDetail("locationId", *r.LocationID)
		}
		a.LocationID = &locID
	}
	return a, nil
}

// UpdateAnimalRequest replaces mutable registry fields.
type UpdateAnimalRequest struct {
	TagNumber  string     `json:"tagNumber" binding:"required"`
	Name       string     `json:"name"`
	Breed      string     `json:"breed" binding:"required"`
	Sex        string     `json:"sex" binding:"required,oneof=female male"`
	BirthDate  *time.Time `json:"birthDate"`
	LocationID *string    `json:"locationId"`
	Status     string     `json:"status" binding:"required,oneof=active sold deceased"`
}

// ApplyTo copies the mutable fields onto an existing animal.
func (r *UpdateAnimalRequest) ApplyTo(a *herd.Animal) error {
	a.TagNumber = r.TagNumber
	a.Name = r.Name
	a.Breed = r.Breed
	a.Sex = herd.Sex(r.Sex)
	a.BirthDate = r.BirthDate
	a.Status = herd.Status(r.Status)
	a.LocationID = nil
	if r.LocationID != nil {
		locID, err := id.Parse(*r.LocationID)
		if err != nil {
			return apperror.NewValidation("invalid location id").
				WithDetail("locationId", *r.LocationID)
		}
		a.LocationID = &locID
	}
	return nil
}

// UpdateStatusRequest transitions an animal's lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active sold deceased"`
}

// AnimalListRequest filters registry listings.
type AnimalListRequest struct {
	PageRequest
	Breed    string   `form:"breed"`
	Sex      string   `form:"sex" binding:"omitempty,oneof=female male"`
	Statuses []string `form:"status"`
}

// ToFilter converts query parameters to the domain list filter.
func (r *AnimalListRequest) ToFilter() herd.ListFilter {
	filter := herd.ListFilter{
		BreedContains: r.Breed,
		Limit:         r.Limit,
		Offset:        r.Offset,
	}
	if r.Sex != "" {
		sex := herd.Sex(r.Sex)
		filter.Sex = &sex
	}
	for _, s := range r.Statuses {
		filter.Statuses = append(filter.Statuses, herd.Status(s))
	}
	return filter
}
