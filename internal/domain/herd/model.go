// Package herd provides the animal registry: the master record for every
// animal the operation tracks, active or not.
package herd

import (
	"context"
	"time"

	"herdboard/internal/core/apperror"
	"herdboard/internal/core/id"
)

// Status distinguishes animals still on the farm from those sold or lost.
type Status string

const (
	StatusActive   Status = "active"
	StatusSold     Status = "sold"
	StatusDeceased Status = "deceased"
)

// Sex of the animal.
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// Animal represents one animal in the registry.
// Engine code treats Animal values as immutable snapshots.
type Animal struct {
	ID id.ID `db:"id" json:"id"`

	// TagNumber is the ear-tag or brand identifier, unique per operation.
	TagNumber string `db:"tag_number" json:"tagNumber"`

	Name  string `db:"name" json:"name,omitempty"`
	Breed string `db:"breed" json:"breed"`
	Sex   Sex    `db:"sex" json:"sex"`

	// BirthDate may be unknown for purchased animals.
	BirthDate *time.Time `db:"birth_date" json:"birthDate,omitempty"`

	// LocationID references the pasture/lot the animal is assigned to.
	LocationID *id.ID `db:"location_id" json:"locationId,omitempty"`

	Status Status `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewAnimal creates an Animal with required fields.
func NewAnimal(tagNumber, breed string, sex Sex) *Animal {
	now := time.Now().UTC()
	return &Animal{
		ID:        id.New(),
		TagNumber: tagNumber,
		Breed:     breed,
		Sex:       sex,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks required fields and enum values.
func (a *Animal) Validate(ctx context.Context) error {
	if a.TagNumber == "" {
		return apperror.NewValidation("tag number is required").
			WithDetail("field", "tagNumber")
	}
	if !isValidStatus(a.Status) {
		return apperror.NewValidation("invalid animal status").
			WithDetail("field", "status").
			WithDetail("value", string(a.Status))
	}
	if !isValidSex(a.Sex) {
		return apperror.NewValidation("invalid animal sex").
			WithDetail("field", "sex").
			WithDetail("value", string(a.Sex))
	}
	return nil
}

// IsActive reports whether the animal is still part of the productive herd.
func (a *Animal) IsActive() bool {
	return a.Status == StatusActive
}

// AgeMonths returns the animal's age in whole months at the reference time,
// or -1 when the birth date is unknown.
func (a *Animal) AgeMonths(at time.Time) int {
	if a.BirthDate == nil || a.BirthDate.After(at) {
		return -1
	}
	months := (at.Year()-a.BirthDate.Year())*12 + int(at.Month()) - int(a.BirthDate.Month())
	if at.Day() < a.BirthDate.Day() {
		months--
	}
	if months < 0 {
		return -1
	}
	return months
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusSold, StatusDeceased:
		return true
	}
	return false
}

func isValidSex(s Sex) bool {
	switch s {
	case SexFemale, SexMale:
		return true
	}
	return false
}
