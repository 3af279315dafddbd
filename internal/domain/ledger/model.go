// Package ledger holds the transactional records the analytics engine consumes:
// cost entries, sale entries and birth records. Records are append-mostly and
// treated as immutable snapshots once fetched.
package ledger

import (
	"context"
	"time"

	"herdboard/internal/core/apperror"
	"herdboard/internal/core/id"
	"herdboard/internal/core/types"
)

// CostEntry is one expense line. Amount may be zero or negative (corrections).
// AnimalID is optional: overhead costs are not attributed to a single animal.
type CostEntry struct {
	ID       id.ID       `db:"id" json:"id"`
	Date     time.Time   `db:"entry_date" json:"date"`
	Amount   types.Money `db:"amount" json:"amount"`
	Category string      `db:"category" json:"category"`
	AnimalID *id.ID      `db:"animal_id" json:"animalId,omitempty"`

	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks required cost entry fields.
func (c *CostEntry) Validate(ctx context.Context) error {
	if c.Date.IsZero() {
		return apperror.NewValidation("cost entry date is required").
			WithDetail("field", "date")
	}
	if c.Category == "" {
		return apperror.NewValidation("cost entry category is required").
			WithDetail("field", "category")
	}
	return nil
}

// SaleEntry is realized revenue for a specific animal.
type SaleEntry struct {
	ID       id.ID       `db:"id" json:"id"`
	Date     time.Time   `db:"entry_date" json:"date"`
	Amount   types.Money `db:"amount" json:"amount"`
	AnimalID id.ID       `db:"animal_id" json:"animalId"`

	Buyer     string    `db:"buyer" json:"buyer,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks required sale entry fields.
func (s *SaleEntry) Validate(ctx context.Context) error {
	if s.Date.IsZero() {
		return apperror.NewValidation("sale entry date is required").
			WithDetail("field", "date")
	}
	if id.IsNil(s.AnimalID) {
		return apperror.NewValidation("sale entry animal is required").
			WithDetail("field", "animalId")
	}
	return nil
}

// BirthRecord registers a calving event for reproduction metrics.
type BirthRecord struct {
	ID             id.ID     `db:"id" json:"id"`
	Date           time.Time `db:"event_date" json:"date"`
	MotherAnimalID id.ID     `db:"mother_animal_id" json:"motherAnimalId"`

	// CalfAnimalID links the newborn's registry entry once it is tagged.
	CalfAnimalID *id.ID `db:"calf_animal_id" json:"calfAnimalId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks required birth record fields.
func (b *BirthRecord) Validate(ctx context.Context) error {
	if b.Date.IsZero() {
		return apperror.NewValidation("birth record date is required").
			WithDetail("field", "date")
	}
	if id.IsNil(b.MotherAnimalID) {
		return apperror.NewValidation("birth record mother is required").
			WithDetail("field", "motherAnimalId")
	}
	return nil
}
