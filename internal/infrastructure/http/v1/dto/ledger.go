package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"herdboard/internal/core/apperror"
	"herdboard/internal/core/id"
	"herdboard/internal/domain/ledger"
)

// CreateCostEntryRequest records one expense line.
type CreateCostEntryRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Amount      string    `json:"amount" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	AnimalID    *string   `json:"animalId"`
	Description string    `json:"description"`
}

// ToModel converts the request to a domain cost entry.
func (r *CreateCostEntryRequest) ToModel() (*ledger.CostEntry, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return nil, err
	}
	e := &ledger.CostEntry{
		Date:        r.Date,
		Amount:      amount,
		Category:    r.Category,
		Description: r.Description,
	}
	if r.AnimalID != nil {
		animalID, err := id.Parse(*r.AnimalID)
		if err != nil {
			return nil, apperror.NewValidation("invalid animal id").
				WithDetail("animalId", *r.AnimalID)
		}
		e.AnimalID = &animalID
	}
	return e, nil
}

// CreateSaleEntryRequest records realized revenue for one animal.
type CreateSaleEntryRequest struct {
	Date     time.Time `json:"date" binding:"required"`
	Amount   string    `json:"amount" binding:"required"`
	AnimalID string    `json:"animalId" binding:"required"`
	Buyer    string    `json:"buyer"`
}

// ToModel converts the request to a domain sale entry.
func (r *CreateSaleEntryRequest) ToModel() (*ledger.SaleEntry, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return nil, err
	}
	animalID, err := id.Parse(r.AnimalID)
	if err != nil {
		return nil, apperror.NewValidation("invalid animal id").
			WithDetail("animalId", r.AnimalID)
	}
	return &ledger.SaleEntry{
		Date:     r.Date,
		Amount:   amount,
		AnimalID: animalID,
		Buyer:    r.Buyer,
	}, nil
}

// CreateBirthRecordRequest registers a calving event.
type CreateBirthRecordRequest struct {
	Date           time.Time `json:"date" binding:"required"`
	MotherAnimalID string    `json:"motherAnimalId" binding:"required"`
	CalfAnimalID   *string   `json:"calfAnimalId"`
}

// ToModel converts the request to a domain birth record.
func (r *CreateBirthRecordRequest) ToModel() (*ledger.BirthRecord, error) {
	motherID, err := id.Parse(r.MotherAnimalID)
	if err != nil {
		return nil, apperror.NewValidation("invalid mother animal id").
			WithDetail("motherAnimalId", r.MotherAnimalID)
	}
	b := &ledger.BirthRecord{
		Date:           r.Date,
		MotherAnimalID: motherID,
	}
	if r.CalfAnimalID != nil {
		calfID, err := id.Parse(*r.CalfAnimalID)
		if err != nil {
			return nil, apperror.NewValidation("invalid calf animal id").
				WithDetail("calfAnimalId", *r.CalfAnimalID)
		}
		b.CalfAnimalID = &calfID
	}
	return b, nil
}

// LedgerListRequest filters ledger listings to a date window.
type LedgerListRequest struct {
	PageRequest
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	AnimalID *string    `form:"animalId"`
	Category string     `form:"category"`
}

// ToFilter converts query parameters to the domain range filter.
func (r *LedgerListRequest) ToFilter() (ledger.RangeFilter, error) {
	filter := ledger.RangeFilter{
		Category: r.Category,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
	if r.From != nil {
		filter.From = *r.From
	}
	if r.To != nil {
		filter.To = *r.To
	}
	if r.AnimalID != nil {
		animalID, err := id.Parse(*r.AnimalID)
		if err != nil {
			return ledger.RangeFilter{}, apperror.NewValidation("invalid animal id").
				WithDetail("animalId", *r.AnimalID)
		}
		filter.AnimalID = &animalID
	}
	return filter, nil
}

// parseAmount parses a monetary string. Amounts travel as strings so client
// float formatting never corrupts them.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, apperror.NewValidation("invalid amount").
			WithDetail("amount", raw)
	}
	return amount, nil
}
