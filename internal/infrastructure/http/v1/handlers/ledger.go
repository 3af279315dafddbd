package handlers

import (
	"github.com/gin-gonic/gin"

	"herdboard/internal/domain/ledger"
	"herdboard/internal/infrastructure/http/v1/dto"
)

// LedgerHandler serves the cost, sale and birth record endpoints.
type LedgerHandler struct {
	base   *BaseHandler
	costs  *ledger.CostService
	sales  *ledger.SaleService
	births *ledger.BirthService
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(
	base *BaseHandler,
	costs *ledger.CostService,
	sales *ledger.SaleService,
	births *ledger.BirthService,
) *LedgerHandler {
	return &LedgerHandler{base: base, costs: costs, sales: sales, births: births}
}

// --- Cost entries ---

// CreateCost records an expense line.
// POST /api/v1/ledger/costs
func (h *LedgerHandler) CreateCost(c *gin.Context) {
	var req dto.CreateCostEntryRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	entry, err := req.ToModel()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	if err := h.costs.Create(c.Request.Context(), entry); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Created(c, entry.ID.String())
}

// GetCost returns one cost entry by ID.
// GET /api/v1/ledger/costs/:id
func (h *LedgerHandler) GetCost(c *gin.Context) {
	entryID, ok := h.base.PathID(c)
	if !ok {
		return
	}

	entry, err := h.costs.Get(c.Request.Context(), entryID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, entry)
}

// ListCosts returns cost entries in a date window.
// GET /api/v1/ledger/costs
func (h *LedgerHandler) ListCosts(c *gin.Context) {
	filter, ok := h.bindRangeFilter(c)
	if !ok {
		return
	}

	entries, err := h.costs.List(c.Request.Context(), filter)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.ListResponse{
		Items:      entries,
		TotalCount: int64(len(entries)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// DeleteCost removes a cost entry.
// DELETE /api/v1/ledger/costs/:id
func (h *LedgerHandler) DeleteCost(c *gin.Context) {
	entryID, ok := h.base.PathID(c)
	if !ok {
		return
	}

	if err := h.costs.Delete(c.Request.Context(), entryID); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.NoContent(c)
}

// --- Sale entries ---

// CreateSale records realized revenue for an animal.
// POST /api/v1/ledger/sales
func (h *LedgerHandler) CreateSale(c *gin.Context) {
	var req dto.CreateSaleEntryRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	entry, err := req.ToModel()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	if err := h.sales.Create(c.Request.Context(), entry); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Created(c, entry.ID.String())
}

// GetSale returns one sale entry by ID.
// GET /api/v1/ledger/sales/:id
func (h *LedgerHandler) GetSale(c *gin.Context) {
	entryID, ok := h.base.PathID(c)
	if !ok {
		return
	}

	entry, err := h.sales.Get(c.Request.Context(), entryID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, entry)
}

// ListSales returns sale entries in a date window.
// GET /api/v1/ledger/sales
func (h *LedgerHandler) ListSales(c *gin.Context) {
	filter, ok := h.bindRangeFilter(c)
	if !ok {
		return
	}

	entries, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.ListResponse{
		Items:      entries,
		TotalCount: int64(len(entries)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// DeleteSale removes a sale entry.
// DELETE /api/v1/ledger/sales/:id
func (h *LedgerHandler) DeleteSale(c *gin.Context) {
	entryID, ok := h.base.PathID(c)
	if !ok {
		return
	}

	if err := h.sales.Delete(c.Request.Context(), entryID); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.NoContent(c)
}

// --- Birth records ---

// CreateBirth registers a calving event.
// POST /api/v1/ledger/births
func (h *LedgerHandler) CreateBirth(c *gin.Context) {
	var req dto.CreateBirthRecordRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	record, err := req.ToModel()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	if err := h.births.Create(c.Request.Context(), record); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Created(c, record.ID.String())
}

// GetBirth returns one birth record by ID.
// GET /api/v1/ledger/births/:id
func (h *LedgerHandler) GetBirth(c *gin.Context) {
	recordID, ok := h.base.PathID(c)
	if !ok {
		return
	}

	record, err := h.births.Get(c.Request.Context(), recordID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, record)
}

// ListBirths returns birth records in a date window. The animalId query
// parameter filters by mother.
// GET /api/v1/ledger/births
func (h *LedgerHandler) ListBirths(c *gin.Context) {
	filter, ok := h.bindRangeFilter(c)
	if !ok {
		return
	}

	records, err := h.births.List(c.Request.Context(), filter)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.ListResponse{
		Items:      records,
		TotalCount: int64(len(records)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// DeleteBirth removes a birth record.
// DELETE /api/v1/ledger/births/:id
func (h *LedgerHandler) DeleteBirth(c *gin.Context) {
	recordID, ok := h.base.PathID(c)
	if !ok {
		return
	}

	if err := h.births.Delete(c.Request.Context(), recordID); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.NoContent(c)
}

func (h *LedgerHandler) bindRangeFilter(c *gin.Context) (ledger.RangeFilter, bool) {
	var req dto.LedgerListRequest
	if !h.base.BindQuery(c, &req) {
		return ledger.RangeFilter{}, false
	}

	filter, err := req.ToFilter()
	if err != nil {
		h.base.Error(c, err)
		return ledger.RangeFilter{}, false
	}
	return filter, true
}
