package handlers

import (
	"github.com/gin-gonic/gin"

	"herdboard/internal/domain/herd"
	"herdboard/internal/infrastructure/http/v1/dto"
)

// HerdHandler serves the animal registry endpoints.
type HerdHandler struct {
	base    *BaseHandler
	service *herd.Service
}

// NewHerdHandler creates a new herd handler.
func NewHerdHandler(base *BaseHandler, service *herd.Service) *HerdHandler {
	return &HerdHandler{base: base, service: service}
}

// Create registers a new animal.
// POST /api/v1/herd/animals
func (h *HerdHandler) Create(c *gin.Context) {
	var req dto.CreateAnimalRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	animal, err := req.ToModel()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), animal); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Created(c, animal.ID.String())
}

// Get returns one animal by ID.
// GET /api/v1/herd/animals/:id
func (h *HerdHandler) Get(c *gin.Context) {
	animalID, ok := h.base.PathID(c)
	if !ok {
		return
	}

	animal, err := h.service.Get(c.Request.Context(), animalID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, animal)
}

// List returns animals matching the query filter.
// GET /api/v1/herd/animals
func (h *HerdHandler) List(c *gin.Context) {
	var req dto.AnimalListRequest
	if !h.base.BindQuery(c, &req) {
		return
	}

	filter := req.ToFilter()
	animals, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.ListResponse{
		Items:      animals,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Update replaces mutable registry fields of an animal.
// PUT /api/v1/herd/animals/:id
func (h *HerdHandler) Update(c *gin.Context) {
	animalID, ok := h.base.PathID(c)
	if !ok {
		return
	}

	var req dto.UpdateAnimalRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	animal, err := h.service.Get(c.Request.Context(), animalID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	if err := req.ApplyTo(animal); err != nil {
		h.base.Error(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), animal); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, animal)
}

// SetStatus transitions an animal's lifecycle status.
// PATCH /api/v1/herd/animals/:id/status
func (h *HerdHandler) SetStatus(c *gin.Context) {
	animalID, ok := h.base.PathID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), animalID, herd.Status(req.Status)); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Success(c, "status updated")
}
