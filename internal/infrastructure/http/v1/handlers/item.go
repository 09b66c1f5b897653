package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/catalogs/item"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ItemHandler handles inventory item endpoints.
type ItemHandler struct {
	*BaseHandler
	service *item.Service
}

// NewItemHandler creates a new inventory item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	return &ItemHandler{BaseHandler: base, service: service}
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedWith(c, dto.FromItem(it))
}

// Get handles GET /items/:id. The reference is the internal id or the
// item code, tried in that order.
func (h *ItemHandler) Get(c *gin.Context) {
	it, err := h.resolve(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(it))
}

// Update handles PUT /items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it, err := h.resolve(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(it)
	if err := h.service.Update(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(it))
}

// Deactivate handles DELETE /items/:id. Items are never hard-deleted.
func (h *ItemHandler) Deactivate(c *gin.Context) {
	it, err := h.resolve(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), it.ID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Adjust handles POST /items/:id/adjust.
func (h *ItemHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it, err := h.resolve(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Adjust(c.Request.Context(), it.ID, req.Operation, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// List handles GET /items.
func (h *ItemHandler) List(c *gin.Context) {
	filter := item.ListFilter{
		ListFilter: domain.ListFilter{
			Search:  c.Query("search"),
			OrderBy: c.Query("orderBy"),
			Limit:   h.ParseIntQuery(c, "limit", 50),
			Offset:  h.ParseIntQuery(c, "offset", 0),
		},
		Category:   c.Query("category"),
		ActiveOnly: c.Query("activeOnly") == "true",
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromItems(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

func (h *ItemHandler) resolve(c *gin.Context) (*item.InventoryItem, error) {
	ref := c.Param("id")
	if ref == "" {
		return nil, apperror.NewValidation("item reference is required")
	}

	if itemID, err := id.Parse(ref); err == nil {
		return h.service.GetByID(c.Request.Context(), itemID)
	}

	return h.service.GetByCode(c.Request.Context(), ref)
}
