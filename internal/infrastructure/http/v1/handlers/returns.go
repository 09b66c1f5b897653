package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/returns"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ReturnHandler handles purchase and sales return endpoints.
type ReturnHandler struct {
	*BaseHandler
	service *returns.Service
}

// NewReturnHandler creates a new return handler.
func NewReturnHandler(base *BaseHandler, service *returns.Service) *ReturnHandler {
	return &ReturnHandler{BaseHandler: base, service: service}
}

func (h *ReturnHandler) kind(c *gin.Context) (returns.Kind, bool) {
	kind := returns.Kind(c.Param("kind"))
	if kind != returns.KindPurchase && kind != returns.KindSales {
		h.Error(c, apperror.NewValidation("unknown return kind").
			WithDetail("kind", c.Param("kind")))
		return "", false
	}
	return kind, true
}

// Create handles POST /returns/:kind.
func (h *ReturnHandler) Create(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var req dto.CreateReturnRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec := req.ToEntity(kind)
	if err := h.service.Create(c.Request.Context(), rec); err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedWith(c, dto.FromReturn(rec))
}

// Get handles GET /returns/:kind/:ref.
func (h *ReturnHandler) Get(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	rec, err := h.service.GetByRef(c.Request.Context(), kind, c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReturn(rec))
}

// Update handles PUT /returns/:kind/:ref.
func (h *ReturnHandler) Update(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var req dto.UpdateReturnRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := h.service.GetByRef(c.Request.Context(), kind, c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(rec)
	if err := h.service.Update(c.Request.Context(), rec); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReturn(rec))
}

// Void handles DELETE /returns/:kind/:ref.
func (h *ReturnHandler) Void(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	rec, err := h.service.Void(c.Request.Context(), kind, c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReturn(rec))
}

// List handles GET /returns/:kind.
func (h *ReturnHandler) List(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	filter := returns.ListFilter{
		ListFilter: domain.ListFilter{
			Search:  c.Query("search"),
			OrderBy: c.Query("orderBy"),
			Limit:   h.ParseIntQuery(c, "limit", 50),
			Offset:  h.ParseIntQuery(c, "offset", 0),
		},
		Kind:          kind,
		Status:        returns.Status(c.Query("status")),
		IncludeVoided: c.Query("includeVoided") == "true",
	}

	if from, err := time.Parse(time.RFC3339, c.Query("dateFrom")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("dateTo")); err == nil {
		filter.DateTo = &to
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromReturns(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
