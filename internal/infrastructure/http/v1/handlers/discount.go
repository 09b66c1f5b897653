package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain"
	"stockbook/internal/domain/vouchers/discount"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// DiscountHandler handles discount voucher endpoints.
type DiscountHandler struct {
	*BaseHandler
	service *discount.Service
}

// NewDiscountHandler creates a new discount voucher handler.
func NewDiscountHandler(base *BaseHandler, service *discount.Service) *DiscountHandler {
	return &DiscountHandler{BaseHandler: base, service: service}
}

// Create handles POST /discounts.
func (h *DiscountHandler) Create(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	v := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), v); err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedWith(c, dto.FromDiscount(v))
}

// Get handles GET /discounts/:code.
func (h *DiscountHandler) Get(c *gin.Context) {
	v, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDiscount(v))
}

// List handles GET /discounts.
func (h *DiscountHandler) List(c *gin.Context) {
	filter := discount.ListFilter{
		ListFilter: domain.ListFilter{
			Search: c.Query("search"),
			Limit:  h.ParseIntQuery(c, "limit", 50),
			Offset: h.ParseIntQuery(c, "offset", 0),
		},
		ActiveOnly: c.Query("activeOnly") == "true",
		Model:      discount.Model(c.Query("model")),
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromDiscounts(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Validate handles POST /discounts/:code/validate.
// A rejection is a 200 with the reason, not an error: the guard outcome
// is the payload the caller asked for.
func (h *DiscountHandler) Validate(c *gin.Context) {
	var req dto.ValidateDiscountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Validate(c.Request.Context(), c.Param("code"), req.OrderAmount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Redeem handles POST /discounts/:code/redeem.
func (h *DiscountHandler) Redeem(c *gin.Context) {
	v, err := h.service.Redeem(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDiscount(v))
}

// RedeemIfValid handles POST /discounts/:code/redeem-if-valid.
// Validation and the usage increment run in one transaction.
func (h *DiscountHandler) RedeemIfValid(c *gin.Context) {
	var req dto.ValidateDiscountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.RedeemIfValid(c.Request.Context(), c.Param("code"), req.OrderAmount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}
