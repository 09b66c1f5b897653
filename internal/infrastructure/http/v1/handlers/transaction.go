package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/transaction"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// VoucherHandler handles purchase and sales voucher endpoints.
// The two flows are symmetric; the kind comes from the route.
type VoucherHandler struct {
	*BaseHandler
	service *transaction.Service
}

// NewVoucherHandler creates a new voucher handler.
func NewVoucherHandler(base *BaseHandler, service *transaction.Service) *VoucherHandler {
	return &VoucherHandler{BaseHandler: base, service: service}
}

func (h *VoucherHandler) kind(c *gin.Context) (transaction.Kind, bool) {
	kind := transaction.Kind(c.Param("kind"))
	if kind != transaction.KindPurchase && kind != transaction.KindSales {
		h.Error(c, apperror.NewValidation("unknown voucher kind").
			WithDetail("kind", c.Param("kind")))
		return "", false
	}
	return kind, true
}

// Create handles POST /vouchers/:kind.
func (h *VoucherHandler) Create(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var req dto.CreateVoucherRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity(kind)
	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedWith(c, dto.FromVoucher(doc))
}

// Get handles GET /vouchers/:kind/:ref.
// The reference is the display number or the internal id.
func (h *VoucherHandler) Get(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByRef(c.Request.Context(), kind, c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVoucher(doc))
}

// Update handles PUT /vouchers/:kind/:ref.
func (h *VoucherHandler) Update(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var req dto.UpdateVoucherRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByRef(c.Request.Context(), kind, c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}

	replaceLines := req.ApplyTo(doc)
	if err := h.service.Update(c.Request.Context(), doc, replaceLines); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVoucher(doc))
}

// Void handles DELETE /vouchers/:kind/:ref. Voiding is a soft delete;
// the document and its number survive.
func (h *VoucherHandler) Void(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	doc, err := h.service.Void(c.Request.Context(), kind, c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVoucher(doc))
}

// List handles GET /vouchers/:kind.
func (h *VoucherHandler) List(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	filter := transaction.ListFilter{
		ListFilter: domain.ListFilter{
			Search:  c.Query("search"),
			OrderBy: c.Query("orderBy"),
			Limit:   h.ParseIntQuery(c, "limit", 50),
			Offset:  h.ParseIntQuery(c, "offset", 0),
		},
		Kind:          kind,
		Status:        transaction.Status(c.Query("status")),
		Counterparty:  c.Query("counterparty"),
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
		Items:      dto.FromVouchers(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
