package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/reports"
)

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// InventorySummary handles GET /reports/inventory-summary.
// The summary is derived fresh from the current item snapshot on every call.
func (h *ReportsHandler) InventorySummary(c *gin.Context) {
	summary, err := h.service.InventorySummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}
