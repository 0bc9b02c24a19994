package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"stylos/internal/domain/reports"
	"stylos/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for dashboard and stock reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Dashboard handles GET /reports/dashboard.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context(), time.Now())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, stats)
}

// LowStock handles GET /reports/low-stock.
func (h *ReportsHandler) LowStock(c *gin.Context) {
	products, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewProductListResponse(products, h.IsAdmin(c)))
}

// Valuation handles GET /reports/valuation. Valuation exposes cost data;
// the router restricts it to admins.
func (h *ReportsHandler) Valuation(c *gin.Context) {
	valuation, err := h.service.Valuation(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, valuation)
}
