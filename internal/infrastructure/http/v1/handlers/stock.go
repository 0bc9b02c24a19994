package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylos/internal/core/id"
	"stylos/internal/domain/stock"
	"stylos/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for the stock ledger.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// RecordMovement handles POST /stock/movements.
func (h *StockHandler) RecordMovement(c *gin.Context) {
	var req dto.MovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, invalidField("productId"))
		return
	}
	variantID, err := id.Parse(req.VariantID)
	if err != nil {
		h.Error(c, invalidField("variantId"))
		return
	}

	movement, err := h.service.RecordMovement(c.Request.Context(), req.ToInput(productID, variantID))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, movement)
}

// List handles GET /stock/movements.
func (h *StockHandler) List(c *gin.Context) {
	filter := stock.MovementFilter{
		Type:     stock.MovementType(c.Query("type")),
		Reason:   c.Query("reason"),
		Category: c.Query("category"),
		FromDate: h.ParseTimeQuery(c, "fromDate"),
		ToDate:   h.ParseTimeQuery(c, "toDate"),
		Limit:    h.ParseIntQuery(c, "limit", 100),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}
	if productID := c.Query("productId"); productID != "" {
		if parsed, err := id.Parse(productID); err == nil {
			filter.ProductID = &parsed
		}
	}
	if variantID := c.Query("variantId"); variantID != "" {
		if parsed, err := id.Parse(variantID); err == nil {
			filter.VariantID = &parsed
		}
	}

	movements, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(movements))
}

// CategoryTotal handles GET /stock/categories/:category/output. Totals
// shipped quantity for a product category (school uniform deliveries).
func (h *StockHandler) CategoryTotal(c *gin.Context) {
	category := c.Param("category")

	total, err := h.service.CategoryOutputTotal(c.Request.Context(), category)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.CategoryTotalResponse{Category: category, Total: total})
}
