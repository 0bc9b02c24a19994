package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stylos/internal/domain/finance"
	"stylos/internal/infrastructure/http/v1/dto"
)

// FinanceHandler handles HTTP requests for the expense log and financial
// summary. All routes are admin-only; the router enforces the role.
type FinanceHandler struct {
	*BaseHandler
	service *finance.Service
}

// NewFinanceHandler creates a new finance handler.
func NewFinanceHandler(base *BaseHandler, service *finance.Service) *FinanceHandler {
	return &FinanceHandler{BaseHandler: base, service: service}
}

// RecordExpense handles POST /finance/expenses.
func (h *FinanceHandler) RecordExpense(c *gin.Context) {
	var req dto.ExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	e := finance.New(req.Description, req.Amount, finance.Category(req.Category), date)

	if err := h.service.RecordExpense(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ListExpenses handles GET /finance/expenses.
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	filter := finance.ListFilter{
		Category: finance.Category(c.Query("category")),
		Limit:    h.ParseIntQuery(c, "limit", 100),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}
	if from := h.ParseTimeQuery(c, "fromDate"); from != nil {
		filter.FromDate = *from
	}
	if to := h.ParseTimeQuery(c, "toDate"); to != nil {
		filter.ToDate = *to
	}

	expenses, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(expenses))
}

// Categories handles GET /finance/categories.
func (h *FinanceHandler) Categories(c *gin.Context) {
	h.OK(c, dto.NewListResponse(finance.Categories))
}

// Summary handles GET /finance/summary.
func (h *FinanceHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summarize(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}
