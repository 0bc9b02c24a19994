package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylos/internal/core/id"
	"stylos/internal/domain/orders"
	"stylos/internal/infrastructure/http/v1/dto"
)

// OrderHandler handles HTTP requests for customer orders.
type OrderHandler struct {
	*BaseHandler
	service *orders.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, service *orders.Service) *OrderHandler {
	return &OrderHandler{BaseHandler: base, service: service}
}

// Create handles POST /orders. Stock shortfalls come back as warnings
// alongside the created order, not as errors.
func (h *OrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in := orders.CreateInput{
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientCity:    req.ClientCity,
		DeliveryDate:  req.DeliveryDate,
		PaymentMethod: orders.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
		Items:         make([]orders.ItemInput, 0, len(req.Items)),
	}
	if req.ClientID != "" {
		parsed, err := id.Parse(req.ClientID)
		if err != nil {
			h.Error(c, invalidField("clientId"))
			return
		}
		in.ClientID = parsed
	}
	for _, item := range req.Items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			h.Error(c, invalidField("items.productId"))
			return
		}
		itemInput := orders.ItemInput{
			ProductID: productID,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		in.Items = append(in.Items, itemInput)
	}

	result, err := h.service.Create(ctx, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OrderCreateResponse{
		Order:    dto.NewOrderResponse(result.Order, h.IsAdmin(c)),
		Warnings: result.Warnings,
	})
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewOrderResponse(o, h.IsAdmin(c)))
}

// GetByCode handles GET /orders/code/:code.
func (h *OrderHandler) GetByCode(c *gin.Context) {
	o, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewOrderResponse(o, h.IsAdmin(c)))
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	filter := orders.ListFilter{
		Search:   c.Query("search"),
		Status:   orders.Status(c.Query("status")),
		FromDate: h.ParseTimeQuery(c, "fromDate"),
		ToDate:   h.ParseTimeQuery(c, "toDate"),
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}
	if statuses, ok := c.GetQueryArray("statuses"); ok {
		for _, s := range statuses {
			filter.Statuses = append(filter.Statuses, orders.Status(s))
		}
	}
	if clientID := c.Query("clientId"); clientID != "" {
		if parsed, err := id.Parse(clientID); err == nil {
			filter.ClientID = &parsed
		}
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewOrderListResponse(list, h.IsAdmin(c)))
}

// Advance handles POST /orders/:id/advance. Moves the order to the next
// pipeline stage.
func (h *OrderHandler) Advance(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	o, err := h.service.Advance(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewOrderResponse(o, h.IsAdmin(c)))
}

// Cancel handles POST /orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	o, err := h.service.Cancel(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewOrderResponse(o, h.IsAdmin(c)))
}

// SetStatus handles PUT /orders/:id/status. Admin-only direct status
// assignment, bypassing the pipeline chain.
func (h *OrderHandler) SetStatus(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.StatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.service.SetStatus(c.Request.Context(), orderID, orders.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewOrderResponse(o, h.IsAdmin(c)))
}
