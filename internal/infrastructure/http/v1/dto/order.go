package dto

import (
	"time"

	"stylos/internal/core/types"
	"stylos/internal/domain/orders"
)

// OrderItemRequest is an item in an order submission.
type OrderItemRequest struct {
	ProductID string       `json:"productId" binding:"required"`
	Size      string       `json:"size"`
	Color     string       `json:"color"`
	Quantity  int          `json:"quantity" binding:"required"`
	UnitPrice *types.Money `json:"unitPrice"`
}

// OrderRequest creates an order.
type OrderRequest struct {
	ClientID      string             `json:"clientId"`
	ClientName    string             `json:"clientName" binding:"required"`
	ClientPhone   string             `json:"clientPhone"`
	ClientCity    string             `json:"clientCity"`
	DeliveryDate  time.Time          `json:"deliveryDate" binding:"required"`
	PaymentMethod string             `json:"paymentMethod" binding:"required"`
	Notes         string             `json:"notes"`
	Items         []OrderItemRequest `json:"items" binding:"required"`
}

// StatusRequest assigns an order status.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is an order line in API responses.
type OrderItemResponse struct {
	ProductID   string      `json:"productId"`
	VariantID   string      `json:"variantId,omitempty"`
	ProductName string      `json:"productName"`
	Size        string      `json:"size"`
	Color       string      `json:"color"`
	Quantity    int         `json:"quantity"`
	UnitPrice   types.Money `json:"unitPrice"`
	Subtotal    types.Money `json:"subtotal"`
}

// OrderResponse is an order in API responses. CostTotal is omitted for
// non-admin callers.
type OrderResponse struct {
	ID            string              `json:"id"`
	Code          string              `json:"code"`
	ClientID      string              `json:"clientId"`
	ClientName    string              `json:"clientName"`
	ClientPhone   string              `json:"clientPhone,omitempty"`
	ClientCity    string              `json:"clientCity,omitempty"`
	Date          time.Time           `json:"date"`
	DeliveryDate  time.Time           `json:"deliveryDate"`
	Status        string              `json:"status"`
	Total         types.Money         `json:"total"`
	CostTotal     *types.Money        `json:"costTotal,omitempty"`
	PaymentMethod string              `json:"paymentMethod"`
	Notes         string              `json:"notes,omitempty"`
	Version       int                 `json:"version"`
	Items         []OrderItemResponse `json:"items"`
}

// OrderCreateResponse is the creation result with stock warnings.
type OrderCreateResponse struct {
	Order    OrderResponse         `json:"order"`
	Warnings []orders.StockWarning `json:"stockWarnings,omitempty"`
}

// NewOrderResponse converts an order. includeCost controls costTotal
// redaction.
func NewOrderResponse(o *orders.Order, includeCost bool) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID.String(),
		Code:          o.Code,
		ClientID:      o.ClientID.String(),
		ClientName:    o.ClientName,
		ClientPhone:   o.ClientPhone,
		ClientCity:    o.ClientCity,
		Date:          o.CreatedAt,
		DeliveryDate:  o.DeliveryDate,
		Status:        string(o.Status),
		Total:         o.Total,
		PaymentMethod: string(o.PaymentMethod),
		Notes:         o.Notes,
		Version:       o.Version,
		Items:         make([]OrderItemResponse, 0, len(o.Items)),
	}
	if includeCost {
		cost := o.CostTotal
		resp.CostTotal = &cost
	}
	for i := range o.Items {
		item := &o.Items[i]
		ir := OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Size:        item.Size,
			Color:       item.Color,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
		if item.VariantID != nil {
			ir.VariantID = item.VariantID.String()
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}

// NewOrderListResponse converts an order list.
func NewOrderListResponse(list []*orders.Order, includeCost bool) ListResponse[OrderResponse] {
	items := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, NewOrderResponse(o, includeCost))
	}
	return NewListResponse(items)
}
