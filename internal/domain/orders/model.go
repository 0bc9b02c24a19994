// Package orders provides the customer order document and its fulfillment
// pipeline (NOVO → CORTE → PINTURA → COSTURA → PRONTO → ENTREGUE).
package orders

import (
	"context"
	"time"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/types"
)

// Status is a fulfillment pipeline stage.
type Status string

const (
	StatusNew       Status = "NOVO"
	StatusCutting   Status = "CORTE"
	StatusPainting  Status = "PINTURA"
	StatusSewing    Status = "COSTURA"
	StatusReady     Status = "PRONTO"
	StatusDelivered Status = "ENTREGUE"
	StatusCancelled Status = "CANCELADO"
)

// successor is the fixed linear chain. Terminal states have no entry.
var successor = map[Status]Status{
	StatusNew:      StatusCutting,
	StatusCutting:  StatusPainting,
	StatusPainting: StatusSewing,
	StatusSewing:   StatusReady,
	StatusReady:    StatusDelivered,
}

// NextStatus returns the unique successor of a status and whether one
// exists. ENTREGUE and CANCELADO are terminal.
func NextStatus(s Status) (Status, bool) {
	next, ok := successor[s]
	return next, ok
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(s Status) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ValidStatus reports whether s is a known pipeline stage.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusCutting, StatusPainting, StatusSewing,
		StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// InProduction reports whether the order sits on the factory floor.
func InProduction(s Status) bool {
	return s == StatusCutting || s == StatusPainting || s == StatusSewing
}

// PaymentMethod is the agreed payment channel.
type PaymentMethod string

const (
	PaymentPix     PaymentMethod = "PIX"
	PaymentCard    PaymentMethod = "CARTAO"
	PaymentCash    PaymentMethod = "DINHEIRO"
	PaymentInvoice PaymentMethod = "BOLETO"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentPix, PaymentCard, PaymentCash, PaymentInvoice:
		return true
	}
	return false
}

// Item is an order line. Embedded in its order, not independently
// addressable. Subtotal always equals Quantity × UnitPrice; construct items
// through NewItem to keep that invariant.
type Item struct {
	ProductID id.ID  `db:"product_id" json:"productId"`
	VariantID *id.ID `db:"variant_id" json:"variantId,omitempty"`

	// Denormalized at submission time
	ProductName string `db:"product_name" json:"productName"`
	Size        string `db:"size" json:"size"`
	Color       string `db:"color" json:"color"`

	Quantity  int         `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Subtotal  types.Money `db:"subtotal" json:"subtotal"`
}

// NewItem builds an order line with the subtotal computed.
func NewItem(productID id.ID, variantID *id.ID, productName, size, color string, quantity int, unitPrice types.Money) Item {
	return Item{
		ProductID:   productID,
		VariantID:   variantID,
		ProductName: productName,
		Size:        size,
		Color:       color,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    types.MulInt(unitPrice, quantity),
	}
}

// Order is a customer order. The item list is immutable after creation;
// only the status moves.
type Order struct {
	ID   id.ID  `db:"id" json:"id"`
	Code string `db:"code" json:"code"` // short label/reference token

	ClientID    id.ID  `db:"client_id" json:"clientId"`
	ClientName  string `db:"client_name" json:"clientName"`
	ClientPhone string `db:"client_phone" json:"clientPhone,omitempty"`
	ClientCity  string `db:"client_city" json:"clientCity,omitempty"`

	CreatedAt    time.Time `db:"created_at" json:"date"`
	DeliveryDate time.Time `db:"delivery_date" json:"deliveryDate"`

	Status Status `db:"status" json:"status"`

	Total     types.Money `db:"total" json:"total"`
	CostTotal types.Money `db:"cost_total" json:"costTotal"` // sensitive: admin-only in API responses

	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	Version       int           `db:"version" json:"version"`

	Items []Item `db:"-" json:"items"`
}

// RecalculateTotals recomputes Total from item subtotals. CostTotal is
// computed by the service from current product costs at submission time.
func (o *Order) RecalculateTotals() {
	total := types.Zero()
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal)
	}
	o.Total = total
}

// Validate checks order invariants.
func (o *Order) Validate(ctx context.Context) error {
	if o.ClientName == "" {
		return apperror.NewValidation("client name is required").
			WithDetail("field", "clientName")
	}
	if o.DeliveryDate.IsZero() {
		return apperror.NewValidation("delivery date is required").
			WithDetail("field", "deliveryDate")
	}
	if len(o.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}
	if !ValidPaymentMethod(o.PaymentMethod) {
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "paymentMethod").
			WithDetail("value", string(o.PaymentMethod))
	}
	for i := range o.Items {
		item := &o.Items[i]
		if id.IsNil(item.ProductID) {
			return apperror.NewValidation("item product is required").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("item quantity must be positive").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
		if !item.Subtotal.Equal(types.MulInt(item.UnitPrice, item.Quantity)) {
			return apperror.NewValidation("item subtotal must equal quantity times unit price").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
	}
	return nil
}
