// Package stock provides the stock movement ledger. Every change to a
// variant's stock counter flows through here and leaves an immutable
// movement record behind.
package stock

import (
	"time"

	"stylos/internal/core/id"
	"stylos/internal/core/types"
)

// MovementType defines the direction of a stock movement.
type MovementType string

const (
	TypeEntry      MovementType = "ENTRADA"
	TypeOutput     MovementType = "SAIDA"
	TypeAdjustment MovementType = "AJUSTE"
)

// Direction carries the explicit sign of an AJUSTE movement. ENTRADA and
// SAIDA imply their own direction.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Entry reasons (ENTRADA).
const (
	ReasonPurchase   = "COMPRA"
	ReasonProduction = "PRODUCAO"
	ReasonReturn     = "DEVOLUCAO"
)

// Output reasons (SAIDA).
const (
	ReasonOrder          = "PEDIDO"
	ReasonManual         = "MANUAL" // loss, sample, etc.
	ReasonSchoolDelivery = "ENTREGA_ESCOLAR"
)

// entryReasons and outputReasons are the valid reason sets per type.
var (
	entryReasons  = map[string]bool{ReasonPurchase: true, ReasonProduction: true, ReasonReturn: true}
	outputReasons = map[string]bool{ReasonOrder: true, ReasonManual: true, ReasonSchoolDelivery: true}
)

// ValidReason reports whether reason is acceptable for the movement type.
// AJUSTE accepts any non-empty reason.
func ValidReason(t MovementType, reason string) bool {
	switch t {
	case TypeEntry:
		return entryReasons[reason]
	case TypeOutput:
		return outputReasons[reason]
	case TypeAdjustment:
		return reason != ""
	}
	return false
}

// Movement is an append-only ledger entry. Never mutated or deleted after
// creation.
type Movement struct {
	ID        id.ID        `db:"id" json:"id"`
	Type      MovementType `db:"type" json:"type"`
	Reason    string       `db:"reason" json:"reason"`
	ProductID id.ID        `db:"product_id" json:"productId"`
	VariantID id.ID        `db:"variant_id" json:"variantId"`

	// Direction is set for AJUSTE movements only; ENTRADA/SAIDA carry an
	// implicit direction.
	Direction Direction `db:"direction" json:"direction,omitempty"`

	// Denormalized fields captured at record time
	ProductName string `db:"product_name" json:"productName"`
	Category    string `db:"category" json:"category"`
	Size        string `db:"size" json:"size"`
	Color       string `db:"color" json:"color"`
	Model       string `db:"model" json:"model,omitempty"`

	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"date"`

	// ActorID is the authenticated user who recorded the movement
	ActorID string `db:"actor_id" json:"userId"`

	// ReferenceID links to an order code or purchase id
	ReferenceID string `db:"reference_id" json:"referenceId,omitempty"`

	// ClientName is set for school deliveries and order withdrawals
	ClientName string `db:"client_name" json:"clientName,omitempty"`

	UnitValue  *types.Money `db:"unit_value" json:"unitValue,omitempty"`
	TotalValue *types.Money `db:"total_value" json:"totalValue,omitempty"`
}

// SignedQuantity returns the delta this movement applies to the stock
// counter. Quantity itself is always positive.
func (m *Movement) SignedQuantity() int {
	switch {
	case m.Type == TypeOutput:
		return -m.Quantity
	case m.Type == TypeAdjustment && m.Direction == DirectionOut:
		return -m.Quantity
	default:
		return m.Quantity
	}
}
