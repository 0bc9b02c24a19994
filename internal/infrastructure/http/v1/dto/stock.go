package dto

import (
	"stylos/internal/core/id"
	"stylos/internal/core/types"
	"stylos/internal/domain/stock"
)

// MovementRequest records a stock movement.
type MovementRequest struct {
	Type      string `json:"type" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Direction string `json:"direction"`
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`

	ReferenceID string       `json:"referenceId"`
	ClientName  string       `json:"clientName"`
	Model       string       `json:"model"`
	UnitValue   *types.Money `json:"unitValue"`
	TotalValue  *types.Money `json:"totalValue"`
}

// ToInput converts the request into a service input.
func (r MovementRequest) ToInput(productID, variantID id.ID) stock.MovementInput {
	return stock.MovementInput{
		Type:        stock.MovementType(r.Type),
		Reason:      r.Reason,
		Direction:   stock.Direction(r.Direction),
		ProductID:   productID,
		VariantID:   variantID,
		Quantity:    r.Quantity,
		ReferenceID: r.ReferenceID,
		ClientName:  r.ClientName,
		Model:       r.Model,
		UnitValue:   r.UnitValue,
		TotalValue:  r.TotalValue,
	}
}

// CategoryTotalResponse is the aggregate output quantity for a product
// category.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
}
