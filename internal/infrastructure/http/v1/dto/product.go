package dto

import (
	"stylos/internal/core/types"
	"stylos/internal/domain/catalog/product"
)

// VariantRequest is a variant in a product submission. ID is set on
// updates to keep an existing variant; new variants leave it empty.
type VariantRequest struct {
	ID    string `json:"id"`
	Size  string `json:"size" binding:"required"`
	Color string `json:"color" binding:"required"`
	Stock int    `json:"stock"`
	SKU   string `json:"sku"`
	Model string `json:"model"`
}

// ProductRequest creates or updates a product.
type ProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Description string           `json:"description"`
	Price       types.Money      `json:"price"`
	Cost        types.Money      `json:"cost"`
	MinStock    int              `json:"minStock"`
	Image       string           `json:"image"`
	Status      string           `json:"status"`
	Version     int              `json:"version"`
	Variants    []VariantRequest `json:"variants"`
}

// VariantResponse is a variant in API responses.
type VariantResponse struct {
	ID    string `json:"id"`
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
	SKU   string `json:"sku"`
	Model string `json:"model,omitempty"`
}

// ProductResponse is a product in API responses. Cost is omitted for
// non-admin callers.
type ProductResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Description string            `json:"description,omitempty"`
	Price       types.Money       `json:"price"`
	Cost        *types.Money      `json:"cost,omitempty"`
	MinStock    int               `json:"minStock"`
	Image       string            `json:"image,omitempty"`
	Status      string            `json:"status"`
	Version     int               `json:"version"`
	LowStock    bool              `json:"lowStock"`
	TotalStock  int               `json:"totalStock"`
	Variants    []VariantResponse `json:"variants"`
}

// NewProductResponse converts a product. includeCost controls cost
// redaction.
func NewProductResponse(p *product.Product, includeCost bool) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		MinStock:    p.MinStock,
		Image:       p.Image,
		Status:      string(p.Status),
		Version:     p.Version,
		LowStock:    p.IsLowStock(),
		TotalStock:  p.TotalStock(),
		Variants:    make([]VariantResponse, 0, len(p.Variants)),
	}
	if includeCost {
		cost := p.Cost
		resp.Cost = &cost
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		resp.Variants = append(resp.Variants, VariantResponse{
			ID:    v.ID.String(),
			Size:  v.Size,
			Color: v.Color,
			Stock: v.Stock,
			SKU:   v.SKU,
			Model: v.Model,
		})
	}
	return resp
}

// NewProductListResponse converts a product list.
func NewProductListResponse(products []*product.Product, includeCost bool) ListResponse[ProductResponse] {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, NewProductResponse(p, includeCost))
	}
	return NewListResponse(items)
}
