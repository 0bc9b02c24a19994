// Package product provides the Product catalog with size/color variants.
// Stock is tracked per variant; the counter itself is mutated only through
// the stock ledger (internal/domain/stock).
package product

import (
	"context"
	"strings"
	"time"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/types"
)

// Status defines whether a product is offered for sale.
type Status string

const (
	StatusActive   Status = "ATIVO"
	StatusInactive Status = "INATIVO"
)

// Categories is the fixed product category list.
var Categories = []string{
	"Camisa",
	"Calças de Escola",
	"Jaqueta",
	"Calças de brim",
	"Camisas Dry Fit",
	"Sublimação total",
	"Acessórios",
}

// ShirtModels are the garment cuts available for the shirt category.
var ShirtModels = []string{"Polo", "Gola Redonda"}

// Variant is a size/color/model combination of a Product, the unit at which
// stock is tracked. Owned exclusively by its product.
type Variant struct {
	ID        id.ID  `db:"id" json:"id"`
	ProductID id.ID  `db:"product_id" json:"productId"`
	Size      string `db:"size" json:"size"`
	Color     string `db:"color" json:"color"`
	Stock     int    `db:"stock" json:"stock"`
	SKU       string `db:"sku" json:"sku"`
	Model     string `db:"model" json:"model,omitempty"`

	// Key is the normalized (size, color) lookup key, computed once at
	// creation time so order entry resolves variants without a
	// case-sensitive linear scan.
	Key string `db:"variant_key" json:"-"`
}

// VariantKey normalizes a (size, color) pair into the composite lookup key.
func VariantKey(size, color string) string {
	return strings.ToLower(strings.TrimSpace(size)) + "|" + strings.ToLower(strings.TrimSpace(color))
}

// NewVariant creates a variant with its lookup key precomputed.
func NewVariant(productID id.ID, size, color string, stock int, sku, model string) Variant {
	return Variant{
		ID:        id.New(),
		ProductID: productID,
		Size:      size,
		Color:     color,
		Stock:     stock,
		SKU:       sku,
		Model:     model,
		Key:       VariantKey(size, color),
	}
}

// Product represents a catalog item with its variants.
type Product struct {
	ID          id.ID       `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	Category    string      `db:"category" json:"category"`
	Description string      `db:"description" json:"description,omitempty"`
	Price       types.Money `db:"price" json:"price"`
	Cost        types.Money `db:"cost" json:"cost"` // sensitive: admin-only in API responses
	MinStock    int         `db:"min_stock" json:"minStock"`
	Image       string      `db:"image" json:"image,omitempty"`
	Status      Status      `db:"status" json:"status"`
	Version     int         `db:"version" json:"version"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`

	Variants []Variant `db:"-" json:"variants"`

	// index maps normalized variant keys to positions in Variants.
	index map[string]int
}

// New creates a product with generated ID and timestamps.
func New(name, category string) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:        id.New(),
		Name:      name,
		Category:  category,
		Status:    StatusActive,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// AddVariant appends a variant and keeps the lookup index current.
func (p *Product) AddVariant(size, color string, stock int, sku, model string) *Variant {
	v := NewVariant(p.ID, size, color, stock, sku, model)
	p.Variants = append(p.Variants, v)
	if p.index != nil {
		p.index[v.Key] = len(p.Variants) - 1
	}
	return &p.Variants[len(p.Variants)-1]
}

// BuildIndex recomputes the normalized variant lookup map. Repositories call
// it after loading variants; later duplicates of a key win, matching last
// write semantics of the catalog.
func (p *Product) BuildIndex() {
	p.index = make(map[string]int, len(p.Variants))
	for i := range p.Variants {
		if p.Variants[i].Key == "" {
			p.Variants[i].Key = VariantKey(p.Variants[i].Size, p.Variants[i].Color)
		}
		p.index[p.Variants[i].Key] = i
	}
}

// FindVariant resolves a variant by normalized (size, color) key.
// Returns nil when no variant matches.
func (p *Product) FindVariant(size, color string) *Variant {
	if p.index == nil {
		p.BuildIndex()
	}
	if i, ok := p.index[VariantKey(size, color)]; ok {
		return &p.Variants[i]
	}
	return nil
}

// VariantByID resolves a variant within this product.
func (p *Product) VariantByID(variantID id.ID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

// TotalStock sums stock across all variants.
func (p *Product) TotalStock() int {
	total := 0
	for i := range p.Variants {
		total += p.Variants[i].Stock
	}
	return total
}

// IsLowStock reports whether any variant sits at or under the reorder threshold.
func (p *Product) IsLowStock() bool {
	for i := range p.Variants {
		if p.Variants[i].Stock <= p.MinStock {
			return true
		}
	}
	return false
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.Category == "" {
		return apperror.NewValidation("category is required").
			WithDetail("field", "category")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}
	if p.Cost.IsNegative() {
		return apperror.NewValidation("cost must not be negative").
			WithDetail("field", "cost")
	}
	if p.MinStock < 0 {
		return apperror.NewValidation("minStock must not be negative").
			WithDetail("field", "minStock")
	}
	if p.Status != StatusActive && p.Status != StatusInactive {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}

	seen := make(map[string]int, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.Size == "" || v.Color == "" {
			return apperror.NewValidation("variant size and color are required").
				WithDetail("field", "variants").
				WithDetail("index", i)
		}
		if v.Stock < 0 {
			return apperror.NewValidation("variant stock must not be negative").
				WithDetail("field", "variants").
				WithDetail("index", i)
		}
		key := VariantKey(v.Size, v.Color)
		if prev, dup := seen[key]; dup {
			return apperror.NewValidation("duplicate variant size/color combination").
				WithDetail("field", "variants").
				WithDetail("index", i).
				WithDetail("conflictsWith", prev)
		}
		seen[key] = i
	}

	return nil
}
