package product

import (
	"context"

	"stylos/internal/core/id"
)

// ListFilter contains filtering options for product listings.
type ListFilter struct {
	// Search matches against name and SKU (case-insensitive substring)
	Search string

	// Category restricts to a single category
	Category string

	// Status restricts to ATIVO/INATIVO; empty means all
	Status Status

	// Categories restricts to a category set (school uniform views)
	Categories []string

	Limit  int
	Offset int
}

// Repository defines persistence operations for products and their variants.
// Variant stock counters are excluded here on purpose: they are mutated only
// through the stock ledger repository.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
}
