package localstore

import (
	"context"
	"sort"
	"strings"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/domain/catalog/product"
)

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements the product repository on the document store.
type ProductRepo struct {
	store *Store
}

// NewProductRepo creates a new product repository.
func NewProductRepo(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) loadAll(ctx context.Context) ([]*product.Product, error) {
	var products []*product.Product
	if _, err := r.store.load(ctx, colProducts, &products); err != nil {
		return nil, err
	}
	// Variant keys are not serialized; rebuild the lookup index.
	for _, p := range products {
		p.BuildIndex()
	}
	return products, nil
}

// Create inserts a product.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	products = append(products, p)
	return r.store.save(ctx, colProducts, products)
}

// Update replaces a product with optimistic locking.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for i, existing := range products {
		if existing.ID != p.ID {
			continue
		}
		if existing.Version != p.Version {
			return apperror.NewConcurrentModification("product", p.ID.String())
		}
		p.Version++
		products[i] = p
		return r.store.save(ctx, colProducts, products)
	}
	return apperror.NewNotFound("product", p.ID.String())
}

// GetByID retrieves a product.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == productID {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", productID.String())
}

// List retrieves products with filtering, name ascending.
func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*product.Product, 0, len(products))
	for _, p := range products {
		if !matchesProduct(p, filter) {
			continue
		}
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return paginate(result, filter.Limit, filter.Offset), nil
}

func matchesProduct(p *product.Product, filter product.ListFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if filter.Category != "" && p.Category != filter.Category {
		return false
	}
	if len(filter.Categories) > 0 {
		found := false
		for _, c := range filter.Categories {
			if p.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Status != "" && p.Status != filter.Status {
		return false
	}
	return true
}

// paginate applies limit/offset to a slice in place.
func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
