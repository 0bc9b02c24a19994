package localstore

import (
	"context"
	"sort"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/domain/stock"
)

var _ stock.Repository = (*StockRepo)(nil)

// StockRepo implements the stock ledger on the document store. The store
// mutex makes ApplyDelta a single-writer operation, so the check-then-write
// on the counter is race free.
type StockRepo struct {
	store *Store
}

// NewStockRepo creates a new stock repository.
func NewStockRepo(store *Store) *StockRepo {
	return &StockRepo{store: store}
}

// ApplyDelta adjusts a variant's stock counter under the store lock.
func (r *StockRepo) ApplyDelta(ctx context.Context, variantID id.ID, delta int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var products []*product.Product
	if _, err := r.store.load(ctx, colProducts, &products); err != nil {
		return 0, err
	}

	for _, p := range products {
		for i := range p.Variants {
			v := &p.Variants[i]
			if v.ID != variantID {
				continue
			}
			if v.Stock+delta < 0 {
				return 0, apperror.NewInsufficientStock(variantID.String(), -delta, v.Stock)
			}
			v.Stock += delta
			if err := r.store.save(ctx, colProducts, products); err != nil {
				return 0, err
			}
			return v.Stock, nil
		}
	}
	return 0, apperror.NewNotFound("variant", variantID.String())
}

// Append inserts a movement record.
func (r *StockRepo) Append(ctx context.Context, m *stock.Movement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var movements []stock.Movement
	if _, err := r.store.load(ctx, colMovements, &movements); err != nil {
		return err
	}
	movements = append(movements, *m)
	return r.store.save(ctx, colMovements, movements)
}

// List retrieves movement history, newest first.
func (r *StockRepo) List(ctx context.Context, filter stock.MovementFilter) ([]stock.Movement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var movements []stock.Movement
	if _, err := r.store.load(ctx, colMovements, &movements); err != nil {
		return nil, err
	}

	result := make([]stock.Movement, 0, len(movements))
	for _, m := range movements {
		if !matchesMovement(&m, filter) {
			continue
		}
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return paginate(result, filter.Limit, filter.Offset), nil
}

func matchesMovement(m *stock.Movement, filter stock.MovementFilter) bool {
	if filter.Type != "" && m.Type != filter.Type {
		return false
	}
	if filter.Reason != "" && m.Reason != filter.Reason {
		return false
	}
	if filter.Category != "" && m.Category != filter.Category {
		return false
	}
	if filter.ProductID != nil && m.ProductID != *filter.ProductID {
		return false
	}
	if filter.VariantID != nil && m.VariantID != *filter.VariantID {
		return false
	}
	if filter.FromDate != nil && m.CreatedAt.Before(*filter.FromDate) {
		return false
	}
	if filter.ToDate != nil && !m.CreatedAt.Before(*filter.ToDate) {
		return false
	}
	return true
}
