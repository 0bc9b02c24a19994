package localstore

import (
	"context"
	"sort"
	"strings"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/domain/orders"
)

var _ orders.Repository = (*OrderRepo)(nil)

// OrderRepo implements the order repository on the document store.
type OrderRepo struct {
	store *Store
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) loadAll(ctx context.Context) ([]*orders.Order, error) {
	var list []*orders.Order
	if _, err := r.store.load(ctx, colOrders, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create inserts an order. A code collision yields a DUPLICATE_ENTRY error.
func (r *OrderRepo) Create(ctx context.Context, o *orders.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	list, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for _, existing := range list {
		if existing.Code == o.Code {
			return apperror.NewDuplicate("order", "code", o.Code)
		}
	}
	list = append(list, o)
	return r.store.save(ctx, colOrders, list)
}

// GetByID retrieves an order.
func (r *OrderRepo) GetByID(ctx context.Context, orderID id.ID) (*orders.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	list, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.ID == orderID {
			return o, nil
		}
	}
	return nil, apperror.NewNotFound("order", orderID.String())
}

// GetByCode retrieves an order by short code.
func (r *OrderRepo) GetByCode(ctx context.Context, code string) (*orders.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	list, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.Code == code {
			return o, nil
		}
	}
	return nil, apperror.NewNotFound("order", code)
}

// UpdateStatus assigns a new status.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	list, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for _, o := range list {
		if o.ID == orderID {
			o.Status = status
			o.Version++
			return r.store.save(ctx, colOrders, list)
		}
	}
	return apperror.NewNotFound("order", orderID.String())
}

// List retrieves orders with filtering, newest first.
func (r *OrderRepo) List(ctx context.Context, filter orders.ListFilter) ([]*orders.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	list, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*orders.Order, 0, len(list))
	for _, o := range list {
		if !matchesOrder(o, filter) {
			continue
		}
		result = append(result, o)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return paginate(result, filter.Limit, filter.Offset), nil
}

func matchesOrder(o *orders.Order, filter orders.ListFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(o.Code), needle) &&
			!strings.Contains(strings.ToLower(o.ClientName), needle) {
			return false
		}
	}
	if filter.Status != "" && o.Status != filter.Status {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, s := range filter.Statuses {
			if o.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.ClientID != nil && o.ClientID != *filter.ClientID {
		return false
	}
	if filter.FromDate != nil && o.CreatedAt.Before(*filter.FromDate) {
		return false
	}
	if filter.ToDate != nil && !o.CreatedAt.Before(*filter.ToDate) {
		return false
	}
	return true
}
