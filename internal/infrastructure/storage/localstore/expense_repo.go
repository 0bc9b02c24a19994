package localstore

import (
	"context"
	"sort"

	"stylos/internal/domain/finance"
)

var _ finance.Repository = (*ExpenseRepo)(nil)

// ExpenseRepo implements the expense log on the document store.
type ExpenseRepo struct {
	store *Store
}

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(store *Store) *ExpenseRepo {
	return &ExpenseRepo{store: store}
}

// Create appends an expense.
func (r *ExpenseRepo) Create(ctx context.Context, e *finance.Expense) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var expenses []*finance.Expense
	if _, err := r.store.load(ctx, colExpenses, &expenses); err != nil {
		return err
	}
	expenses = append(expenses, e)
	return r.store.save(ctx, colExpenses, expenses)
}

// List retrieves expenses, newest first.
func (r *ExpenseRepo) List(ctx context.Context, filter finance.ListFilter) ([]*finance.Expense, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var expenses []*finance.Expense
	if _, err := r.store.load(ctx, colExpenses, &expenses); err != nil {
		return nil, err
	}

	result := make([]*finance.Expense, 0, len(expenses))
	for _, e := range expenses {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if !filter.FromDate.IsZero() && e.Date.Before(filter.FromDate) {
			continue
		}
		if !filter.ToDate.IsZero() && !e.Date.Before(filter.ToDate) {
			continue
		}
		result = append(result, e)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return paginate(result, filter.Limit, filter.Offset), nil
}
