package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stylos/internal/domain/finance"
)

var expenseCols = []string{
	"id", "description", "amount", "category", "date", "created_at",
}

var _ finance.Repository = (*ExpenseRepo)(nil)

// ExpenseRepo persists the append-only expense log.
type ExpenseRepo struct {
	txManager *TxManager
}

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(txManager *TxManager) *ExpenseRepo {
	return &ExpenseRepo{txManager: txManager}
}

// Create inserts an expense.
func (r *ExpenseRepo) Create(ctx context.Context, e *finance.Expense) error {
	q := builder().
		Insert("expenses").
		Columns(expenseCols...).
		Values(e.ID, e.Description, e.Amount, e.Category, e.Date, e.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// List retrieves expenses, newest first.
func (r *ExpenseRepo) List(ctx context.Context, filter finance.ListFilter) ([]*finance.Expense, error) {
	q := builder().
		Select(expenseCols...).
		From("expenses").
		OrderBy("date DESC")

	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if !filter.FromDate.IsZero() {
		q = q.Where(squirrel.GtOrEq{"date": filter.FromDate})
	}
	if !filter.ToDate.IsZero() {
		q = q.Where(squirrel.Lt{"date": filter.ToDate})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var expenses []*finance.Expense
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &expenses, sql, args...); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}
