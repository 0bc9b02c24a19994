package finance

import (
	"context"
	"time"
)

// ListFilter narrows expense listings.
type ListFilter struct {
	Category Category
	FromDate time.Time
	ToDate   time.Time
	Limit    int
	Offset   int
}

// Repository persists expenses. No update or delete: the expense log is
// append-only.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	List(ctx context.Context, filter ListFilter) ([]*Expense, error)
}
