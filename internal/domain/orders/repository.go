package orders

import (
	"context"
	"time"

	"stylos/internal/core/id"
)

// ListFilter contains filtering options for order listings.
type ListFilter struct {
	// Search matches against code and client name
	Search string

	Status   Status
	Statuses []Status
	ClientID *id.ID
	FromDate *time.Time
	ToDate   *time.Time

	Limit  int
	Offset int
}

// Repository defines persistence for orders and their embedded items.
type Repository interface {
	// Create persists the order with its items. A code collision yields a
	// DUPLICATE_ENTRY error; the service retries with a fresh code.
	Create(ctx context.Context, o *Order) error

	GetByID(ctx context.Context, orderID id.ID) (*Order, error)
	GetByCode(ctx context.Context, code string) (*Order, error)

	// UpdateStatus persists a status value directly.
	UpdateStatus(ctx context.Context, orderID id.ID, status Status) error

	List(ctx context.Context, filter ListFilter) ([]*Order, error)
}
