package stock

import (
	"context"
	"time"

	"stylos/internal/core/id"
)

// MovementFilter contains filtering options for movement history.
type MovementFilter struct {
	Type      MovementType
	Reason    string
	Category  string
	ProductID *id.ID
	VariantID *id.ID
	FromDate  *time.Time
	ToDate    *time.Time

	Limit  int
	Offset int
}

// Repository defines persistence for the ledger. ApplyDelta must be atomic
// with respect to concurrent callers: the counter may never go negative, and
// two racing withdrawals must not both observe the same balance
// (conditional update at the storage layer, or a single writer).
type Repository interface {
	// ApplyDelta adjusts the variant's stock counter by delta (positive or
	// negative) and returns the resulting stock. When the adjustment would
	// drive the counter negative it returns an INSUFFICIENT_STOCK error
	// carrying the available quantity, without mutating anything. Unknown
	// variants yield NOT_FOUND.
	ApplyDelta(ctx context.Context, variantID id.ID, delta int) (int, error)

	// Append inserts an immutable movement record.
	Append(ctx context.Context, m *Movement) error

	// List retrieves movement history, newest first.
	List(ctx context.Context, filter MovementFilter) ([]Movement, error)
}
