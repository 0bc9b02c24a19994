// Package tx defines the transaction boundary abstraction shared by all
// storage backends.
package tx

import "context"

// Manager runs functions within a storage transaction. Implementations must
// reuse an already-open transaction stored in the context so that nested
// calls share one commit point.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Noop is a Manager for backends without transactions (the local fallback
// store). It simply invokes fn.
type Noop struct{}

// RunInTransaction implements Manager.
func (Noop) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
