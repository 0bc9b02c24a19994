package seed

import (
	"context"

	"stylos/internal/core/apperror"
	"stylos/internal/core/tx"
	"stylos/internal/domain/auth"
	"stylos/internal/domain/catalog/client"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/domain/finance"
	"stylos/internal/domain/orders"
)

// Writers groups the create operations the loader writes through. The
// repository types of both storage backends satisfy these directly.
type Writers struct {
	Users    UserWriter
	Clients  ClientWriter
	Products ProductWriter
	Orders   OrderWriter
	Expenses ExpenseWriter
}

type UserWriter interface {
	Create(ctx context.Context, u *auth.User) error
}

type ClientWriter interface {
	Create(ctx context.Context, c *client.Client) error
}

type ProductWriter interface {
	Create(ctx context.Context, p *product.Product) error
}

type OrderWriter interface {
	Create(ctx context.Context, o *orders.Order) error
}

type ExpenseWriter interface {
	Create(ctx context.Context, e *finance.Expense) error
}

// Result summarizes a load run.
type Result struct {
	Created int
	Skipped int
}

// Load inserts the dataset through the writers. Every row runs in its own
// transaction: a duplicate-key conflict only skips that row, so loading
// into an already-seeded database leaves existing rows untouched instead
// of aborting the whole run. Any other error stops the load.
func Load(ctx context.Context, txManager tx.Manager, w Writers, ds *Dataset) (Result, error) {
	var res Result

	insert := func(create func(ctx context.Context) error) error {
		err := txManager.RunInTransaction(ctx, create)
		if apperror.IsDuplicate(err) {
			res.Skipped++
			return nil
		}
		if err != nil {
			return err
		}
		res.Created++
		return nil
	}

	for _, u := range ds.Users {
		if err := insert(func(ctx context.Context) error { return w.Users.Create(ctx, u) }); err != nil {
			return res, err
		}
	}
	for _, c := range ds.Clients {
		if err := insert(func(ctx context.Context) error { return w.Clients.Create(ctx, c) }); err != nil {
			return res, err
		}
	}
	for _, p := range ds.Products {
		if err := insert(func(ctx context.Context) error { return w.Products.Create(ctx, p) }); err != nil {
			return res, err
		}
	}
	for _, o := range ds.Orders {
		if err := insert(func(ctx context.Context) error { return w.Orders.Create(ctx, o) }); err != nil {
			return res, err
		}
	}
	for _, e := range ds.Expenses {
		if err := insert(func(ctx context.Context) error { return w.Expenses.Create(ctx, e) }); err != nil {
			return res, err
		}
	}

	return res, nil
}
