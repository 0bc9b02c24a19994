package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/domain/catalog/client"
)

var clientCols = []string{
	"id", "name", "type", "document", "email", "phone", "city", "address",
	"version", "created_at", "updated_at",
}

var _ client.Repository = (*ClientRepo)(nil)

// ClientRepo persists clients.
type ClientRepo struct {
	txManager *TxManager
}

// NewClientRepo creates a new client repository.
func NewClientRepo(txManager *TxManager) *ClientRepo {
	return &ClientRepo{txManager: txManager}
}

// Create inserts a client.
func (r *ClientRepo) Create(ctx context.Context, c *client.Client) error {
	q := builder().
		Insert("clients").
		Columns(clientCols...).
		Values(c.ID, c.Name, c.Type, c.Document, c.Email, c.Phone, c.City,
			c.Address, c.Version, c.CreatedAt, c.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// Update modifies a client with optimistic locking.
func (r *ClientRepo) Update(ctx context.Context, c *client.Client) error {
	q := builder().
		Update("clients").
		Set("name", c.Name).
		Set("type", c.Type).
		Set("document", c.Document).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("city", c.City).
		Set("address", c.Address).
		Set("updated_at", c.UpdatedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": c.ID}).
		Where(squirrel.Eq{"version": c.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("client", c.ID.String())
	}
	c.Version++
	return nil
}

// GetByID retrieves a client.
func (r *ClientRepo) GetByID(ctx context.Context, clientID id.ID) (*client.Client, error) {
	q := builder().
		Select(clientCols...).
		From("clients").
		Where(squirrel.Eq{"id": clientID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c := &client.Client{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("client", clientID.String())
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List retrieves clients with filtering, name ascending.
func (r *ClientRepo) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	q := builder().
		Select(clientCols...).
		From("clients").
		OrderBy("name ASC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"document": pattern},
			squirrel.ILike{"city": pattern},
		})
	}
	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"type": filter.Type})
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

	var clients []*client.Client
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &clients, sql, args...); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}
