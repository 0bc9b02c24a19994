package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/domain/stock"
)

var movementCols = []string{
	"id", "type", "reason", "product_id", "variant_id", "direction",
	"product_name", "category", "size", "color", "model", "quantity",
	"created_at", "actor_id", "reference_id", "client_name",
	"unit_value", "total_value",
}

var _ stock.Repository = (*StockRepo)(nil)

// StockRepo persists the movement ledger and owns the variant stock counter.
type StockRepo struct {
	txManager *TxManager
}

// NewStockRepo creates a new stock repository.
func NewStockRepo(txManager *TxManager) *StockRepo {
	return &StockRepo{txManager: txManager}
}

// ApplyDelta adjusts the variant stock counter atomically. The WHERE clause
// guards the balance, so two racing withdrawals cannot both pass the check.
func (r *StockRepo) ApplyDelta(ctx context.Context, variantID id.ID, delta int) (int, error) {
	querier := r.txManager.GetQuerier(ctx)

	sql := `
		UPDATE product_variants
		SET stock = stock + $2
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING stock
	`

	var newStock int
	err := querier.QueryRow(ctx, sql, variantID, delta).Scan(&newStock)
	if err == nil {
		return newStock, nil
	}
	if err != pgx.ErrNoRows {
		return 0, fmt.Errorf("apply stock delta: %w", err)
	}

	// Guarded update matched nothing: either the variant is missing or the
	// balance is insufficient.
	var available int
	err = querier.QueryRow(ctx, "SELECT stock FROM product_variants WHERE id = $1", variantID).Scan(&available)
	if err == pgx.ErrNoRows {
		return 0, apperror.NewNotFound("variant", variantID.String())
	}
	if err != nil {
		return 0, fmt.Errorf("read variant stock: %w", err)
	}

	return 0, apperror.NewInsufficientStock(variantID.String(), -delta, available)
}

// Append inserts a movement record.
func (r *StockRepo) Append(ctx context.Context, m *stock.Movement) error {
	q := builder().
		Insert("stock_movements").
		Columns(movementCols...).
		Values(m.ID, m.Type, m.Reason, m.ProductID, m.VariantID, m.Direction,
			m.ProductName, m.Category, m.Size, m.Color, m.Model, m.Quantity,
			m.CreatedAt, m.ActorID, m.ReferenceID, m.ClientName,
			m.UnitValue, m.TotalValue)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List retrieves movement history, newest first.
func (r *StockRepo) List(ctx context.Context, filter stock.MovementFilter) ([]stock.Movement, error) {
	q := builder().
		Select(movementCols...).
		From("stock_movements").
		OrderBy("created_at DESC")

	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Reason != "" {
		q = q.Where(squirrel.Eq{"reason": filter.Reason})
	}
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.VariantID != nil {
		q = q.Where(squirrel.Eq{"variant_id": *filter.VariantID})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.Lt{"created_at": *filter.ToDate})
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

	var movements []stock.Movement
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}
