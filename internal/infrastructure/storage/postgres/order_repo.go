package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/domain/orders"
)

var orderCols = []string{
	"id", "code", "client_id", "client_name", "client_phone", "client_city",
	"created_at", "delivery_date", "status", "total", "cost_total",
	"payment_method", "notes", "version",
}

var orderItemCols = []string{
	"order_id", "position", "product_id", "variant_id", "product_name",
	"size", "color", "quantity", "unit_price", "subtotal",
}

var _ orders.Repository = (*OrderRepo)(nil)

// OrderRepo persists orders and their items.
type OrderRepo struct {
	txManager *TxManager
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txManager *TxManager) *OrderRepo {
	return &OrderRepo{txManager: txManager}
}

// Create inserts an order with its items. A code collision surfaces as a
// DUPLICATE_ENTRY error so the caller can regenerate and retry.
func (r *OrderRepo) Create(ctx context.Context, o *orders.Order) error {
	q := builder().
		Insert("orders").
		Columns(orderCols...).
		Values(o.ID, o.Code, o.ClientID, o.ClientName, o.ClientPhone, o.ClientCity,
			o.CreatedAt, o.DeliveryDate, o.Status, o.Total, o.CostTotal,
			o.PaymentMethod, o.Notes, o.Version)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("order", "code", o.Code).WithCause(err)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	iq := builder().
		Insert("order_items").
		Columns(orderItemCols...)
	for i := range o.Items {
		item := &o.Items[i]
		iq = iq.Values(o.ID, i, item.ProductID, item.VariantID, item.ProductName,
			item.Size, item.Color, item.Quantity, item.UnitPrice, item.Subtotal)
	}

	sql, args, err = iq.ToSql()
	if err != nil {
		return fmt.Errorf("build item insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}

	return nil
}

// GetByID retrieves an order with items.
func (r *OrderRepo) GetByID(ctx context.Context, orderID id.ID) (*orders.Order, error) {
	return r.getOne(ctx, squirrel.Eq{"id": orderID}, orderID.String())
}

// GetByCode retrieves an order by short code.
func (r *OrderRepo) GetByCode(ctx context.Context, code string) (*orders.Order, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code}, code)
}

func (r *OrderRepo) getOne(ctx context.Context, cond squirrel.Eq, label string) (*orders.Order, error) {
	q := builder().
		Select(orderCols...).
		From("orders").
		Where(cond).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	o := &orders.Order{}
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("order", label)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := r.loadItems(ctx, []*orders.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus assigns a new status.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error {
	q := builder().
		Update("orders").
		Set("status", status).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": orderID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("order", orderID.String())
	}
	return nil
}

// List retrieves orders with filtering, newest first.
func (r *OrderRepo) List(ctx context.Context, filter orders.ListFilter) ([]*orders.Order, error) {
	q := builder().
		Select(orderCols...).
		From("orders").
		OrderBy("created_at DESC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"client_name": pattern},
		})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if len(filter.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"status": filter.Statuses})
	}
	if filter.ClientID != nil {
		q = q.Where(squirrel.Eq{"client_id": *filter.ClientID})
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

	var result []*orders.Order
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &result, sql, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if err := r.loadItems(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// orderItemRow carries the join column for grouping.
type orderItemRow struct {
	OrderID  id.ID `db:"order_id"`
	Position int   `db:"position"`
	orders.Item
}

func (r *OrderRepo) loadItems(ctx context.Context, list []*orders.Order) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]id.ID, len(list))
	byID := make(map[id.ID]*orders.Order, len(list))
	for i, o := range list {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	q := builder().
		Select(orderItemCols...).
		From("order_items").
		Where(squirrel.Eq{"order_id": ids}).
		OrderBy("order_id", "position")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build item query: %w", err)
	}

	var rows []orderItemRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return fmt.Errorf("load order items: %w", err)
	}

	for _, row := range rows {
		o := byID[row.OrderID]
		o.Items = append(o.Items, row.Item)
	}
	return nil
}
