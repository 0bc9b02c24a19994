package orders

import (
	"context"
	"fmt"
	"time"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/tx"
	"stylos/internal/core/types"
	"stylos/internal/domain/catalog/client"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/domain/stock"
	"stylos/pkg/logger"
)

// createRetries bounds order-code regeneration on a duplicate conflict.
const createRetries = 5

// ItemInput is a requested order line. Size and color resolve the variant
// through the product's normalized key index; unresolved combinations still
// go on the order but skip stock withdrawal.
type ItemInput struct {
	ProductID id.ID
	Size      string
	Color     string
	Quantity  int

	// UnitPrice overrides the catalog price when set (negotiated price).
	UnitPrice *types.Money
}

// CreateInput describes an order submission.
type CreateInput struct {
	ClientID    id.ID // Nil to auto-create from the fields below
	ClientName  string
	ClientPhone string
	ClientCity  string

	DeliveryDate  time.Time
	PaymentMethod PaymentMethod
	Notes         string
	Items         []ItemInput
}

// StockWarning reports a per-item stock shortfall that did not abort order
// creation.
type StockWarning struct {
	ProductName string `json:"productName"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// CreateResult carries the created order plus any stock warnings.
type CreateResult struct {
	Order    *Order         `json:"order"`
	Warnings []StockWarning `json:"stockWarnings,omitempty"`
}

// Service manages the order lifecycle.
type Service struct {
	repo      Repository
	products  product.Repository
	clients   *client.Service
	ledger    *stock.Service
	txManager tx.Manager
}

// NewService creates a new order service.
func NewService(
	repo Repository,
	products product.Repository,
	clients *client.Service,
	ledger *stock.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		clients:   clients,
		ledger:    ledger,
		txManager: txManager,
	}
}

// Create builds and persists a new order.
//
// Stock withdrawals are best-effort: items whose variant has
// insufficient stock are reported as warnings and the order is created
// anyway. Earlier successful withdrawals are not rolled back.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if in.ClientName == "" {
		return nil, apperror.NewValidation("client name is required").
			WithDetail("field", "clientName")
	}
	if in.DeliveryDate.IsZero() {
		return nil, apperror.NewValidation("delivery date is required").
			WithDetail("field", "deliveryDate")
	}
	if len(in.Items) == 0 {
		return nil, apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	code := id.NewOrderCode()

	// Resolve products, variants and prices up front so a bad reference
	// fails before any stock is moved.
	items := make([]Item, 0, len(in.Items))
	costTotal := types.Zero()
	for i, itemIn := range in.Items {
		if itemIn.Quantity <= 0 {
			return nil, apperror.NewValidation("item quantity must be positive").
				WithDetail("field", "items").
				WithDetail("index", i)
		}

		p, err := s.products.GetByID(ctx, itemIn.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.NewNotFound("product", itemIn.ProductID.String())
			}
			return nil, fmt.Errorf("resolve product: %w", err)
		}

		unitPrice := p.Price
		if itemIn.UnitPrice != nil {
			unitPrice = *itemIn.UnitPrice
		}

		var variantID *id.ID
		if v := p.FindVariant(itemIn.Size, itemIn.Color); v != nil {
			vid := v.ID
			variantID = &vid
		}

		items = append(items, NewItem(p.ID, variantID, p.Name, itemIn.Size, itemIn.Color, itemIn.Quantity, unitPrice))
		costTotal = costTotal.Add(types.MulInt(p.Cost, itemIn.Quantity))
	}

	// Withdraw stock per item, continuing past shortfalls.
	warnings := make([]StockWarning, 0)
	for i := range items {
		item := &items[i]
		if item.VariantID == nil {
			continue
		}

		unitValue := item.UnitPrice
		totalValue := item.Subtotal
		_, err := s.ledger.RecordMovement(ctx, stock.MovementInput{
			Type:        stock.TypeOutput,
			Reason:      stock.ReasonOrder,
			ProductID:   item.ProductID,
			VariantID:   *item.VariantID,
			Quantity:    item.Quantity,
			ReferenceID: code,
			ClientName:  in.ClientName,
			UnitValue:   &unitValue,
			TotalValue:  &totalValue,
		})
		if err == nil {
			continue
		}

		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeInsufficientStock {
			return nil, err
		}

		available, _ := appErr.Details["available"].(int)
		warnings = append(warnings, StockWarning{
			ProductName: item.ProductName,
			Size:        item.Size,
			Color:       item.Color,
			Requested:   item.Quantity,
			Available:   available,
		})
		logger.Warn(ctx, "order item stock shortfall",
			"order_code", code,
			"product", item.ProductName,
			"requested", item.Quantity,
			"available", available,
		)
	}

	c, err := s.clients.ResolveOrCreate(ctx, in.ClientID, in.ClientName, in.ClientPhone, in.ClientCity)
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:            id.New(),
		Code:          code,
		ClientID:      c.ID,
		ClientName:    in.ClientName,
		ClientPhone:   in.ClientPhone,
		ClientCity:    in.ClientCity,
		CreatedAt:     time.Now().UTC(),
		DeliveryDate:  in.DeliveryDate,
		Status:        StatusNew,
		CostTotal:     costTotal,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		Version:       1,
		Items:         items,
	}
	o.RecalculateTotals()

	if err := o.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.createWithRetry(ctx, o); err != nil {
		return nil, err
	}

	logger.Info(ctx, "order created",
		"order_id", o.ID,
		"code", o.Code,
		"client", o.ClientName,
		"items", len(o.Items),
		"total", o.Total,
		"stock_warnings", len(warnings),
	)

	return &CreateResult{Order: o, Warnings: warnings}, nil
}

// createWithRetry persists the order, regenerating the short code on a
// duplicate conflict. Movements reference the code that finally sticks only
// when no retry happened; a retried code is logged for traceability.
func (s *Service) createWithRetry(ctx context.Context, o *Order) error {
	var lastErr error
	for attempt := 0; attempt < createRetries; attempt++ {
		err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
			return s.repo.Create(ctx, o)
		})
		if err == nil {
			return nil
		}
		if !apperror.IsDuplicate(err) {
			return err
		}
		lastErr = err
		old := o.Code
		o.Code = id.NewOrderCode()
		logger.Warn(ctx, "order code collision, regenerating",
			"old_code", old, "new_code", o.Code, "attempt", attempt+1)
	}
	return apperror.NewConflict("could not allocate a unique order code").WithCause(lastErr)
}

// GetByID retrieves an order with items.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("order", orderID.String())
		}
		return nil, err
	}
	return o, nil
}

// GetByCode retrieves an order by its human-facing short code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Order, error) {
	o, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("order", code)
		}
		return nil, err
	}
	return o, nil
}

// List retrieves orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.List(ctx, filter)
}

// Advance moves an order one step along the fixed chain. Calling it on a
// terminal status is an error.
func (s *Service) Advance(ctx context.Context, orderID id.ID) (*Order, error) {
	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, ok := NextStatus(o.Status)
	if !ok {
		return nil, apperror.NewBusinessRule(
			apperror.CodeTerminalStatus,
			"order has no further pipeline stage",
		).WithDetail("order_id", orderID.String()).WithDetail("status", string(o.Status))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, fmt.Errorf("advance order: %w", err)
	}
	o.Status = next

	logger.Info(ctx, "order advanced", "order_id", orderID, "status", next)
	return o, nil
}

// Cancel moves a non-terminal order to CANCELADO.
func (s *Service) Cancel(ctx context.Context, orderID id.ID) (*Order, error) {
	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if IsTerminal(o.Status) {
		return nil, apperror.NewBusinessRule(
			apperror.CodeTerminalStatus,
			"order is already in a terminal status",
		).WithDetail("order_id", orderID.String()).WithDetail("status", string(o.Status))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, StatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	o.Status = StatusCancelled

	logger.Info(ctx, "order cancelled", "order_id", orderID)
	return o, nil
}

// SetStatus assigns an arbitrary status. This is the administrative
// override; Advance is the recommended transition API.
func (s *Service) SetStatus(ctx context.Context, orderID id.ID, status Status) (*Order, error) {
	if !ValidStatus(status) {
		return nil, apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(status))
	}

	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("set order status: %w", err)
	}
	o.Status = status

	logger.Info(ctx, "order status overridden", "order_id", orderID, "status", status)
	return o, nil
}
