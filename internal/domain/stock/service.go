package stock

import (
	"context"
	"fmt"
	"time"

	"stylos/internal/core/appctx"
	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/tx"
	"stylos/internal/core/types"
	"stylos/internal/domain/catalog/product"
	"stylos/pkg/logger"
)

// MovementInput describes a requested stock movement. Actor and timestamp
// are assigned by the service at record time.
type MovementInput struct {
	Type      MovementType
	Reason    string
	Direction Direction // AJUSTE only
	ProductID id.ID
	VariantID id.ID
	Quantity  int

	ReferenceID string
	ClientName  string
	Model       string
	UnitValue   *types.Money
	TotalValue  *types.Money
}

// Service is the stock ledger engine: it validates movements, applies the
// counter delta and appends the ledger record in one transaction.
type Service struct {
	products  product.Repository
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new stock ledger service.
func NewService(products product.Repository, repo Repository, txManager tx.Manager) *Service {
	return &Service{
		products:  products,
		repo:      repo,
		txManager: txManager,
	}
}

// RecordMovement validates and applies a single stock movement.
//
// Validation order matters: quantity is checked before any lookup so a
// caller error never touches the catalog, and a SAIDA that exceeds the
// available quantity is refused without mutating anything.
func (s *Service) RecordMovement(ctx context.Context, in MovementInput) (*Movement, error) {
	if in.Quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be a positive integer").
			WithDetail("field", "quantity").
			WithDetail("value", in.Quantity)
	}
	if in.Type != TypeEntry && in.Type != TypeOutput && in.Type != TypeAdjustment {
		return nil, apperror.NewValidation("invalid movement type").
			WithDetail("field", "type").
			WithDetail("value", string(in.Type))
	}
	if !ValidReason(in.Type, in.Reason) {
		return nil, apperror.NewValidation("invalid reason for movement type").
			WithDetail("field", "reason").
			WithDetail("type", string(in.Type)).
			WithDetail("value", in.Reason)
	}
	if in.Type == TypeAdjustment && in.Direction != DirectionIn && in.Direction != DirectionOut {
		return nil, apperror.NewValidation("adjustment requires an explicit direction").
			WithDetail("field", "direction")
	}

	p, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", in.ProductID.String())
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	v := p.VariantByID(in.VariantID)
	if v == nil {
		return nil, apperror.NewNotFound("variant", in.VariantID.String()).
			WithDetail("product_id", in.ProductID.String())
	}

	m := &Movement{
		ID:          id.New(),
		Type:        in.Type,
		Reason:      in.Reason,
		Direction:   in.Direction,
		ProductID:   p.ID,
		VariantID:   v.ID,
		ProductName: p.Name,
		Category:    p.Category,
		Size:        v.Size,
		Color:       v.Color,
		Model:       firstNonEmpty(in.Model, v.Model),
		Quantity:    in.Quantity,
		CreatedAt:   time.Now().UTC(),
		ActorID:     appctx.GetUserID(ctx),
		ReferenceID: in.ReferenceID,
		ClientName:  in.ClientName,
		UnitValue:   in.UnitValue,
		TotalValue:  in.TotalValue,
	}

	// Counter delta and ledger append commit together. The conditional
	// update inside ApplyDelta is what keeps two racing withdrawals from
	// both observing the same balance.
	var newStock int
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		newStock, err = s.repo.ApplyDelta(ctx, v.ID, m.SignedQuantity())
		if err != nil {
			return err
		}
		if err := s.repo.Append(ctx, m); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock movement recorded",
		"movement_id", m.ID,
		"type", m.Type,
		"reason", m.Reason,
		"variant_id", v.ID,
		"quantity", m.Quantity,
		"stock", newStock,
	)

	return m, nil
}

// List retrieves movement history.
func (s *Service) List(ctx context.Context, filter MovementFilter) ([]Movement, error) {
	return s.repo.List(ctx, filter)
}

// CategoryOutputTotal sums outbound quantities for a category (school
// uniform delivery reports).
func (s *Service) CategoryOutputTotal(ctx context.Context, category string) (int, error) {
	movements, err := s.repo.List(ctx, MovementFilter{
		Type:     TypeOutput,
		Category: category,
	})
	if err != nil {
		return 0, err
	}
	total := 0
	for i := range movements {
		total += movements[i].Quantity
	}
	return total, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
