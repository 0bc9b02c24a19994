package product

import (
	"context"
	"fmt"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/tx"
	"stylos/pkg/logger"
)

// Auditor records catalog changes. Optional: nil disables auditing
// (local fallback mode).
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes any) error
}

// Service provides business operations for the product catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
	auditor   Auditor
}

// NewService creates a new product service.
func NewService(repo Repository, txManager tx.Manager, auditor Auditor) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create validates and persists a new product with its variants.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit(ctx, p.ID, "create", p)
	logger.Info(ctx, "product created", "id", p.ID, "name", p.Name, "variants", len(p.Variants))
	return nil
}

// Update modifies product master data. Variant stock is not written here;
// only the ledger moves counters.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	p.Touch()
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit(ctx, p.ID, "update", p)
	logger.Info(ctx, "product updated", "id", p.ID, "version", p.Version)
	return nil
}

// GetByID retrieves a product with variants, index built.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, err
	}
	return p, nil
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.repo.List(ctx, filter)
}

// LowStock returns products with at least one variant at or under the
// reorder threshold.
func (s *Service) LowStock(ctx context.Context) ([]*Product, error) {
	all, err := s.repo.List(ctx, ListFilter{Status: StatusActive})
	if err != nil {
		return nil, err
	}
	low := make([]*Product, 0)
	for _, p := range all {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

func (s *Service) audit(ctx context.Context, productID id.ID, action string, changes any) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.LogChange(ctx, "Product", productID, action, changes); err != nil {
		logger.Warn(ctx, "product audit failed", "id", productID, "error", err)
	}
}
