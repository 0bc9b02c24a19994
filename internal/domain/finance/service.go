package finance

import (
	"context"
	"fmt"

	"stylos/internal/core/appctx"
	"stylos/internal/core/apperror"
	"stylos/internal/core/tx"
	"stylos/internal/core/types"
	"stylos/internal/domain/orders"
	"stylos/pkg/logger"
)

// Service manages expenses and the financial summary.
type Service struct {
	repo      Repository
	orders    orders.Repository
	txManager tx.Manager
}

// NewService creates a new finance service.
func NewService(repo Repository, ordersRepo orders.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		orders:    ordersRepo,
		txManager: txManager,
	}
}

// RecordExpense validates and appends an expense.
func (s *Service) RecordExpense(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, e)
	})
	if err != nil {
		return fmt.Errorf("record expense: %w", err)
	}

	logger.Info(ctx, "expense recorded",
		"expense_id", e.ID,
		"category", e.Category,
		"amount", e.Amount,
	)
	return nil
}

// List retrieves expenses with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	return s.repo.List(ctx, filter)
}

// Summarize computes revenue, expenses, cost of goods sold, net profit and
// margin. Cancelled orders are excluded from the revenue and cost sides.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	if !appctx.IsAdmin(ctx) {
		return nil, apperror.NewForbidden("financial summary requires the ADMIN role")
	}

	allOrders, err := s.orders.List(ctx, orders.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	expenses, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	summary := &Summary{
		TotalRevenue:  types.Zero(),
		TotalExpenses: types.Zero(),
		TotalCOGS:     types.Zero(),
	}
	for _, o := range allOrders {
		if o.Status == orders.StatusCancelled {
			continue
		}
		summary.TotalRevenue = summary.TotalRevenue.Add(o.Total)
		summary.TotalCOGS = summary.TotalCOGS.Add(o.CostTotal)
	}
	for _, e := range expenses {
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
	}

	summary.NetProfit = summary.TotalRevenue.
		Sub(summary.TotalExpenses).
		Sub(summary.TotalCOGS)
	if summary.TotalRevenue.IsPositive() {
		summary.Margin = summary.NetProfit.
			Div(summary.TotalRevenue).
			Mul(types.MustMoney("100")).
			Round(2)
	} else {
		summary.Margin = types.Zero()
	}

	return summary, nil
}
