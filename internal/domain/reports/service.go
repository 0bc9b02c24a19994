// Package reports computes read-only dashboard aggregates over the catalog
// and the order book.
package reports

import (
	"context"
	"fmt"
	"time"

	"stylos/internal/core/types"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/domain/orders"
)

// DashboardStats is the operational snapshot shown on the dashboard.
type DashboardStats struct {
	RevenueToday    types.Money `json:"revenueToday"`
	OrdersToday     int         `json:"ordersToday"`
	OrdersPending   int         `json:"ordersPending"`
	LowStockCount   int         `json:"lowStockCount"`
	InProduction    int         `json:"inProduction"`
	PendingDelivery int         `json:"pendingDelivery"`
}

// CategoryStock breaks down stock quantity and value for one category.
type CategoryStock struct {
	Category  string      `json:"category"`
	Quantity  int         `json:"quantity"`
	CostValue types.Money `json:"costValue"`
	SaleValue types.Money `json:"saleValue"`
}

// StockValuation is the cost-basis valuation of everything on hand.
type StockValuation struct {
	TotalCostValue types.Money     `json:"totalCostValue"`
	ByCategory     []CategoryStock `json:"byCategory"`
}

// Service computes dashboard-level aggregates.
type Service struct {
	orders   orders.Repository
	products product.Repository
}

// NewService creates a new reports service.
func NewService(ordersRepo orders.Repository, products product.Repository) *Service {
	return &Service{orders: ordersRepo, products: products}
}

// Dashboard computes the operational snapshot for the given moment.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error) {
	allOrders, err := s.orders.List(ctx, orders.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	stats := &DashboardStats{RevenueToday: types.Zero()}

	today := now.UTC().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)
	for _, o := range allOrders {
		created := o.CreatedAt.UTC()
		if !created.Before(today) && created.Before(tomorrow) {
			stats.OrdersToday++
			stats.RevenueToday = stats.RevenueToday.Add(o.Total)
		}
		switch {
		case orders.InProduction(o.Status):
			stats.InProduction++
		case o.Status == orders.StatusReady:
			stats.PendingDelivery++
		}
		if !orders.IsTerminal(o.Status) {
			stats.OrdersPending++
		}
	}

	lowStock, err := s.lowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = len(lowStock)

	return stats, nil
}

// LowStock lists products where any variant is at or below the minimum.
func (s *Service) LowStock(ctx context.Context) ([]*product.Product, error) {
	return s.lowStockProducts(ctx)
}

// Valuation computes the cost-basis stock value with a category breakdown.
func (s *Service) Valuation(ctx context.Context) (*StockValuation, error) {
	products, err := s.products.List(ctx, product.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	valuation := &StockValuation{TotalCostValue: types.Zero()}
	index := make(map[string]int)
	for _, p := range products {
		qty := p.TotalStock()
		cost := types.MulInt(p.Cost, qty)
		sale := types.MulInt(p.Price, qty)
		valuation.TotalCostValue = valuation.TotalCostValue.Add(cost)

		i, ok := index[p.Category]
		if !ok {
			i = len(valuation.ByCategory)
			index[p.Category] = i
			valuation.ByCategory = append(valuation.ByCategory, CategoryStock{
				Category:  p.Category,
				CostValue: types.Zero(),
				SaleValue: types.Zero(),
			})
		}
		entry := &valuation.ByCategory[i]
		entry.Quantity += qty
		entry.CostValue = entry.CostValue.Add(cost)
		entry.SaleValue = entry.SaleValue.Add(sale)
	}

	return valuation, nil
}

func (s *Service) lowStockProducts(ctx context.Context) ([]*product.Product, error) {
	products, err := s.products.List(ctx, product.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	low := make([]*product.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}
