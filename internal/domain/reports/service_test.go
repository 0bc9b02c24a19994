package reports

import (
	"context"
	"testing"
	"time"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/types"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/domain/orders"
)

// Mock objects

type fakeOrderRepo struct {
	orders []*orders.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *orders.Order) error {
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, orderID id.ID) (*orders.Order, error) {
	return nil, apperror.NewNotFound("order", orderID.String())
}

func (f *fakeOrderRepo) GetByCode(ctx context.Context, code string) (*orders.Order, error) {
	return nil, apperror.NewNotFound("order", code)
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error {
	return nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter orders.ListFilter) ([]*orders.Order, error) {
	return f.orders, nil
}

type fakeProductRepo struct {
	products []*product.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *product.Product) error {
	f.products = append(f.products, p)
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *product.Product) error {
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return nil, apperror.NewNotFound("product", productID.String())
}

func (f *fakeProductRepo) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	return f.products, nil
}

func orderAt(created time.Time, status orders.Status, total string) *orders.Order {
	return &orders.Order{
		ID:        id.New(),
		CreatedAt: created,
		Status:    status,
		Total:     types.MustMoney(total),
	}
}

func TestDashboard(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)

	orderRepo := &fakeOrderRepo{orders: []*orders.Order{
		orderAt(now.Add(-2*time.Hour), orders.StatusNew, "225.00"),
		orderAt(now.Add(-1*time.Hour), orders.StatusCutting, "100.00"),
		orderAt(yesterday, orders.StatusSewing, "80.00"),
		orderAt(yesterday, orders.StatusReady, "50.00"),
		orderAt(yesterday, orders.StatusDelivered, "10.00"),
		orderAt(yesterday, orders.StatusCancelled, "999.00"),
	}}

	low := product.New("Camisa", "Camisa")
	low.MinStock = 30
	low.AddVariant("M", "Branco", 12, "", "")
	ok := product.New("Jaqueta", "Jaqueta")
	ok.MinStock = 5
	ok.AddVariant("M", "Azul", 40, "", "")

	service := NewService(orderRepo, &fakeProductRepo{products: []*product.Product{low, ok}})

	stats, err := service.Dashboard(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.OrdersToday != 2 {
		t.Errorf("expected 2 orders today, got %d", stats.OrdersToday)
	}
	if !stats.RevenueToday.Equal(types.MustMoney("325.00")) {
		t.Errorf("expected revenue 325.00, got %s", stats.RevenueToday)
	}
	if stats.InProduction != 2 {
		t.Errorf("expected 2 in production, got %d", stats.InProduction)
	}
	if stats.PendingDelivery != 1 {
		t.Errorf("expected 1 pending delivery, got %d", stats.PendingDelivery)
	}
	if stats.OrdersPending != 4 {
		t.Errorf("expected 4 non-terminal orders, got %d", stats.OrdersPending)
	}
	if stats.LowStockCount != 1 {
		t.Errorf("expected 1 low-stock product, got %d", stats.LowStockCount)
	}
}

func TestLowStock(t *testing.T) {
	low := product.New("Camisa", "Camisa")
	low.MinStock = 30
	low.AddVariant("M", "Branco", 12, "", "")
	ok := product.New("Jaqueta", "Jaqueta")
	ok.MinStock = 5
	ok.AddVariant("M", "Azul", 40, "", "")

	service := NewService(&fakeOrderRepo{}, &fakeProductRepo{products: []*product.Product{low, ok}})

	products, err := service.LowStock(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ID != low.ID {
		t.Errorf("expected only the low-stock product, got %d", len(products))
	}
}

func TestValuation(t *testing.T) {
	shirt := product.New("Camisa", "Camisa")
	shirt.Price = types.MustMoney("65.00")
	shirt.Cost = types.MustMoney("25.00")
	shirt.AddVariant("M", "Branco", 10, "", "")
	shirt.AddVariant("G", "Branco", 10, "", "")

	jacket := product.New("Jaqueta", "Jaqueta")
	jacket.Price = types.MustMoney("150.00")
	jacket.Cost = types.MustMoney("70.00")
	jacket.AddVariant("M", "Azul", 5, "", "")

	service := NewService(&fakeOrderRepo{}, &fakeProductRepo{products: []*product.Product{shirt, jacket}})

	valuation, err := service.Valuation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 20×25 + 5×70 = 850.
	if !valuation.TotalCostValue.Equal(types.MustMoney("850.00")) {
		t.Errorf("expected total cost 850.00, got %s", valuation.TotalCostValue)
	}
	if len(valuation.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(valuation.ByCategory))
	}

	byName := make(map[string]CategoryStock)
	for _, c := range valuation.ByCategory {
		byName[c.Category] = c
	}
	shirts := byName["Camisa"]
	if shirts.Quantity != 20 || !shirts.SaleValue.Equal(types.MustMoney("1300.00")) {
		t.Errorf("unexpected shirt category entry: %+v", shirts)
	}
	jackets := byName["Jaqueta"]
	if jackets.Quantity != 5 || !jackets.CostValue.Equal(types.MustMoney("350.00")) {
		t.Errorf("unexpected jacket category entry: %+v", jackets)
	}
}
