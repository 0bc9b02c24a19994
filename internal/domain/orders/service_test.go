package orders

import (
	"context"
	"sync"
	"testing"
	"time"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/tx"
	"stylos/internal/core/types"
	"stylos/internal/domain/catalog/client"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/domain/stock"
)

// Mock objects

type fakeProductRepo struct {
	products map[id.ID]*product.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *product.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *product.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

func (f *fakeProductRepo) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	out := make([]*product.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

type fakeClientRepo struct {
	clients map[id.ID]*client.Client
}

func (f *fakeClientRepo) Create(ctx context.Context, c *client.Client) error {
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *client.Client) error {
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, clientID id.ID) (*client.Client, error) {
	c, ok := f.clients[clientID]
	if !ok {
		return nil, apperror.NewNotFound("client", clientID.String())
	}
	return c, nil
}

func (f *fakeClientRepo) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	out := make([]*client.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

type fakeStockRepo struct {
	mu        sync.Mutex
	counters  map[id.ID]int
	movements []stock.Movement
}

func (f *fakeStockRepo) ApplyDelta(ctx context.Context, variantID id.ID, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.counters[variantID]
	if !ok {
		return 0, apperror.NewNotFound("variant", variantID.String())
	}
	if current+delta < 0 {
		return 0, apperror.NewInsufficientStock(variantID.String(), -delta, current)
	}
	f.counters[variantID] = current + delta
	return current + delta, nil
}

func (f *fakeStockRepo) Append(ctx context.Context, m *stock.Movement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements = append(f.movements, *m)
	return nil
}

func (f *fakeStockRepo) List(ctx context.Context, filter stock.MovementFilter) ([]stock.Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]stock.Movement, len(f.movements))
	copy(out, f.movements)
	return out, nil
}

type fakeOrderRepo struct {
	orders map[id.ID]*Order
	codes  map[string]bool

	// failCodes makes Create reject the given codes with a duplicate error.
	failCodes map[string]bool
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *Order) error {
	if f.failCodes[o.Code] || f.codes[o.Code] {
		return apperror.NewDuplicate("order", "code", o.Code)
	}
	f.orders[o.ID] = o
	f.codes[o.Code] = true
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("order", orderID.String())
	}
	clone := *o
	return &clone, nil
}

func (f *fakeOrderRepo) GetByCode(ctx context.Context, code string) (*Order, error) {
	for _, o := range f.orders {
		if o.Code == code {
			clone := *o
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFound("order", code)
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status Status) error {
	o, ok := f.orders[orderID]
	if !ok {
		return apperror.NewNotFound("order", orderID.String())
	}
	o.Status = status
	o.Version++
	return nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	out := make([]*Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

type fixture struct {
	service   *Service
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	stockRepo *fakeStockRepo
	shirt     *product.Product
	pants     *product.Product
}

func newFixture() *fixture {
	shirt := product.New("Camisa Uniforme", "Camisa")
	shirt.Price = types.MustMoney("45.00")
	shirt.Cost = types.MustMoney("20.00")
	shirt.AddVariant("M", "Branco", 50, "CAM-M-BR", "Polo")

	pants := product.New("Calça Helanca", "Calças de Escola")
	pants.Price = types.MustMoney("45.00")
	pants.Cost = types.MustMoney("20.00")
	pants.AddVariant("M", "Azul", 2, "CAL-M-AZ", "")

	products := &fakeProductRepo{products: map[id.ID]*product.Product{
		shirt.ID: shirt,
		pants.ID: pants,
	}}

	stockRepo := &fakeStockRepo{counters: map[id.ID]int{
		shirt.Variants[0].ID: 50,
		pants.Variants[0].ID: 2,
	}}

	orderRepo := &fakeOrderRepo{
		orders:    make(map[id.ID]*Order),
		codes:     make(map[string]bool),
		failCodes: make(map[string]bool),
	}

	clients := client.NewService(&fakeClientRepo{clients: make(map[id.ID]*client.Client)}, tx.Noop{})
	ledger := stock.NewService(products, stockRepo, tx.Noop{})

	return &fixture{
		service:   NewService(orderRepo, products, clients, ledger, tx.Noop{}),
		orders:    orderRepo,
		products:  products,
		stockRepo: stockRepo,
		shirt:     shirt,
		pants:     pants,
	}
}

func testInput(f *fixture, items ...ItemInput) CreateInput {
	return CreateInput{
		ClientName:    "João da Silva",
		ClientPhone:   "(11) 98888-0000",
		DeliveryDate:  time.Now().Add(7 * 24 * time.Hour),
		PaymentMethod: PaymentPix,
		Items:         items,
	}
}

func TestCreateComputesTotals(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.service.Create(ctx, testInput(f,
		ItemInput{ProductID: f.shirt.ID, Size: "M", Color: "Branco", Quantity: 3},
		ItemInput{ProductID: f.pants.ID, Size: "M", Color: "Azul", Quantity: 2},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o := result.Order
	if o.Status != StatusNew {
		t.Errorf("expected status NOVO, got %s", o.Status)
	}
	if !o.Total.Equal(types.MustMoney("225.00")) {
		t.Errorf("expected total 225.00, got %s", o.Total)
	}
	if !o.CostTotal.Equal(types.MustMoney("100.00")) {
		t.Errorf("expected cost total 100.00, got %s", o.CostTotal)
	}
	if len(o.Code) != id.OrderCodeLength {
		t.Errorf("expected %d-character code, got %q", id.OrderCodeLength, o.Code)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}

	// Both variants were deducted and both movements reference the code.
	if got := f.stockRepo.counters[f.shirt.Variants[0].ID]; got != 47 {
		t.Errorf("expected shirt stock 47, got %d", got)
	}
	if got := f.stockRepo.counters[f.pants.Variants[0].ID]; got != 0 {
		t.Errorf("expected pants stock 0, got %d", got)
	}
	if len(f.stockRepo.movements) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(f.stockRepo.movements))
	}
	for _, m := range f.stockRepo.movements {
		if m.Reason != stock.ReasonOrder {
			t.Errorf("expected reason PEDIDO, got %s", m.Reason)
		}
		if m.ReferenceID != o.Code {
			t.Errorf("expected reference %q, got %q", o.Code, m.ReferenceID)
		}
	}
}

func TestCreateNegotiatedPrice(t *testing.T) {
	f := newFixture()
	negotiated := types.MustMoney("40.00")

	result, err := f.service.Create(context.Background(), testInput(f,
		ItemInput{ProductID: f.shirt.ID, Size: "M", Color: "Branco", Quantity: 2, UnitPrice: &negotiated},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Order.Total.Equal(types.MustMoney("80.00")) {
		t.Errorf("expected total 80.00, got %s", result.Order.Total)
	}
}

func TestCreatePartialStockWarning(t *testing.T) {
	f := newFixture()

	// Pants variant has 2 in stock; requesting 5 must warn, not fail.
	result, err := f.service.Create(context.Background(), testInput(f,
		ItemInput{ProductID: f.shirt.ID, Size: "M", Color: "Branco", Quantity: 3},
		ItemInput{ProductID: f.pants.ID, Size: "M", Color: "Azul", Quantity: 5},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
	w := result.Warnings[0]
	if w.Requested != 5 || w.Available != 2 {
		t.Errorf("expected requested=5 available=2, got %+v", w)
	}

	// The order includes the short item at full quantity.
	if !result.Order.Total.Equal(types.MustMoney("360.00")) {
		t.Errorf("expected total 360.00, got %s", result.Order.Total)
	}

	// The shirt deduction stands; the short variant is untouched.
	if got := f.stockRepo.counters[f.shirt.Variants[0].ID]; got != 47 {
		t.Errorf("expected shirt stock 47, got %d", got)
	}
	if got := f.stockRepo.counters[f.pants.Variants[0].ID]; got != 2 {
		t.Errorf("expected pants stock unchanged at 2, got %d", got)
	}
}

func TestCreateUnknownVariantSkipsStock(t *testing.T) {
	f := newFixture()

	result, err := f.service.Create(context.Background(), testInput(f,
		ItemInput{ProductID: f.shirt.ID, Size: "XXG", Color: "Roxo", Quantity: 1},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Warnings) != 0 {
		t.Errorf("unresolved variant should not produce a warning, got %v", result.Warnings)
	}
	if len(f.stockRepo.movements) != 0 {
		t.Errorf("unresolved variant must not move stock")
	}
	if result.Order.Items[0].VariantID != nil {
		t.Error("expected nil variant id on unresolved item")
	}
}

func TestCreateUnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), testInput(f,
		ItemInput{ProductID: id.New(), Size: "M", Color: "Branco", Quantity: 1},
	))
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(f.stockRepo.movements) != 0 {
		t.Error("failed resolution must not move stock")
	}
	if len(f.orders.orders) != 0 {
		t.Error("failed resolution must not create an order")
	}
}

func TestCreateCodeCollisionRetry(t *testing.T) {
	f := newFixture()

	// Force the first two generated codes to collide.
	rejected := 0
	repo := &collidingOrderRepo{fakeOrderRepo: f.orders, rejections: 2, counter: &rejected}
	f.service = NewService(repo, f.products,
		client.NewService(&fakeClientRepo{clients: make(map[id.ID]*client.Client)}, tx.Noop{}),
		stock.NewService(f.products, f.stockRepo, tx.Noop{}),
		tx.Noop{})

	result, err := f.service.Create(context.Background(), testInput(f,
		ItemInput{ProductID: f.shirt.ID, Size: "M", Color: "Branco", Quantity: 1},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected != 2 {
		t.Errorf("expected 2 rejected attempts, got %d", rejected)
	}
	if len(result.Order.Code) != id.OrderCodeLength {
		t.Errorf("expected a regenerated %d-character code", id.OrderCodeLength)
	}
}

// collidingOrderRepo rejects the first N creates with a duplicate error.
type collidingOrderRepo struct {
	*fakeOrderRepo
	rejections int
	counter    *int
}

func (c *collidingOrderRepo) Create(ctx context.Context, o *Order) error {
	if *c.counter < c.rejections {
		*c.counter++
		return apperror.NewDuplicate("order", "code", o.Code)
	}
	return c.fakeOrderRepo.Create(ctx, o)
}

func TestAdvance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.service.Create(ctx, testInput(f,
		ItemInput{ProductID: f.shirt.ID, Size: "M", Color: "Branco", Quantity: 1},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orderID := result.Order.ID

	want := []Status{StatusCutting, StatusPainting, StatusSewing, StatusReady, StatusDelivered}
	for _, expected := range want {
		o, err := f.service.Advance(ctx, orderID)
		if err != nil {
			t.Fatalf("advance to %s: %v", expected, err)
		}
		if o.Status != expected {
			t.Fatalf("expected %s, got %s", expected, o.Status)
		}
	}

	// ENTREGUE is terminal.
	if _, err := f.service.Advance(ctx, orderID); err == nil {
		t.Fatal("expected error advancing a delivered order")
	} else if appErr, ok := apperror.AsAppError(err); !ok || appErr.Code != apperror.CodeTerminalStatus {
		t.Errorf("expected TERMINAL_STATUS, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.service.Create(ctx, testInput(f,
		ItemInput{ProductID: f.shirt.ID, Size: "M", Color: "Branco", Quantity: 1},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o, err := f.service.Cancel(ctx, result.Order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != StatusCancelled {
		t.Errorf("expected CANCELADO, got %s", o.Status)
	}

	// Cancelling twice is refused.
	if _, err := f.service.Cancel(ctx, result.Order.ID); err == nil {
		t.Error("expected error cancelling a cancelled order")
	}
}

func TestSetStatusInvalid(t *testing.T) {
	f := newFixture()

	if _, err := f.service.SetStatus(context.Background(), id.New(), "EM_FUGA"); err == nil {
		t.Fatal("expected validation error for unknown status")
	}
}
