package stock

import (
	"context"
	"sync"
	"testing"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/tx"
	"stylos/internal/core/types"
	"stylos/internal/domain/catalog/product"
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

type fakeLedgerRepo struct {
	mu        sync.Mutex
	counters  map[id.ID]int
	movements []Movement
}

func (f *fakeLedgerRepo) ApplyDelta(ctx context.Context, variantID id.ID, delta int) (int, error) {
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

func (f *fakeLedgerRepo) Append(ctx context.Context, m *Movement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements = append(f.movements, *m)
	return nil
}

func (f *fakeLedgerRepo) List(ctx context.Context, filter MovementFilter) ([]Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Movement, 0, len(f.movements))
	for i := range f.movements {
		m := f.movements[i]
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type ledgerFixture struct {
	service *Service
	repo    *fakeLedgerRepo
	prod    *product.Product
	variant id.ID
}

func newLedgerFixture(initialStock int) *ledgerFixture {
	p := product.New("Camisa Uniforme", "Camisa")
	p.Price = types.MustMoney("45.00")
	v := p.AddVariant("M", "Branco", initialStock, "CAM-M-BR", "Polo")

	products := &fakeProductRepo{products: map[id.ID]*product.Product{p.ID: p}}
	repo := &fakeLedgerRepo{counters: map[id.ID]int{v.ID: initialStock}}

	return &ledgerFixture{
		service: NewService(products, repo, tx.Noop{}),
		repo:    repo,
		prod:    p,
		variant: v.ID,
	}
}

func TestRecordMovementEntry(t *testing.T) {
	f := newLedgerFixture(10)

	m, err := f.service.RecordMovement(context.Background(), MovementInput{
		Type:      TypeEntry,
		Reason:    ReasonPurchase,
		ProductID: f.prod.ID,
		VariantID: f.variant,
		Quantity:  5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.repo.counters[f.variant]; got != 15 {
		t.Errorf("expected stock 15, got %d", got)
	}
	if m.SignedQuantity() != 5 {
		t.Errorf("expected signed quantity +5, got %d", m.SignedQuantity())
	}
	if m.ProductName != "Camisa Uniforme" || m.Size != "M" || m.Color != "Branco" {
		t.Errorf("expected denormalized product fields, got %+v", m)
	}
	if m.Model != "Polo" {
		t.Errorf("expected model inherited from variant, got %q", m.Model)
	}
}

func TestRecordMovementOutputInsufficient(t *testing.T) {
	f := newLedgerFixture(10)

	_, err := f.service.RecordMovement(context.Background(), MovementInput{
		Type:      TypeOutput,
		Reason:    ReasonManual,
		ProductID: f.prod.ID,
		VariantID: f.variant,
		Quantity:  20,
	})
	if !apperror.IsInsufficientStock(err) {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}

	appErr, _ := apperror.AsAppError(err)
	if appErr.Details["requested"] != 20 || appErr.Details["available"] != 10 {
		t.Errorf("expected requested=20 available=10, got %v", appErr.Details)
	}

	// Nothing moved, nothing logged.
	if got := f.repo.counters[f.variant]; got != 10 {
		t.Errorf("expected stock unchanged at 10, got %d", got)
	}
	if len(f.repo.movements) != 0 {
		t.Errorf("expected no ledger entries, got %d", len(f.repo.movements))
	}
}

func TestRecordMovementExactDrain(t *testing.T) {
	f := newLedgerFixture(10)

	_, err := f.service.RecordMovement(context.Background(), MovementInput{
		Type:      TypeOutput,
		Reason:    ReasonManual,
		ProductID: f.prod.ID,
		VariantID: f.variant,
		Quantity:  10,
	})
	if err != nil {
		t.Fatalf("draining to exactly zero must succeed: %v", err)
	}
	if got := f.repo.counters[f.variant]; got != 0 {
		t.Errorf("expected stock 0, got %d", got)
	}
}

func TestRecordMovementValidation(t *testing.T) {
	f := newLedgerFixture(10)
	ctx := context.Background()

	tests := []struct {
		name string
		in   MovementInput
	}{
		{"zero quantity", MovementInput{Type: TypeEntry, Reason: ReasonPurchase, ProductID: f.prod.ID, VariantID: f.variant, Quantity: 0}},
		{"negative quantity", MovementInput{Type: TypeEntry, Reason: ReasonPurchase, ProductID: f.prod.ID, VariantID: f.variant, Quantity: -3}},
		{"unknown type", MovementInput{Type: "TRANSFERENCIA", Reason: ReasonPurchase, ProductID: f.prod.ID, VariantID: f.variant, Quantity: 1}},
		{"entry reason on output", MovementInput{Type: TypeOutput, Reason: ReasonPurchase, ProductID: f.prod.ID, VariantID: f.variant, Quantity: 1}},
		{"output reason on entry", MovementInput{Type: TypeEntry, Reason: ReasonOrder, ProductID: f.prod.ID, VariantID: f.variant, Quantity: 1}},
		{"adjustment without direction", MovementInput{Type: TypeAdjustment, Reason: ReasonManual, ProductID: f.prod.ID, VariantID: f.variant, Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.RecordMovement(ctx, tt.in)
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeValidation {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}

	if len(f.repo.movements) != 0 {
		t.Errorf("validation failures must not touch the ledger")
	}
}

func TestRecordMovementUnknownVariant(t *testing.T) {
	f := newLedgerFixture(10)

	_, err := f.service.RecordMovement(context.Background(), MovementInput{
		Type:      TypeEntry,
		Reason:    ReasonPurchase,
		ProductID: f.prod.ID,
		VariantID: id.New(),
		Quantity:  1,
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestRecordMovementAdjustment(t *testing.T) {
	f := newLedgerFixture(10)
	ctx := context.Background()

	if _, err := f.service.RecordMovement(ctx, MovementInput{
		Type: TypeAdjustment, Reason: ReasonManual, Direction: DirectionOut,
		ProductID: f.prod.ID, VariantID: f.variant, Quantity: 4,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.repo.counters[f.variant]; got != 6 {
		t.Errorf("expected stock 6 after outgoing adjustment, got %d", got)
	}

	if _, err := f.service.RecordMovement(ctx, MovementInput{
		Type: TypeAdjustment, Reason: ReasonManual, Direction: DirectionIn,
		ProductID: f.prod.ID, VariantID: f.variant, Quantity: 2,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.repo.counters[f.variant]; got != 8 {
		t.Errorf("expected stock 8 after incoming adjustment, got %d", got)
	}
}

func TestConcurrentWithdrawals(t *testing.T) {
	// Two racing withdrawals of 4 against a counter of 5: exactly one may
	// win; the final counter must be 1, never negative.
	f := newLedgerFixture(5)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.RecordMovement(ctx, MovementInput{
				Type:      TypeOutput,
				Reason:    ReasonManual,
				ProductID: f.prod.ID,
				VariantID: f.variant,
				Quantity:  4,
			})
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if apperror.IsInsufficientStock(err) {
			failed++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 || failed != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d shortfalls", succeeded, failed)
	}
	if got := f.repo.counters[f.variant]; got != 1 {
		t.Errorf("expected final stock 1, got %d", got)
	}
	if len(f.repo.movements) != 1 {
		t.Errorf("expected a single ledger entry, got %d", len(f.repo.movements))
	}
}

func TestCategoryOutputTotal(t *testing.T) {
	f := newLedgerFixture(100)
	ctx := context.Background()

	for _, qty := range []int{3, 7} {
		if _, err := f.service.RecordMovement(ctx, MovementInput{
			Type:      TypeOutput,
			Reason:    ReasonSchoolDelivery,
			ProductID: f.prod.ID,
			VariantID: f.variant,
			Quantity:  qty,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// An inbound entry must not count toward shipped totals.
	if _, err := f.service.RecordMovement(ctx, MovementInput{
		Type:      TypeEntry,
		Reason:    ReasonPurchase,
		ProductID: f.prod.ID,
		VariantID: f.variant,
		Quantity:  50,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := f.service.CategoryOutputTotal(ctx, "Camisa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 10 {
		t.Errorf("expected total 10, got %d", total)
	}

	other, err := f.service.CategoryOutputTotal(ctx, "Jaqueta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other != 0 {
		t.Errorf("expected 0 for untouched category, got %d", other)
	}
}
