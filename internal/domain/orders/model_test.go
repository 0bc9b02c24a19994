package orders

import (
	"context"
	"testing"
	"time"

	"stylos/internal/core/id"
	"stylos/internal/core/types"
)

func TestNextStatusChain(t *testing.T) {
	// Walking the chain from NOVO must visit every stage exactly once and
	// end at ENTREGUE.
	want := []Status{StatusCutting, StatusPainting, StatusSewing, StatusReady, StatusDelivered}

	current := StatusNew
	for _, expected := range want {
		next, ok := NextStatus(current)
		if !ok {
			t.Fatalf("expected successor for %s", current)
		}
		if next != expected {
			t.Fatalf("NextStatus(%s) = %s, want %s", current, next, expected)
		}
		current = next
	}

	if _, ok := NextStatus(StatusDelivered); ok {
		t.Error("ENTREGUE must not have a successor")
	}
	if _, ok := NextStatus(StatusCancelled); ok {
		t.Error("CANCELADO must not have a successor")
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusCutting, StatusPainting, StatusSewing, StatusReady} {
		if IsTerminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []Status{StatusDelivered, StatusCancelled} {
		if !IsTerminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestInProduction(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNew, false},
		{StatusCutting, true},
		{StatusPainting, true},
		{StatusSewing, true},
		{StatusReady, false},
		{StatusDelivered, false},
	}
	for _, tt := range tests {
		if got := InProduction(tt.status); got != tt.want {
			t.Errorf("InProduction(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRecalculateTotals(t *testing.T) {
	o := &Order{
		Items: []Item{
			NewItem(id.New(), nil, "Camisa", "M", "Branco", 3, types.MustMoney("45.00")),
			NewItem(id.New(), nil, "Calça", "M", "Azul", 2, types.MustMoney("45.00")),
		},
	}
	o.RecalculateTotals()

	if !o.Total.Equal(types.MustMoney("225.00")) {
		t.Errorf("expected total 225.00, got %s", o.Total)
	}
}

func TestOrderValidate(t *testing.T) {
	base := func() *Order {
		return &Order{
			ID:            id.New(),
			Code:          "A1B2C3",
			ClientID:      id.New(),
			ClientName:    "João da Silva",
			DeliveryDate:  time.Now().Add(7 * 24 * time.Hour),
			PaymentMethod: PaymentPix,
			Status:        StatusNew,
			Items: []Item{
				NewItem(id.New(), nil, "Camisa", "M", "Branco", 1, types.MustMoney("45.00")),
			},
		}
	}

	ctx := context.Background()

	if err := base().Validate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noClient := base()
	noClient.ClientName = ""
	if err := noClient.Validate(ctx); err == nil {
		t.Error("expected error for missing client name")
	}

	noItems := base()
	noItems.Items = nil
	if err := noItems.Validate(ctx); err == nil {
		t.Error("expected error for empty item list")
	}

	badPayment := base()
	badPayment.PaymentMethod = "CHEQUE"
	if err := badPayment.Validate(ctx); err == nil {
		t.Error("expected error for unknown payment method")
	}

	badQuantity := base()
	badQuantity.Items[0].Quantity = 0
	if err := badQuantity.Validate(ctx); err == nil {
		t.Error("expected error for zero quantity")
	}
}
