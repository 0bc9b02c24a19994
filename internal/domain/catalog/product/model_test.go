package product

import (
	"context"
	"testing"

	"stylos/internal/core/types"
)

func TestVariantKey(t *testing.T) {
	tests := []struct {
		size, color string
		want        string
	}{
		{"M", "Branco", "m|branco"},
		{"m", "BRANCO", "m|branco"},
		{" GG ", " Azul ", "gg|azul"},
		{"08", "Branco", "08|branco"},
	}

	for _, tt := range tests {
		if got := VariantKey(tt.size, tt.color); got != tt.want {
			t.Errorf("VariantKey(%q, %q) = %q, want %q", tt.size, tt.color, got, tt.want)
		}
	}
}

func TestFindVariant(t *testing.T) {
	p := New("Camisa Polo", "Uniforme Escolar")
	p.AddVariant("M", "Branco", 10, "CAM-M-BR", "Polo")
	p.AddVariant("G", "Azul", 5, "CAM-G-AZ", "Polo")

	v := p.FindVariant("m", "BRANCO")
	if v == nil {
		t.Fatal("expected variant for case-insensitive lookup")
	}
	if v.Stock != 10 {
		t.Errorf("expected stock 10, got %d", v.Stock)
	}

	if p.FindVariant("P", "Branco") != nil {
		t.Error("expected nil for unknown size/color combination")
	}
}

func TestVariantByID(t *testing.T) {
	p := New("Camisa Polo", "Uniforme Escolar")
	v := p.AddVariant("M", "Branco", 10, "", "")

	if got := p.VariantByID(v.ID); got == nil || got.ID != v.ID {
		t.Fatal("expected variant by id")
	}
}

func TestTotalStockAndLowStock(t *testing.T) {
	p := New("Camisa Polo", "Uniforme Escolar")
	p.MinStock = 10
	p.AddVariant("M", "Branco", 12, "", "")
	p.AddVariant("G", "Branco", 15, "", "")

	if got := p.TotalStock(); got != 27 {
		t.Errorf("expected total stock 27, got %d", got)
	}
	if p.IsLowStock() {
		t.Error("expected no low stock while every variant sits above the threshold")
	}

	p.AddVariant("GG", "Branco", 5, "", "")
	if !p.IsLowStock() {
		t.Error("expected low stock once any variant drops to the threshold")
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	valid := New("Camisa Polo", "Uniforme Escolar")
	valid.Price = types.MustMoney("45.00")
	valid.AddVariant("M", "Branco", 10, "", "")
	if err := valid.Validate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noName := New("", "Uniforme Escolar")
	noName.AddVariant("M", "Branco", 0, "", "")
	if err := noName.Validate(ctx); err == nil {
		t.Error("expected error for empty name")
	}

	negative := New("Camisa", "Uniforme Escolar")
	negative.Price = types.MustMoney("-1.00")
	negative.AddVariant("M", "Branco", 0, "", "")
	if err := negative.Validate(ctx); err == nil {
		t.Error("expected error for negative price")
	}

	duplicate := New("Camisa", "Uniforme Escolar")
	duplicate.AddVariant("M", "Branco", 0, "", "")
	duplicate.AddVariant("m", "branco", 0, "", "")
	if err := duplicate.Validate(ctx); err == nil {
		t.Error("expected error for duplicate size/color combination")
	}
}
