package id

import (
	"strings"
	"testing"
)

func TestNewOrderCode(t *testing.T) {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := NewOrderCode()
		if len(code) != 6 {
			t.Fatalf("expected 6 characters, got %q", code)
		}
		for _, r := range code {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("unexpected character %q in code %q", r, code)
			}
		}
		seen[code] = true
	}

	// 1000 draws from a 36^6 space should essentially never collide.
	if len(seen) < 990 {
		t.Errorf("too many collisions: %d unique codes out of 1000", len(seen))
	}
}

func TestParseRoundTrip(t *testing.T) {
	generated := New()
	parsed, err := Parse(generated.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != generated {
		t.Errorf("expected %v, got %v", generated, parsed)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for malformed id")
	}
}

func TestIsNil(t *testing.T) {
	if !IsNil(Nil()) {
		t.Error("Nil() should be nil")
	}
	if IsNil(New()) {
		t.Error("New() should not be nil")
	}
}
