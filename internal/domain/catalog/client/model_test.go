package client

import (
	"context"
	"testing"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()

	valid := New("Escola Dom Pedro", TypeOrganization)
	valid.Email = "contato@dompedro.edu.br"
	if err := valid.Validate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noEmail := New("Maria Silva", TypeIndividual)
	if err := noEmail.Validate(ctx); err != nil {
		t.Fatalf("email should be optional: %v", err)
	}

	noName := New("", TypeIndividual)
	if err := noName.Validate(ctx); err == nil {
		t.Error("expected error for empty name")
	}

	badType := New("Maria Silva", Type("ONG"))
	if err := badType.Validate(ctx); err == nil {
		t.Error("expected error for unknown client type")
	}
}

func TestValidateEmail(t *testing.T) {
	ctx := context.Background()

	for _, email := range []string{"not-an-email", "a b@example.com", "@example.com"} {
		c := New("Maria Silva", TypeIndividual)
		c.Email = email
		if err := c.Validate(ctx); err == nil {
			t.Errorf("Validate() accepted %q", email)
		}
	}

	for _, email := range []string{"maria@example.com", "Maria Silva <maria@example.com>"} {
		c := New("Maria Silva", TypeIndividual)
		c.Email = email
		if err := c.Validate(ctx); err != nil {
			t.Errorf("Validate() rejected %q: %v", email, err)
		}
	}
}
