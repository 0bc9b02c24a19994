// Package client provides the Client catalog (customers: schools and
// individuals).
package client

import (
	"context"
	"net/mail"
	"time"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
)

// Type defines the client's legal type.
type Type string

const (
	TypeIndividual   Type = "PF" // pessoa física
	TypeOrganization Type = "PJ" // pessoa jurídica
)

// Client represents a customer.
type Client struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      Type      `db:"type" json:"type"`
	Document  string    `db:"document" json:"document,omitempty"` // CPF or CNPJ
	Email     string    `db:"email" json:"email,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	City      string    `db:"city" json:"city,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a client with generated ID and timestamps.
func New(name string, clientType Type) *Client {
	now := time.Now().UTC()
	return &Client{
		ID:        id.New(),
		Name:      name,
		Type:      clientType,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks client invariants.
func (c *Client) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if c.Type != TypeIndividual && c.Type != TypeOrganization {
		return apperror.NewValidation("invalid client type").
			WithDetail("field", "type").
			WithDetail("value", string(c.Type))
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return apperror.NewValidation("invalid email address").
				WithDetail("field", "email")
		}
	}
	return nil
}

// ListFilter contains filtering options for client listings.
type ListFilter struct {
	// Search matches against name, document and city
	Search string

	Type Type

	Limit  int
	Offset int
}

// Repository defines persistence operations for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, clientID id.ID) (*Client, error)
	List(ctx context.Context, filter ListFilter) ([]*Client, error)
}
