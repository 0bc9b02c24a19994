package dto

import (
	"time"

	"stylos/internal/domain/catalog/client"
)

// ClientRequest creates or updates a client.
type ClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Version  int    `json:"version"`
}

// ClientResponse is a client in API responses.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Document  string    `json:"document,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	City      string    `json:"city,omitempty"`
	Address   string    `json:"address,omitempty"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewClientResponse converts a client.
func NewClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Type:      string(c.Type),
		Document:  c.Document,
		Email:     c.Email,
		Phone:     c.Phone,
		City:      c.City,
		Address:   c.Address,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewClientListResponse converts a client list.
func NewClientListResponse(list []*client.Client) ListResponse[ClientResponse] {
	items := make([]ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, NewClientResponse(c))
	}
	return NewListResponse(items)
}
