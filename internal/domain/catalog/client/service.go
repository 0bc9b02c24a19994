package client

import (
	"context"
	"fmt"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/tx"
	"stylos/pkg/logger"
)

// Service provides business operations for the client catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new client service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create validates and persists a new client.
func (s *Service) Create(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, c); err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "client created", "id", c.ID, "name", c.Name)
	return nil
}

// Update modifies an existing client.
func (s *Service) Update(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("update client: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a client.
func (s *Service) GetByID(ctx context.Context, clientID id.ID) (*Client, error) {
	c, err := s.repo.GetByID(ctx, clientID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("client", clientID.String())
		}
		return nil, err
	}
	return c, nil
}

// List retrieves clients with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Client, error) {
	return s.repo.List(ctx, filter)
}

// ResolveOrCreate returns the referenced client, or synthesizes a new
// individual client from order-entry fields when no ID was supplied.
func (s *Service) ResolveOrCreate(ctx context.Context, clientID id.ID, name, phone, city string) (*Client, error) {
	if !id.IsNil(clientID) {
		return s.GetByID(ctx, clientID)
	}

	c := New(name, TypeIndividual)
	c.Phone = phone
	c.City = city
	if err := s.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
