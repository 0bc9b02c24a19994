package localstore

import (
	"context"
	"sort"
	"strings"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/domain/catalog/client"
)

var _ client.Repository = (*ClientRepo)(nil)

// ClientRepo implements the client repository on the document store.
type ClientRepo struct {
	store *Store
}

// NewClientRepo creates a new client repository.
func NewClientRepo(store *Store) *ClientRepo {
	return &ClientRepo{store: store}
}

func (r *ClientRepo) loadAll(ctx context.Context) ([]*client.Client, error) {
	var clients []*client.Client
	if _, err := r.store.load(ctx, colClients, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// Create inserts a client.
func (r *ClientRepo) Create(ctx context.Context, c *client.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clients, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	clients = append(clients, c)
	return r.store.save(ctx, colClients, clients)
}

// Update replaces a client with optimistic locking.
func (r *ClientRepo) Update(ctx context.Context, c *client.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clients, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for i, existing := range clients {
		if existing.ID != c.ID {
			continue
		}
		if existing.Version != c.Version {
			return apperror.NewConcurrentModification("client", c.ID.String())
		}
		c.Version++
		clients[i] = c
		return r.store.save(ctx, colClients, clients)
	}
	return apperror.NewNotFound("client", c.ID.String())
}

// GetByID retrieves a client.
func (r *ClientRepo) GetByID(ctx context.Context, clientID id.ID) (*client.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clients, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.ID == clientID {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("client", clientID.String())
}

// List retrieves clients with filtering, name ascending.
func (r *ClientRepo) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clients, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*client.Client, 0, len(clients))
	for _, c := range clients {
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(c.Name), needle) &&
				!strings.Contains(strings.ToLower(c.Document), needle) &&
				!strings.Contains(strings.ToLower(c.City), needle) {
				continue
			}
		}
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return paginate(result, filter.Limit, filter.Offset), nil
}
