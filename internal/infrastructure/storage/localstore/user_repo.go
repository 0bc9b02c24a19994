package localstore

import (
	"context"
	"sort"
	"strings"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/domain/auth"
)

var _ auth.Repository = (*UserRepo)(nil)

// storedUser re-exposes the password hash, which the domain type keeps out
// of JSON.
type storedUser struct {
	auth.User
	PasswordHash string `json:"passwordHash"`
}

func toStored(u *auth.User) storedUser {
	return storedUser{User: *u, PasswordHash: u.PasswordHash}
}

func (su storedUser) toDomain() *auth.User {
	u := su.User
	u.PasswordHash = su.PasswordHash
	return &u
}

// UserRepo implements the user repository on the document store.
type UserRepo struct {
	store *Store
}

// NewUserRepo creates a new user repository.
func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) loadAll(ctx context.Context) ([]storedUser, error) {
	var users []storedUser
	if _, err := r.store.load(ctx, colUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) saveAll(ctx context.Context, users []storedUser) error {
	return r.store.save(ctx, colUsers, users)
}

// Create inserts a user. Duplicate emails are rejected.
func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperror.NewDuplicate("user", "email", u.Email)
		}
	}
	users = append(users, toStored(u))
	return r.saveAll(ctx, users)
}

// GetByID retrieves a user.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, su := range users {
		if su.User.ID == userID {
			return su.toDomain(), nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

// GetByEmail retrieves a user by email, case-insensitive.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, su := range users {
		if strings.EqualFold(su.Email, email) {
			return su.toDomain(), nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

// List retrieves all users, name ascending.
func (r *UserRepo) List(ctx context.Context) ([]*auth.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*auth.User, 0, len(users))
	for _, su := range users {
		result = append(result, su.toDomain())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Delete removes a user.
func (r *UserRepo) Delete(ctx context.Context, userID id.ID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for i, su := range users {
		if su.User.ID == userID {
			users = append(users[:i], users[i+1:]...)
			return r.saveAll(ctx, users)
		}
	}
	return apperror.NewNotFound("user", userID.String())
}
