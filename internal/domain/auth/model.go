// Package auth provides authentication and user administration.
package auth

import (
	"context"
	"net/mail"
	"time"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
)

// Role grants a coarse permission level. A user holds exactly one role.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStock Role = "ESTOQUE"
	RoleSales Role = "VENDAS"
)

// Roles lists all valid roles.
var Roles = []Role{RoleAdmin, RoleStock, RoleSales}

// ValidRole checks if the role is one of the known values.
func ValidRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is an operator account. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Role         Role      `db:"role" json:"role"`
	Avatar       string    `db:"avatar" json:"avatar,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a user with a fresh id. The password hash is set by the
// service.
func NewUser(name, email string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:        id.New(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks business rules.
func (u *User) Validate(ctx context.Context) error {
	if u.Name == "" {
		return apperror.NewValidation("user name is required").
			WithDetail("field", "name")
	}
	if u.Email == "" {
		return apperror.NewValidation("email is required").
			WithDetail("field", "email")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return apperror.NewValidation("invalid email address").
			WithDetail("field", "email").
			WithDetail("value", u.Email)
	}
	if !ValidRole(u.Role) {
		return apperror.NewValidation("invalid role").
			WithDetail("field", "role").
			WithDetail("value", string(u.Role))
	}
	return nil
}

// Credentials is a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar"`
}

// Session is a successful login result.
type Session struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *User     `json:"user"`
}

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, userID id.ID) error
}
