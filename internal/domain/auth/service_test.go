package auth

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"stylos/internal/core/appctx"
	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/tx"
)

// Mock objects

type fakeUserRepo struct {
	users map[id.ID]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[id.ID]*User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*User, error) {
	out := make([]*User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, userID id.ID) error {
	if _, ok := f.users[userID]; !ok {
		return apperror.NewNotFound("user", userID.String())
	}
	delete(f.users, userID)
	return nil
}

func newAuthService(repo Repository) *Service {
	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(repo, tx.Noop{}, jwtService, nil, DefaultServiceConfig())
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, role Role) *User {
	t.Helper()
	u := NewUser("Test User", email, role)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u.PasswordHash = string(hash)
	repo.users[u.ID] = u
	return u
}

func asAdmin(userID string) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: userID,
		Role:   "ADMIN",
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "admin@stylos.com", "stylos123", RoleAdmin)
	service := newAuthService(repo)

	session, err := service.Login(context.Background(), Credentials{
		Email:    "admin@stylos.com",
		Password: "stylos123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.TokenType != "Bearer" {
		t.Errorf("expected Bearer, got %s", session.TokenType)
	}
	if session.User.ID != u.ID {
		t.Error("expected session to carry the authenticated user")
	}

	// The issued token round-trips through validation.
	userCtx, err := service.jwtService.ValidateToken(session.AccessToken)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if userCtx.UserID != u.ID.String() || userCtx.Role != "ADMIN" {
		t.Errorf("unexpected token claims: %+v", userCtx)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "admin@stylos.com", "stylos123", RoleAdmin)
	service := newAuthService(repo)

	tests := []struct {
		name  string
		creds Credentials
	}{
		{"wrong password", Credentials{Email: "admin@stylos.com", Password: "wrong"}},
		{"unknown email", Credentials{Email: "nobody@stylos.com", Password: "stylos123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.creds)
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeUnauthorized {
				t.Fatalf("expected UNAUTHORIZED, got %v", err)
			}
		})
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "admin@stylos.com", "stylos123", RoleAdmin)

	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken(u)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
	if _, err := issuer.ValidateToken(token + "x"); err == nil {
		t.Error("expected error for tampered token")
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	admin := seedUser(t, repo, "admin@stylos.com", "stylos123", RoleAdmin)
	service := newAuthService(repo)
	ctx := asAdmin(admin.ID.String())

	u, err := service.Register(ctx, RegisterRequest{
		Name:     "Julia Estoque",
		Email:    "estoque@stylos.com",
		Password: "segredo1",
		Role:     RoleStock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "segredo1" {
		t.Error("expected password to be hashed")
	}

	// The new account can log in.
	if _, err := service.Login(context.Background(), Credentials{
		Email:    "estoque@stylos.com",
		Password: "segredo1",
	}); err != nil {
		t.Fatalf("login with registered account: %v", err)
	}
}

func TestRegisterRejections(t *testing.T) {
	repo := newFakeUserRepo()
	admin := seedUser(t, repo, "admin@stylos.com", "stylos123", RoleAdmin)
	service := newAuthService(repo)
	adminCtx := asAdmin(admin.ID.String())

	valid := RegisterRequest{Name: "X", Email: "x@stylos.com", Password: "segredo1", Role: RoleSales}

	t.Run("non-admin caller", func(t *testing.T) {
		_, err := service.Register(context.Background(), valid)
		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeForbidden {
			t.Fatalf("expected FORBIDDEN, got %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		req := valid
		req.Password = "abc"
		if _, err := service.Register(adminCtx, req); err == nil {
			t.Fatal("expected error for short password")
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		if _, err := service.Register(adminCtx, req); err == nil {
			t.Fatal("expected error for malformed email")
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		req := valid
		req.Role = "GERENTE"
		if _, err := service.Register(adminCtx, req); err == nil {
			t.Fatal("expected error for unknown role")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := valid
		req.Email = "admin@stylos.com"
		_, err := service.Register(adminCtx, req)
		if !apperror.IsDuplicate(err) {
			t.Fatalf("expected DUPLICATE, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	repo := newFakeUserRepo()
	admin := seedUser(t, repo, "admin@stylos.com", "stylos123", RoleAdmin)
	other := seedUser(t, repo, "vendas@stylos.com", "stylos123", RoleSales)
	service := newAuthService(repo)
	ctx := asAdmin(admin.ID.String())

	// Self-deletion is refused.
	if err := service.Delete(ctx, admin.ID); err == nil {
		t.Fatal("expected error deleting own account")
	}

	if err := service.Delete(ctx, other.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.GetByID(ctx, other.ID); !apperror.IsNotFound(err) {
		t.Error("expected user to be gone")
	}

	// Non-admins cannot delete.
	if err := service.Delete(context.Background(), admin.ID); err == nil {
		t.Fatal("expected FORBIDDEN for anonymous delete")
	}
}
