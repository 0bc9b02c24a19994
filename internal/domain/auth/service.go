package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"stylos/internal/core/appctx"
	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/tx"
	"stylos/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 6,
	}
}

// Auditor records user administration actions. Optional: nil disables
// auditing (local fallback mode).
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes any) error
}

// Service provides authentication and user administration.
type Service struct {
	repo       Repository
	txManager  tx.Manager
	jwtService *JWTService
	auditor    Auditor
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(repo Repository, txManager tx.Manager, jwtService *JWTService, auditor Auditor, config ServiceConfig) *Service {
	return &Service{
		repo:       repo,
		txManager:  txManager,
		jwtService: jwtService,
		auditor:    auditor,
		config:     config,
	}
}

// Login authenticates and returns a signed session.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	user, err := s.repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role)

	return &Session{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// Register creates a new user account. ADMIN only.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if !appctx.IsAdmin(ctx) {
		return nil, apperror.NewForbidden("user administration requires the ADMIN role")
	}

	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	user := NewUser(req.Name, req.Email, req.Role)
	user.Avatar = req.Avatar
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("user", "email", req.Email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(passwordHash)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, user.ID, "register", map[string]any{
		"email": user.Email,
		"role":  user.Role,
	})
	logger.Info(ctx, "user registered",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role)

	return user, nil
}

// audit best-effort logs a user administration action.
func (s *Service) audit(ctx context.Context, userID id.ID, action string, changes any) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.LogChange(ctx, "user", userID, action, changes); err != nil {
		logger.Warn(ctx, "user audit failed", "id", userID, "error", err)
	}
}

// GetByID retrieves a user.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, err
	}
	return user, nil
}

// List retrieves all users. ADMIN only.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	if !appctx.IsAdmin(ctx) {
		return nil, apperror.NewForbidden("user administration requires the ADMIN role")
	}
	return s.repo.List(ctx)
}

// Delete removes a user account. ADMIN only; self-deletion is rejected.
func (s *Service) Delete(ctx context.Context, userID id.ID) error {
	if !appctx.IsAdmin(ctx) {
		return apperror.NewForbidden("user administration requires the ADMIN role")
	}
	if appctx.GetUserID(ctx) == userID.String() {
		return apperror.NewValidation("cannot delete your own account").
			WithDetail("field", "userId")
	}

	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.audit(ctx, userID, "delete", nil)
	logger.Info(ctx, "user deleted", "user_id", userID)
	return nil
}
