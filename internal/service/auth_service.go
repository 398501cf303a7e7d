package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lodge-registration/internal/auth"
	"github.com/spec-kit/lodge-registration/internal/config"
	"github.com/spec-kit/lodge-registration/internal/domain"
	"github.com/spec-kit/lodge-registration/internal/repository"
	apperrors "github.com/spec-kit/lodge-registration/pkg/util"
)

const minPasswordLength = 6

// AuthService coordinates the two identity domains: end-user sessions and
// the admin gateway (credentials plus allow-list membership).
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	setupToken string
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	AdminRepo repository.AdminRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		setupToken: cfg.Auth.AdminSetupToken,
	}
}

// RegisterUser creates a new end-user account and issues a session token.
func (s *AuthService) RegisterUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email required", nil)
	}
	if len(password) < minPasswordLength {
		return nil, "", time.Time{}, apperrors.NewValidationError("password must be at least 6 characters long", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, domain.SubjectTypeUser)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// LoginUser authenticates an end-user. No authorization tier exists beyond
// holding a session.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.verifyCredentials(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, domain.SubjectTypeUser)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// LoginAdmin authenticates against credentials first, then checks the admin
// allow-list. A valid account without membership gets "access denied" and no
// token: an authorization outcome, distinct from bad credentials.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.verifyCredentials(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	isAdmin, err := s.admins.IsAdmin(ctx, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !isAdmin {
		return nil, "", time.Time{}, apperrors.NewForbidden("access denied")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, domain.SubjectTypeAdmin)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// SetupAdmin bootstraps an admin: creates the account and adds it to the
// allow-list. Gated by the configured setup token; disabled when unset.
func (s *AuthService) SetupAdmin(ctx context.Context, setupToken, email, password string) (*domain.User, error) {
	if s.setupToken == "" {
		return nil, apperrors.NewForbidden("admin setup is disabled")
	}
	if setupToken != s.setupToken {
		return nil, apperrors.NewForbidden("access denied")
	}

	user, _, _, err := s.RegisterUser(ctx, email, password)
	if err != nil {
		return nil, err
	}

	admin := &domain.AdminUser{Email: user.Email}
	if err := s.admins.Add(ctx, admin); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Logout is a no-op for stateless JWT sessions.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) verifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return user, nil
}
