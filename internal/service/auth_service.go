package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/depomarket/retail-service/internal/auth"
	"github.com/depomarket/retail-service/internal/config"
	"github.com/depomarket/retail-service/internal/domain"
	"github.com/depomarket/retail-service/internal/repository"
	apperrors "github.com/depomarket/retail-service/pkg/errorutil"
)

// AuthService coordinates admin login and password flows.
type AuthService struct {
	admins     repository.AdminRepository
	resets     *auth.PasswordResetStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AdminRepo  repository.AdminRepository
	ResetStore *auth.PasswordResetStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		admins:     deps.AdminRepo,
		resets:     deps.ResetStore,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates an admin and returns a role-bearing token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !admin.Active {
		return nil, "", time.Time{}, apperrors.NewForbidden("admin deactivated")
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// ChangePassword verifies the current password before replacing it.
func (s *AuthService) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(admin.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password incorrect")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.admins.UpdatePassword(ctx, admin.ID, hash)
}

// RequestPasswordReset issues a one-shot reset token for the email. An
// unknown email returns no error and no token so the endpoint does not leak
// which addresses exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return s.resets.Issue(ctx, admin.ID)
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	adminID, err := s.resets.Consume(ctx, token)
	if err != nil {
		if err == auth.ErrResetTokenInvalid {
			return apperrors.NewUnauthorized("reset token invalid or expired")
		}
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.admins.UpdatePassword(ctx, adminID, hash)
}
