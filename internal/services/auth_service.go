package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"github.com/loteriainsights/megasena-backend/internal/config"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl authenticates the configured administrator and issues
// HS256 tokens for the protected history endpoints.
type AuthServiceImpl struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{cfg: cfg}
}

// Login verifies the admin credentials and returns a signed JWT. The
// stored password is a bcrypt hash; comparison failures and unknown
// emails produce the same error so callers learn nothing about which
// field was wrong.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	if !strings.EqualFold(email, s.cfg.Admin.Email) {
		slog.Warn("Login attempt with unknown email", "email", email)
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Admin.PasswordHash), []byte(password)); err != nil {
		slog.Warn("Login attempt with wrong password", "email", email)
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  s.cfg.Admin.Email,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(s.cfg.JWT.ExpiresIn) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	slog.Info("Admin logged in", "email", s.cfg.Admin.Email)
	return signed, nil
}
