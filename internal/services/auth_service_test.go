package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/loteriainsights/megasena-backend/internal/config"
)

func newTestAuthService(t *testing.T, password string) *AuthServiceImpl {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Admin.Email = "admin@example.com"
	cfg.Admin.PasswordHash = string(hash)
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600
	return NewAuthService(cfg)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t, "s3cret")

	signed, err := svc.Login(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	svc := newTestAuthService(t, "s3cret")

	_, err := svc.Login(context.Background(), "ADMIN@example.com", "s3cret")
	assert.NoError(t, err)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService(t, "s3cret")

	_, err := svc.Login(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
