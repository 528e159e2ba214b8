package service

import (
	"testing"
	"time"

	apperrors "gearguard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key"

func newTestJWTService(accessTTL, refreshTTL time.Duration) JWTService {
	return NewJWTService(testSecret, accessTTL, refreshTTL, zap.NewNop())
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)

	access, refresh, err := svc.GenerateTokens(42, 3)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, 42, accessClaims.UserID)
	assert.Equal(t, uint64(3), accessClaims.RoleID)
	assert.False(t, accessClaims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)
	access, _, err := svc.GenerateTokens(1, 1)
	require.NoError(t, err)

	other := NewJWTService("another-secret", time.Hour, 24*time.Hour, zap.NewNop())
	_, err = other.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService(-time.Minute, 24*time.Hour)
	access, _, err := svc.GenerateTokens(1, 1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)
	_, err := svc.ValidateToken("не.токен.вовсе")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
