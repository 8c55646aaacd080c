package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTTokenService(testSecret, "buyback-api")

	access, refresh, expiresIn, err := svc.GenerateAdminTokens(42)
	require.NoError(t, err)
	assert.NotEmpty(t, refresh)
	assert.Positive(t, expiresIn)

	adminID, err := svc.ValidateAdminToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), adminID)
}

func TestValidateAdminToken_RejectsRefreshToken(t *testing.T) {
	svc := NewJWTTokenService(testSecret, "buyback-api")

	_, refresh, _, err := svc.GenerateAdminTokens(7)
	require.NoError(t, err)

	_, err = svc.ValidateAdminToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAdminToken_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTTokenService(testSecret, "buyback-api")
	other := NewJWTTokenService("ffffffffffffffffffffffffffffffff", "buyback-api")

	access, _, _, err := svc.GenerateAdminTokens(7)
	require.NoError(t, err)

	_, err = other.ValidateAdminToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAdminToken_RejectsGarbage(t *testing.T) {
	svc := NewJWTTokenService(testSecret, "buyback-api")

	_, err := svc.ValidateAdminToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
