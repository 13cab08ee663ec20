package apiclient

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeToken(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   "u-1",
		"email":    "m@acme.com",
		"role":     "manager",
		"tenantId": "acme",
		"exp":      exp.Unix(),
	}).SignedString([]byte("server-only"))
	require.NoError(t, err)

	info, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", info.UserID)
	assert.Equal(t, "manager", info.Role)
	assert.Equal(t, "acme", info.TenantID)
	require.NotNil(t, info.ExpiresAt)
	assert.True(t, exp.Equal(*info.ExpiresAt))
}

func TestDecodeTokenSubjectFallback(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-9"}).SignedString([]byte("k"))
	require.NoError(t, err)

	info, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-9", info.UserID)
	assert.Nil(t, info.ExpiresAt)
}

func TestDecodeTokenMalformed(t *testing.T) {
	_, err := DecodeToken("not-a-jwt")
	assert.Error(t, err)
}
