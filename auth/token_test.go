package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("admin@example.com", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := GetEmailFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", email)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("admin@example.com", []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = GetEmailFromToken(token, []byte("wrong"))
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("admin@example.com", []byte("secret"), -time.Minute)
	require.NoError(t, err)

	_, err = GetEmailFromToken(token, []byte("secret"))
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	_, err := GetEmailFromToken("not-a-token", []byte("secret"))
	assert.Error(t, err)
}
