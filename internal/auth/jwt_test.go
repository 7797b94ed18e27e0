package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.GenerateToken("01HZX", "pilot@example.com", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "01HZX", claims.UserID)
	assert.Equal(t, "pilot@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenManager_RejectsOtherSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).GenerateToken("u", "e@example.com", "passenger")
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateToken("u", "e@example.com", "passenger")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_EmptySecret(t *testing.T) {
	m := NewTokenManager("", time.Hour)

	_, err := m.GenerateToken("u", "e@example.com", "passenger")
	assert.ErrorIs(t, err, ErrSecretNotInitialized)

	_, err = m.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrSecretNotInitialized)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("abcdef")
	require.NoError(t, err)
	assert.NotEqual(t, "abcdef", hash)

	assert.NoError(t, VerifyPassword("abcdef", hash))
	assert.Error(t, VerifyPassword("abcdeg", hash))
}
