package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestSessionJWT(t *testing.T) {
	const secret = "test-secret"

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-123", secret, 1)
		require.NoError(t, err)

		sessionID, err := ParseSessionJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "session-123", sessionID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-123", secret, 1)
		require.NoError(t, err)

		_, err = ParseSessionJWT(token, "other-secret")
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseSessionJWT("not-a-jwt", secret)
		assert.Error(t, err)
	})
}
