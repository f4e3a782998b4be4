package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("accepts passwords at or above the minimum length", func(t *testing.T) {
		for _, password := range []string{
			"moonstone",
			strings.Repeat("x", 64),
			"p@ssw0rd!",
		} {
			hash, err := HashPassword(password)
			require.NoError(t, err)
			assert.NotEqual(t, password, hash)
			assert.True(t, strings.HasPrefix(hash, "$2a$"), "expected a bcrypt hash, got %q", hash)
		}
	})

	t.Run("rejects short passwords with the sentinel", func(t *testing.T) {
		for _, password := range []string{"", "short", "1234567", "       "} {
			hash, err := HashPassword(password)
			assert.ErrorIs(t, err, ErrPasswordTooShort)
			assert.Empty(t, hash)
		}
	})

	t.Run("salts every hash", func(t *testing.T) {
		first, err := HashPassword("moonstone42")
		require.NoError(t, err)
		second, err := HashPassword("moonstone42")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("Moonstone42")
	require.NoError(t, err)

	t.Run("matches the original password", func(t *testing.T) {
		assert.True(t, CheckPassword("Moonstone42", hash))
	})

	t.Run("rejects everything else", func(t *testing.T) {
		assert.False(t, CheckPassword("moonstone42", hash), "comparison is case sensitive")
		assert.False(t, CheckPassword("wrong-password", hash))
		assert.False(t, CheckPassword("", hash))
	})

	t.Run("rejects garbage hashes", func(t *testing.T) {
		assert.False(t, CheckPassword("Moonstone42", "not-a-hash"))
		assert.False(t, CheckPassword("Moonstone42", ""))
	})
}
