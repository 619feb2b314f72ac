package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("produces PHC encoded argon2id string", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
		require.Len(t, strings.Split(hash, "$"), 6)
	})

	t.Run("salts are random", func(t *testing.T) {
		a, err := HashPassword("same password")
		require.NoError(t, err)
		b, err := HashPassword("same password")
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password123")
	require.NoError(t, err)

	t.Run("accepts the original password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("password123", hash))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		require.ErrorIs(t, VerifyPassword("password124", hash), ErrMismatch)
	})

	t.Run("rejects malformed hashes without panicking", func(t *testing.T) {
		for _, bad := range []string{
			"",
			"not a hash at all",
			"$argon2id$v=19$m=19456,t=2,p=1$short",
			"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
			"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
			"$argon2id$v=19$m=x,t=y,p=z$c2FsdA$aGFzaA",
			"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
			"$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!",
		} {
			require.Error(t, VerifyPassword("password123", bad), "hash %q", bad)
		}
	})

	t.Run("empty password still verifies against its own hash", func(t *testing.T) {
		empty, err := HashPassword("")
		require.NoError(t, err)
		require.NoError(t, VerifyPassword("", empty))
		require.Error(t, VerifyPassword("nonempty", empty))
	})
}
