package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// The pepper is process-wide and loaded once; point it at a scratch
	// file before any test hashes a password.
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		os.Exit(1)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	t.Run("salted hashes differ per call", func(t *testing.T) {
		other, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		require.NotEqual(t, hash, other)
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	t.Run("accepts matching password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("s3cret!", hash))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		require.ErrorIs(t, VerifyPassword("not-it", hash), ErrPasswordMismatch)
	})

	t.Run("rejects malformed hash", func(t *testing.T) {
		require.Error(t, VerifyPassword("s3cret!", "$argon2id$bogus"))
	})

	t.Run("rejects non-argon2id hash", func(t *testing.T) {
		require.Error(t, VerifyPassword("s3cret!", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"))
	})
}
