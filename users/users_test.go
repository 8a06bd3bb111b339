package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wepredict/go-api-server/users"
)

func TestHashPassword(t *testing.T) {
	t.Run("verify roundtrip", func(t *testing.T) {
		hash, err := users.HashPassword("secret1")
		require.NoError(t, err)
		require.NotEqual(t, "secret1", hash)
		require.True(t, users.CheckPasswordHash("secret1", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		hash, err := users.HashPassword("secret1")
		require.NoError(t, err)
		require.False(t, users.CheckPasswordHash("secret2", hash))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		h1, err := users.HashPassword("secret1")
		require.NoError(t, err)
		h2, err := users.HashPassword("secret1")
		require.NoError(t, err)
		require.NotEqual(t, h1, h2)
		require.True(t, users.CheckPasswordHash("secret1", h1))
		require.True(t, users.CheckPasswordHash("secret1", h2))
	})

	t.Run("garbage hash never verifies", func(t *testing.T) {
		require.False(t, users.CheckPasswordHash("secret1", "not-a-bcrypt-hash"))
	})
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, users.ValidatePassword("secret1"))
	require.Error(t, users.ValidatePassword("short"))
	require.Error(t, users.ValidatePassword(""))
}

func TestSanitized(t *testing.T) {
	u := &users.User{ID: 1, Email: "a@x.com", PasswordHash: "$2a$10$hash"}

	s := u.Sanitized()
	require.Empty(t, s.PasswordHash)
	require.Equal(t, "a@x.com", s.Email)
	// original untouched
	require.Equal(t, "$2a$10$hash", u.PasswordHash)

	var nilUser *users.User
	require.Nil(t, nilUser.Sanitized())
}
