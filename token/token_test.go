package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wepredict/go-api-server/internal/apperrors"
	"github.com/wepredict/go-api-server/token"
	"github.com/wepredict/go-api-server/users"
)

const testSecret = "test-secret-1234"

var testUser = &users.User{
	ID:       42,
	Email:    "john.doe@example.com",
	FullName: "John Doe",
	Provider: users.ProviderLocal,
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := token.New("", time.Hour)
	require.Error(t, err)
}

func TestIssueValidateRoundtrip(t *testing.T) {
	m, err := token.New(testSecret, 24*time.Hour)
	require.NoError(t, err)

	signed, err := m.Issue(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Validate(signed)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "john.doe@example.com", claims.Email)
	require.Equal(t, "John Doe", claims.Username)
	require.NotEmpty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestValidateExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	m, err := token.New(testSecret, time.Hour, token.WithNowTime(func() time.Time { return clock }))
	require.NoError(t, err)

	signed, err := m.Issue(testUser)
	require.NoError(t, err)

	// still valid just before expiry
	clock = now.Add(59 * time.Minute)
	_, err = m.Validate(signed)
	require.NoError(t, err)

	clock = now.Add(2 * time.Hour)
	_, err = m.Validate(signed)
	require.ErrorIs(t, err, token.ErrExpired)
	require.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestValidateWrongSecret(t *testing.T) {
	issuer, err := token.New(testSecret, time.Hour)
	require.NoError(t, err)
	validator, err := token.New("another-secret", time.Hour)
	require.NoError(t, err)

	signed, err := issuer.Issue(testUser)
	require.NoError(t, err)

	_, err = validator.Validate(signed)
	require.ErrorIs(t, err, token.ErrSignature)
	require.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestValidateMalformed(t *testing.T) {
	m, err := token.New(testSecret, time.Hour)
	require.NoError(t, err)

	for _, raw := range []string{"not-a-jwt", "a.b", "a.b.c"} {
		_, err := m.Validate(raw)
		require.ErrorIs(t, err, token.ErrMalformed, "input %q", raw)
	}
}

func TestValidateMissing(t *testing.T) {
	m, err := token.New(testSecret, time.Hour)
	require.NoError(t, err)

	for _, raw := range []string{"", "   "} {
		_, err := m.Validate(raw)
		require.ErrorIs(t, err, token.ErrMissing)
	}
}
