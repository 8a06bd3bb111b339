package googleauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wepredict/go-api-server/internal/apperrors"
)

func TestVerifyWithoutClientID(t *testing.T) {
	v := New(Config{})

	_, err := v.Verify(context.Background(), "some-token")
	require.Error(t, err)
	require.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestExchangeCodeWithoutSecret(t *testing.T) {
	v := New(Config{ClientID: "client-1"})

	_, err := v.ExchangeCode(context.Background(), "auth-code")
	require.Error(t, err)
	require.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestDisplayName(t *testing.T) {
	t.Run("name wins", func(t *testing.T) {
		require.Equal(t, "Jane Doe", displayName("Jane Doe", "jane@example.com"))
	})
	t.Run("email fallback", func(t *testing.T) {
		require.Equal(t, "jane@example.com", displayName("", "jane@example.com"))
	})
	t.Run("generic fallback", func(t *testing.T) {
		require.Equal(t, "Google User", displayName("", ""))
	})
}
