package apperrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wepredict/go-api-server/internal/apperrors"
)

func TestKindOf(t *testing.T) {
	t.Run("tagged error", func(t *testing.T) {
		err := apperrors.Validation("email already registered")
		require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("wrapped tagged error", func(t *testing.T) {
		inner := apperrors.Authentication("invalid credentials")
		err := apperrors.Wrapf(inner, "login")
		require.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
	})

	t.Run("untagged error", func(t *testing.T) {
		require.Equal(t, apperrors.Kind(0), apperrors.KindOf(errors.New("boom")))
	})
}

func TestUnwrapPreservesSentinels(t *testing.T) {
	sentinel := errors.New("user not found")
	err := apperrors.AuthenticationWrap(sentinel, "invalid credentials")
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, "invalid credentials", apperrors.MessageOf(err, ""))
}

func TestDependencyRetryable(t *testing.T) {
	err := apperrors.Dependency(errors.New("connection refused"), true, "credential store unavailable")

	var tagged *apperrors.Error
	require.ErrorAs(t, err, &tagged)
	require.True(t, tagged.Retryable)
	require.Equal(t, apperrors.KindDependency, tagged.Kind)
}

func TestMessageOfFallback(t *testing.T) {
	require.Equal(t, "internal error", apperrors.MessageOf(errors.New("raw"), "internal error"))
}
