package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/wepredict/go-api-server/internal/apperrors"
	"github.com/wepredict/go-api-server/token"
)

// ContextKey is the type used for values this package stores on a
// request context.
type ContextKey string

const claimsContextKey ContextKey = "authClaims"

// RequireAuth validates the bearer token on the request and injects the
// session claims into the request context. Requests without a valid
// token never reach the wrapped handler.
func (s *Server) RequireAuth() func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			claims, err := s.tokens.Validate(raw)
			if err != nil {
				s.writeError(w, r, apperrors.AuthenticationWrap(err, authFailureMessage(err)), "unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// ClaimsFromContext returns the session claims injected by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*token.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, token.ErrMissing):
		return "missing bearer token"
	case errors.Is(err, token.ErrExpired):
		return "token has expired"
	case errors.Is(err, token.ErrSignature):
		return "invalid token signature"
	default:
		return "invalid token"
	}
}
