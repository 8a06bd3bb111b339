package server

import (
	"net/http"
	"strings"

	"github.com/wepredict/go-api-server/internal/apperrors"
)

// RegisterHandler creates a local account and returns the sanitized user
// plus a session token.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err, "invalid request")
			return
		}

		result, err := s.auth.Register(r.Context(), req.Email, req.FullName, req.Password)
		if err != nil {
			s.writeError(w, r, err, "could not register user")
			return
		}
		s.writeSuccess(w, r, http.StatusCreated, "user registered successfully", result)
	}
}

// LoginHandler verifies a local password.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err, "invalid request")
			return
		}

		result, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err, "could not log in")
			return
		}
		s.writeSuccess(w, r, http.StatusOK, "login successful", result)
	}
}

// RegisterGoogleHandler creates an account from a Google identity the
// caller has already verified.
func (s *Server) RegisterGoogleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req googleAuthRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err, "invalid request")
			return
		}

		result, err := s.auth.RegisterWithGoogle(r.Context(), req.GoogleSub, req.Email, req.FullName)
		if err != nil {
			s.writeError(w, r, err, "could not register google user")
			return
		}
		s.writeSuccess(w, r, http.StatusCreated, "google user registered successfully", result)
	}
}

// LoginGoogleHandler signs in a Google identity, creating the account on
// first contact.
func (s *Server) LoginGoogleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req googleAuthRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err, "invalid request")
			return
		}

		result, err := s.auth.LoginWithGoogle(r.Context(), req.GoogleSub, req.Email, req.FullName)
		if err != nil {
			s.writeError(w, r, err, "could not log in with google")
			return
		}
		s.writeSuccess(w, r, http.StatusOK, "google login successful", result)
	}
}

// GoogleCallbackHandler accepts either a raw Google ID token or an
// authorization code, verifies the identity server-side, and signs the
// user in, creating the account on first contact.
func (s *Server) GoogleCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req googleTokenRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err, "invalid request")
			return
		}

		rawIDToken := strings.TrimSpace(req.IDToken)
		if rawIDToken == "" {
			if s.exchanger == nil {
				s.writeError(w, r, apperrors.Validation("google code exchange is not configured"), "invalid request")
				return
			}
			var err error
			rawIDToken, err = s.exchanger.ExchangeCode(r.Context(), strings.TrimSpace(req.Code))
			if err != nil {
				s.writeError(w, r, err, "could not log in with google")
				return
			}
		}

		result, err := s.auth.AuthenticateWithGoogleToken(r.Context(), rawIDToken)
		if err != nil {
			s.writeError(w, r, err, "could not log in with google")
			return
		}
		s.writeSuccess(w, r, http.StatusOK, "google login successful", result)
	}
}

// ProfileHandler returns the account behind the bearer token.
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			s.writeError(w, r, apperrors.Authentication("missing bearer token"), "unauthorized")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			s.writeError(w, r, apperrors.AuthenticationWrap(err, "invalid token"), "unauthorized")
			return
		}

		user, err := s.auth.Profile(r.Context(), userID)
		if err != nil {
			s.writeError(w, r, err, "could not load profile")
			return
		}
		s.writeSuccess(w, r, http.StatusOK, "profile retrieved successfully", map[string]any{"user": user})
	}
}

// HealthHandler reports process liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeSuccess(w, r, http.StatusOK, "ok", map[string]string{"app": s.config.GetAppName()})
	}
}
