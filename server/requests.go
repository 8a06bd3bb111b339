package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wepredict/go-api-server/internal/apperrors"
)

// Request DTOs. Field names are the wire contract; unknown fields are
// rejected.

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if strings.TrimSpace(r.FullName) == "" {
		return apperrors.Validation("full_name is required")
	}
	if r.Password == "" {
		return apperrors.Validation("password is required")
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return apperrors.Validation("password is required")
	}
	return nil
}

type googleAuthRequest struct {
	GoogleSub string `json:"google_sub"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
}

func (r googleAuthRequest) Validate() error {
	if strings.TrimSpace(r.GoogleSub) == "" {
		return apperrors.Validation("google_sub is required")
	}
	return validateEmail(r.Email)
}

type googleTokenRequest struct {
	IDToken string `json:"id_token"`
	Code    string `json:"code,omitempty"`
}

func (r googleTokenRequest) Validate() error {
	if strings.TrimSpace(r.IDToken) == "" && strings.TrimSpace(r.Code) == "" {
		return apperrors.Validation("id_token is required")
	}
	return nil
}

type chatRequest struct {
	Message     string   `json:"message"`
	Model       string   `json:"model,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
}

func (r chatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return apperrors.Validation("message is required")
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 2) {
		return apperrors.Validation("temperature must be between 0 and 2")
	}
	if r.MaxTokens < 0 {
		return apperrors.Validation("max_tokens must not be negative")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.Validation("email is required")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return apperrors.Validation("invalid email format")
	}
	return nil
}

type validator interface {
	Validate() error
}

// decodeJSON parses a request body into dst and runs its validation.
func decodeJSON(r *http.Request, dst validator) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.ValidationWrap(err, "invalid request body")
	}
	return dst.Validate()
}
