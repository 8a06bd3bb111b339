// Package googleauth verifies Google-issued ID tokens against the Google
// OIDC issuer and optionally exchanges authorization codes for them.
package googleauth

import (
	"context"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/wepredict/go-api-server/internal/apperrors"
	"golang.org/x/oauth2"
)

const (
	googleIssuer = "https://accounts.google.com"
	// fallbackName is used when the token carries neither name nor email.
	fallbackName = "Google User"
)

// Identity holds the claims extracted from a verified Google ID token.
type Identity struct {
	Sub      string
	Email    string
	FullName string
}

// Verifier validates a raw Google ID token and extracts the identity.
type Verifier interface {
	Verify(ctx context.Context, rawIDToken string) (*Identity, error)
}

// OIDCVerifier verifies ID tokens with Google's published keys, fetched
// and cached by the oidc library. The provider is created lazily so a
// deployment without Google configured still starts.
type OIDCVerifier struct {
	clientID     string
	clientSecret string
	redirectURL  string

	mu       sync.Mutex
	provider *oidc.Provider
}

var _ Verifier = (*OIDCVerifier)(nil)

// Config carries the Google OAuth settings. ClientSecret and RedirectURL
// are only needed for the authorization-code exchange path.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func New(cfg Config) *OIDCVerifier {
	return &OIDCVerifier{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURL:  cfg.RedirectURL,
	}
}

// Verify checks the token's signature, issuer, audience and expiry, and
// returns the subject, email and display name. All failures are
// authentication-kind; none of them touch the credential store.
func (v *OIDCVerifier) Verify(ctx context.Context, rawIDToken string) (*Identity, error) {
	if v.clientID == "" {
		return nil, apperrors.Authentication("google sign-in is not configured")
	}

	provider, err := v.getProvider(ctx)
	if err != nil {
		return nil, apperrors.Dependency(err, true, "google identity service unavailable")
	}

	idToken, err := provider.Verifier(&oidc.Config{ClientID: v.clientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return nil, apperrors.AuthenticationWrap(err, "invalid or expired google token")
	}

	var claims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, apperrors.AuthenticationWrap(err, "invalid google token payload")
	}
	if claims.Sub == "" {
		return nil, apperrors.Authentication("google token carries no subject")
	}

	return &Identity{
		Sub:      claims.Sub,
		Email:    claims.Email,
		FullName: displayName(claims.Name, claims.Email),
	}, nil
}

// ExchangeCode swaps an authorization code for the raw ID token inside
// Google's token response. Requires client secret and redirect URL.
func (v *OIDCVerifier) ExchangeCode(ctx context.Context, code string) (string, error) {
	if v.clientID == "" || v.clientSecret == "" || v.redirectURL == "" {
		return "", apperrors.Authentication("google code exchange is not configured")
	}

	provider, err := v.getProvider(ctx)
	if err != nil {
		return "", apperrors.Dependency(err, true, "google identity service unavailable")
	}

	conf := &oauth2.Config{
		ClientID:     v.clientID,
		ClientSecret: v.clientSecret,
		RedirectURL:  v.redirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", apperrors.AuthenticationWrap(err, "google code exchange failed")
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", apperrors.Authentication("no id_token in google response")
	}
	return rawIDToken, nil
}

func (v *OIDCVerifier) getProvider(ctx context.Context) (*oidc.Provider, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.provider != nil {
		return v.provider, nil
	}
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, err
	}
	v.provider = provider
	return provider, nil
}

// displayName falls back from the name claim to the email, then to a
// generic placeholder.
func displayName(name, email string) string {
	if name != "" {
		return name
	}
	if email != "" {
		return email
	}
	return fallbackName
}
