package config

import (
	"time"
)

type AuthConfig interface {
	GetJWTSecret() string
	GetTokenTTL() time.Duration
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleRedirectURL() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "")
}

// Session tokens are valid for 24 hours unless overridden.
func (Auth) GetTokenTTL() time.Duration {
	raw := GetEnv("JWT_TTL", "")
	if raw == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func (Auth) GetGoogleClientID() string {
	return GetEnv("GOOGLE_CLIENT_ID", "")
}

func (Auth) GetGoogleClientSecret() string {
	return GetEnv("GOOGLE_CLIENT_SECRET", "")
}

func (Auth) GetGoogleRedirectURL() string {
	return GetEnv("GOOGLE_REDIRECT_URL", "")
}
