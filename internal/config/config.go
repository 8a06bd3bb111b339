package config

import "fmt"

type Config interface {
	EnvConfig
	CorsConfig
	AuthConfig
	ChatConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDatabaseDSN() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Auth
	Chat
}

func New() Config {
	return mainConfig{}
}

// Validate checks configuration the process cannot run without. A missing
// JWT secret is a hard failure: substituting a well-known default would
// make every issued session token forgeable.
func Validate(c Config) error {
	if c.GetJWTSecret() == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.GetDatabaseDSN() == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	return nil
}
