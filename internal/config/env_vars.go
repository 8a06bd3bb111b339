package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar  = "PORT"
	appNameVar  = "APP_NAME"
	databaseVar = "DATABASE_DSN"
	environVar  = "ENV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "WePredict API")
}

func (EnvVars) GetDatabaseDSN() string {
	return GetEnv(databaseVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(environVar)
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
