package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar           = "PORT"
	appNameVar           = "APP_NAME"
	databasePathVar      = "DATABASE_PATH"
	sessionBackendVar    = "SESSION_BACKEND"
	defaultDatabasePath  = "./data/users.db"
	SessionBackendMemory = "memory"
	SessionBackendCache  = "cache"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Session Auth")
}

func (EnvVars) GetDatabasePath() string {
	return GetEnv(databasePathVar, defaultDatabasePath)
}

// GetSessionBackend selects the session store: "memory" (default) or "cache"
// for the bigcache-backed store with storage-side expiry.
func (EnvVars) GetSessionBackend() string {
	return GetEnv(sessionBackendVar, SessionBackendMemory)
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
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
