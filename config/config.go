package config

import (
	iconfig "github.com/tessera-app/tessera/shared/config"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Tracing  TracingConfig
}

type ServerConfig struct {
	Host             string
	Port             int
	AllowedOrigins   []string
	AllowEmptyOrigin bool
	AdminSecret      string
	RequireAuth      bool
}

type DatabaseConfig struct {
	URL string
}

type TracingConfig struct {
	Enabled bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             iconfig.GetEnvWithFallback("TESSERA_SERVER_HOST", "HOST", "0.0.0.0"),
			Port:             iconfig.GetEnvIntWithFallback("TESSERA_SERVER_PORT", "PORT", 8080),
			AllowedOrigins:   iconfig.GetEnvSliceWithFallback("TESSERA_ALLOWED_ORIGINS", "ALLOWED_ORIGINS", []string{"*"}),
			AllowEmptyOrigin: iconfig.GetEnvBoolWithFallback("TESSERA_ALLOW_EMPTY_ORIGIN", "ALLOW_EMPTY_ORIGIN", false),
			AdminSecret:      iconfig.GetEnvWithFallback("TESSERA_ADMIN_SECRET", "ADMIN_SECRET", ""),
			RequireAuth:      iconfig.GetEnvBoolWithFallback("TESSERA_REQUIRE_AUTH", "REQUIRE_AUTH", false),
		},
		Database: DatabaseConfig{
			URL: iconfig.GetEnvWithFallback("TESSERA_POSTGRES_URL", "DATABASE_URL", "postgres://localhost:5432/tessera?sslmode=disable"),
		},
		Tracing: TracingConfig{
			Enabled: iconfig.GetEnvBoolWithFallback("TESSERA_TRACING_ENABLED", "TRACING_ENABLED", false),
		},
	}
}

func (c *Config) HasAdminSecret() bool {
	return c.Server.AdminSecret != ""
}
