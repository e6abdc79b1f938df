package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig lists the environment variables the server understands. Unset
// variables leave the corresponding Config field untouched.
type EnvConfig struct {
	HTTPAddress    string        `env:"HTTP_ADDRESS"`
	Port           string        `env:"PORT"`
	GRPCAddress    string        `env:"GRPC_ADDRESS"`
	DatabaseDriver string        `env:"DATABASE_DRIVER"`
	DatabaseDSN    string        `env:"DATABASE_DSN"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	SecretKey      string        `env:"JWT_SECRET"`
	TokenValidity  time.Duration `env:"TOKEN_VALIDITY"`
	StoreTimeout   time.Duration `env:"STORE_TIMEOUT"`
	PasswordCost   int           `env:"BCRYPT_COST"`
	DefaultRole    string        `env:"DEFAULT_ROLE"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	LogLevel       string        `env:"LOG_LEVEL"`
}

// parseEnv overlays config with environment variables. PORT is shorthand for
// HTTP_ADDRESS=":<PORT>" and wins over it; DATABASE_DSN wins over
// DATABASE_URL.
func parseEnv(config *Config) error {
	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setString(&config.EndpointAddrHTTP, e.HTTPAddress)
	if e.Port != "" {
		config.EndpointAddrHTTP = ":" + e.Port
	}
	setString(&config.EndpointAddrGRPC, e.GRPCAddress)
	setString(&config.DatabaseDriver, e.DatabaseDriver)
	setString(&config.DatabaseDSN, e.DatabaseURL)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	setString(&config.DefaultRole, e.DefaultRole)
	setString(&config.LogLevel, e.LogLevel)
	if e.TokenValidity != 0 {
		config.TokenValidityDuration = e.TokenValidity
	}
	if e.StoreTimeout != 0 {
		config.StoreTimeout = e.StoreTimeout
	}
	if e.PasswordCost != 0 {
		config.PasswordCost = e.PasswordCost
	}
	if len(e.AllowedOrigins) > 0 {
		config.AllowedOrigins = e.AllowedOrigins
	}
	return nil
}
