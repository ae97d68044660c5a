package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	// SecretKey signs every issued token. There is no default: running
	// without one would make every deployment share a guessable key.
	SecretKey string `env:"JWT_SECRET"`
	// ValidityMillis is the token lifetime in milliseconds (default 15 min).
	ValidityMillis int64 `env:"JWT_VALIDITY_MS, default=900000"`
}

// Validity returns the token lifetime as a duration.
func (j JWTConfig) Validity() time.Duration {
	return time.Duration(j.ValidityMillis) * time.Millisecond
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=message_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// A missing JWT secret is a fatal startup condition, never a per-request
// error.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.SecretKey == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.JWT.ValidityMillis <= 0 {
		return nil, fmt.Errorf("config: JWT_VALIDITY_MS must be positive")
	}
	return &cfg, nil
}
