package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime settings, populated from the environment.
type Config struct {
	Port      string `env:"PORT, default=8080"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	DBHost     string `env:"DB_HOST, default=localhost"`
	DBPort     string `env:"DB_PORT, default=5432"`
	DBUser     string `env:"DB_USER, default=postgres"`
	DBPassword string `env:"DB_PASSWORD, default=postgres"`
	DBName     string `env:"DB_NAME, default=postgres"`
	DBSSLMode  string `env:"DB_SSLMODE, default=disable"`

	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:3000"`
}

// Load reads configs/.env when present, then resolves the Config struct
// from the process environment.
func Load(ctx context.Context) (*Config, error) {
	// Missing .env is fine in containerized deployments.
	_ = godotenv.Load("configs/.env")

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// DSN assembles the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort +
		"/" + c.DBName + "?sslmode=" + c.DBSSLMode
}
