package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"creativesync/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger.
	Log configs.Logger `envPrefix:"LOG_"`

	// Gemini configures the text-generation collaborator.
	Gemini configs.Gemini `envPrefix:"GEMINI_"`

	// Store selects the persistent key-value backend.
	Store configs.Store `envPrefix:"STORE_"`

	// Psql configures the PostgreSQL connection used by the postgres backend
	// and the migrate command.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Redis configures the Redis connection used by the redis backend.
	Redis configs.Redis `envPrefix:"REDIS_"`

	// Sim configures the metrics simulator and variant pacing.
	Sim configs.Simulator `envPrefix:"SIM_"`
}

// Load reads configuration from environment variables into a Config.
// Variables from the given dotenv files are loaded first without overriding
// the process environment; missing files are ignored.
func Load(dotenv ...string) (Config, error) {
	var cfg Config
	for _, file := range dotenv {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", file, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Store.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
