package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server settings read from FLIPMATCH_* variables.
type Config struct {
	DatabaseURL   string        `env:"FLIPMATCH_DATABASE_URL" envDefault:"sqlite://flipmatch.db"`
	Port          int           `env:"FLIPMATCH_PORT" envDefault:"9090"`
	LogLevel      string        `env:"FLIPMATCH_LOG_LEVEL" envDefault:"info"`
	CatalogPath   string        `env:"FLIPMATCH_CATALOG_PATH"`
	CatalogSize   int           `env:"FLIPMATCH_CATALOG_SIZE" envDefault:"18"`
	MismatchDelay time.Duration `env:"FLIPMATCH_MISMATCH_DELAY" envDefault:"1s"`
	LoopInterval  time.Duration `env:"FLIPMATCH_LOOP_INTERVAL" envDefault:"16ms"`
	// Seed fixes the deck shuffle when non-zero.
	Seed uint64 `env:"FLIPMATCH_SEED"`
}

// Load reads the given .env files, or ./.env when none are named, and then
// parses the environment. Missing .env files are ignored and variables
// already set in the environment win over file values.
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %v", err)
	}
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database url must be set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if c.CatalogPath == "" && c.CatalogSize <= 0 {
		return fmt.Errorf("catalog size must be positive, got %d", c.CatalogSize)
	}
	if c.MismatchDelay <= 0 {
		return fmt.Errorf("mismatch delay must be positive, got %s", c.MismatchDelay)
	}
	if c.LoopInterval <= 0 {
		return fmt.Errorf("loop interval must be positive, got %s", c.LoopInterval)
	}
	return nil
}
