package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names understood outside the SCOUT_ key space.
const (
	envPrefix     = "SCOUT_"
	envConfigFile = "SCOUT_CONFIG"
	envDotEnv     = "SCOUT_DOTENV"
	defaultDotEnv = ".env"
)

// Load builds a Config by layering defaults, .env, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if SCOUT_CONFIG is set
//  3. env (prefix SCOUT_), after a .env file (SCOUT_DOTENV, default ".env")
//     has been merged into the process environment without overriding it
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SCOUT_CSV_PATH -> csv_path; flat keys keep their underscores.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings every entry point depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.CSVPath) == "" {
		return fmt.Errorf("%w: csv_path must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.NarrativeProvider) {
	case ProviderOpenAI, ProviderGemini, ProviderNone:
	default:
		return fmt.Errorf("%w: unknown narrative_provider %q", ErrInvalidConfig, c.NarrativeProvider)
	}
	return nil
}

// loadDotEnv merges a dotenv file into the environment. A missing default
// file is fine; a missing explicitly requested one is not.
func loadDotEnv() error {
	path := os.Getenv(envDotEnv)
	explicit := path != ""
	if !explicit {
		path = defaultDotEnv
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: dotenv %s: %w", ErrLoadConfig, path, err)
	}
	return nil
}
