package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envPrefix scopes every variable, e.g. BOOKSHELF_API_BASE_URL.
const envPrefix = "BOOKSHELF_"

// parseEnv overlays cfg with the variables that are set. Durations use
// time.ParseDuration syntax.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
