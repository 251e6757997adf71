package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/validation"
)

// Config holds runtime settings for the bookshelf CLI.
type Config struct {
	// APIBaseURL is the root of the account API, e.g. http://localhost:8080.
	APIBaseURL string `env:"API_BASE_URL"`
	// RequestTimeout bounds every single HTTP attempt.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	// RetryAttempts is the total number of tries for idempotent calls.
	RetryAttempts int           `env:"RETRY_ATTEMPTS"`
	RetryDelay    time.Duration `env:"RETRY_DELAY"`

	// DatabasePath is the SQLite file holding the saved session.
	DatabasePath string `env:"DATABASE_PATH"`

	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH"`
	MinAge            int `env:"MIN_AGE"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with the values used when nothing is configured.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.RequestTimeout = 30 * time.Second
	c.RetryAttempts = 3
	c.RetryDelay = time.Second
	c.DatabasePath = "bookshelf.db"
	c.PasswordMinLength = validation.DefaultPasswordMinLength
	c.MinAge = validation.DefaultMinAge
	c.LogLevel = "info"
}

// Rules returns the validation limits configured in c.
func (c *Config) Rules() validation.Rules {
	return validation.Rules{PasswordMinLength: c.PasswordMinLength, MinAge: c.MinAge}
}

// LoadConfig builds a Config from defaults, then the JSON file, then the
// environment and finally the command line. Later sources win.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalidConfig wraps every rejected setting.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the settings that would make every request fail.
func (c *Config) Validate() error {
	switch {
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request timeout must be positive, got %s", ErrInvalidConfig, c.RequestTimeout)
	case c.RetryAttempts < 1:
		return fmt.Errorf("%w: retry attempts must be at least 1, got %d", ErrInvalidConfig, c.RetryAttempts)
	case c.RetryDelay < 0:
		return fmt.Errorf("%w: retry delay must not be negative, got %s", ErrInvalidConfig, c.RetryDelay)
	}
	return nil
}
