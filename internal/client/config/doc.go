// Package config loads runtime configuration for the bookshelf CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c or -config.
//  3. Environment variables prefixed with BOOKSHELF_.
//  4. Command-line flags.
//
// # Flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-d string   SQLite database path
//	-l string   log level
//
// # JSON schema
//
// Durations may be strings such as "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "request_timeout": "30s",
//	  "retry_attempts": 3,
//	  "retry_delay": "1s",
//	  "database_path": "bookshelf.db",
//	  "password_min_length": 6,
//	  "min_age": 14,
//	  "log_level": "info"
//	}
//
// # Environment
//
//	BOOKSHELF_API_BASE_URL, BOOKSHELF_REQUEST_TIMEOUT, BOOKSHELF_RETRY_ATTEMPTS,
//	BOOKSHELF_RETRY_DELAY, BOOKSHELF_DATABASE_PATH, BOOKSHELF_PASSWORD_MIN_LENGTH,
//	BOOKSHELF_MIN_AGE, BOOKSHELF_LOG_LEVEL
package config
