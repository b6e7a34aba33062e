// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ericfisherdev/passcheck/internal/adapter/driven/pwned"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr    string
	DBPath        string
	KeyPath       string
	BreachAPIURL  string
	BreachTimeout time.Duration
}

// Load reads configuration from environment variables and returns a validated Config.
// Variables from a .env file in the working directory are applied first without
// overriding the real environment; a missing .env file is not an error.
// Optional variables with defaults: PASSCHECK_LISTEN_ADDR (127.0.0.1:5500),
// PASSCHECK_DB_PATH (passcheck.db), PASSCHECK_KEY_PATH (secret.key),
// PASSCHECK_BREACH_API_URL (Pwned Passwords), PASSCHECK_BREACH_TIMEOUT (5s).
// PORT, when set, replaces the port of the listen address.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	listenAddr := "127.0.0.1:5500"
	if v, ok := os.LookupEnv("PASSCHECK_LISTEN_ADDR"); ok {
		listenAddr = v
	}
	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		host, _, err := net.SplitHostPort(listenAddr)
		if err != nil {
			return nil, fmt.Errorf("PASSCHECK_LISTEN_ADDR has invalid address %q: %w", listenAddr, err)
		}
		listenAddr = net.JoinHostPort(host, port)
	}

	dbPath := "passcheck.db"
	if v, ok := os.LookupEnv("PASSCHECK_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	keyPath := "secret.key"
	if v, ok := os.LookupEnv("PASSCHECK_KEY_PATH"); ok && v != "" {
		keyPath = v
	}

	breachURL := pwned.DefaultBaseURL
	if v, ok := os.LookupEnv("PASSCHECK_BREACH_API_URL"); ok && v != "" {
		breachURL = v
	}

	breachTimeout := 5 * time.Second
	if v, ok := os.LookupEnv("PASSCHECK_BREACH_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PASSCHECK_BREACH_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("PASSCHECK_BREACH_TIMEOUT must be positive, got %s", parsed)
		}
		breachTimeout = parsed
	}

	return &Config{
		ListenAddr:    listenAddr,
		DBPath:        dbPath,
		KeyPath:       keyPath,
		BreachAPIURL:  breachURL,
		BreachTimeout: breachTimeout,
	}, nil
}
