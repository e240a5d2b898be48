// Package config loads bskytldr configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the CLI needs to build its collaborators. It is
// constructed once and passed explicitly; no package reads the environment on
// its own.
type Config struct {
	// Identifier is the Bluesky handle or DID to authenticate as.
	Identifier string
	// AppPassword is an app password generated in Bluesky settings, never
	// the account password.
	AppPassword string
	// ServiceURL is the XRPC service endpoint.
	ServiceURL string
	// ConfigDir holds cached sessions.
	ConfigDir string
	LogLevel  string

	FeedBatchSize   int
	FollowBatchSize int
	Concurrency     int
}

// Load builds a Config from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win over
// it. Credentials are not validated here — commands that need them check.
func Load() (*Config, error) {
	// godotenv returns an error when no .env exists; that is the common
	// case, not a failure.
	_ = godotenv.Load()

	c := &Config{
		Identifier:  os.Getenv("BSKYTLDR_IDENTIFIER"),
		AppPassword: os.Getenv("BSKYTLDR_APP_PASSWORD"),
		ServiceURL:  getenv("BSKYTLDR_SERVICE_URL", "https://bsky.social"),
		ConfigDir:   getenv("BSKYTLDR_CONFIG_DIR", defaultConfigDir()),
		LogLevel:    getenv("BSKYTLDR_LOG_LEVEL", "warn"),
	}

	var err error
	if c.FeedBatchSize, err = getenvInt("BSKYTLDR_FEED_BATCH", 5); err != nil {
		return nil, err
	}
	if c.FollowBatchSize, err = getenvInt("BSKYTLDR_FOLLOW_BATCH", 50); err != nil {
		return nil, err
	}
	if c.Concurrency, err = getenvInt("BSKYTLDR_CONCURRENCY", 1); err != nil {
		return nil, err
	}

	if c.FeedBatchSize <= 0 || c.FollowBatchSize <= 0 {
		return nil, fmt.Errorf("batch sizes must be positive")
	}
	if c.Concurrency <= 0 {
		return nil, fmt.Errorf("BSKYTLDR_CONCURRENCY must be positive")
	}
	return c, nil
}

// RequireCredentials fails when identifier or app password are missing.
func (c *Config) RequireCredentials() error {
	if c.Identifier == "" || c.AppPassword == "" {
		return fmt.Errorf("missing credentials: set BSKYTLDR_IDENTIFIER and BSKYTLDR_APP_PASSWORD environment variables (or put them in a .env file)")
	}
	return nil
}

func defaultConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bskytldr")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
