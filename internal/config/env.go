package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file. EnvConfig
// points at the config file itself.
const (
	EnvConfig     = "TIDES_CONFIG"
	EnvHours      = "TIDES_HOURS"
	EnvResolution = "TIDES_RESOLUTION"
	EnvBaseURL    = "TIDES_BASE_URL"
	EnvTimeout    = "TIDES_TIMEOUT"
)

// LoadDotEnv loads variables from the given .env files (default ".env")
// into the process environment without overriding variables that are
// already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays TIDES_* environment variables onto cfg.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvHours); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("ignoring non-numeric hours", "env", EnvHours, "value", v)
		} else {
			c.Defaults.Hours = &n
		}
	}
	if v, ok := os.LookupEnv(EnvResolution); ok {
		c.Defaults.Resolution = &v
	}
	if v, ok := os.LookupEnv(EnvBaseURL); ok {
		c.API.BaseURL = &v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok {
		c.API.Timeout = &v
	}
}
