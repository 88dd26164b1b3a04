package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the optional tides configuration file. Every field is
// optional; unset fields fall back to built-in defaults in Resolve.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	API      APIConfig      `toml:"api"`
}

// DefaultsConfig holds persistent chart flag defaults.
type DefaultsConfig struct {
	Hours      *int    `toml:"hours"`
	Resolution *string `toml:"resolution"`
}

// APIConfig configures the flood-monitoring API client.
type APIConfig struct {
	BaseURL    *string `toml:"base_url"`
	Timeout    *string `toml:"timeout"`
	MaxRetries *int    `toml:"max_retries"`
}

// Path returns where the config file lives: $TIDES_CONFIG when set,
// otherwise tides/config.toml under $XDG_CONFIG_HOME or the user config
// directory. It is empty when none of those can be determined.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		var err error
		if base, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(base, "tides", "config.toml")
}

// Load reads the file at Path. See LoadFile.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads a config file. An empty path or a missing file yields a
// zero Config. Keys tides does not know are logged and ignored.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("unknown config key", "path", path, "key", key.String())
	}
	return cfg, nil
}
