// Package config loads Discadelta's TOML configuration file, using the
// same XDG resolution and BurntSushi/toml parsing convention common across
// the CLI's on-disk files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "discadelta"

// Config holds the settings shared by the CLI, the server, and their
// collaborators (cache, store).
type Config struct {
	// Solve holds default solve settings read from the file. The CLI and
	// the API do not read them; each takes its target and rounding mode
	// from its own flags or request body.
	Solve SolveDefaults `toml:"solve"`

	// Cache configures the result cache.
	Cache CacheConfig `toml:"cache"`

	// Store configures persistence of named tree definitions.
	Store StoreConfig `toml:"store"`

	// Server configures internal/api's HTTP listener.
	Server ServerConfig `toml:"server"`
}

// SolveDefaults is the [solve] section of the config file: a default
// target and rounding mode.
type SolveDefaults struct {
	TargetMain float64 `toml:"target_main"`
	Round      bool    `toml:"round"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Addr is the Redis address, used only when Backend is "redis".
	Addr string `toml:"addr"`
	// TTLSeconds is how long a cached solve result stays valid. Zero means
	// no expiry.
	TTLSeconds int `toml:"ttl_seconds"`
}

// TTL converts TTLSeconds to a [time.Duration].
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// StoreConfig configures the MongoDB-backed tree/result store.
type StoreConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures internal/api's HTTP listener.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no config file is
// present.
func DefaultConfig() Config {
	return Config{
		Solve: SolveDefaults{
			TargetMain: 0,
			Round:      true,
		},
		Cache: CacheConfig{
			Backend:    "file",
			TTLSeconds: 3600,
		},
		Store: StoreConfig{
			Database:   "discadelta",
			Collection: "trees",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig reads and parses the config file at path, overlaying its
// values onto [DefaultConfig]. A missing file is not an error: the
// defaults are returned unchanged, since configuration is optional.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath returns the config file path using the XDG standard
// (~/.config/discadelta/config.toml), the same resolution the CLI
// applies to its cache directory.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
