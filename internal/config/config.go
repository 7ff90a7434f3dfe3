// Package config loads tagtime settings.
//
// Settings come from, in increasing order of precedence:
//   - built-in defaults
//   - the TOML file at ~/.tagtime/config.toml (or $TAGTIME_CONFIG)
//   - environment variables TAGTIME_DB, TAGTIME_LOG and TAGTIME_ENV
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tagtime/internal/stats"
)

const (
	ConfigEnvVar   = "TAGTIME_CONFIG"
	DatabaseEnvVar = "TAGTIME_DB"
	LogEnvVar      = "TAGTIME_LOG"
	EnvEnvVar      = "TAGTIME_ENV"
)

var ErrNoDatabase = errors.New("database_path must not be empty")

type Config struct {
	// DatabasePath is the SQLite file holding tags, logs and timer state.
	DatabasePath string `toml:"database_path"`
	// LogPath receives the application log. The terminal belongs to the UI.
	LogPath string `toml:"log_path"`
	// Environment selects the logger: "production" or "development".
	Environment string `toml:"environment"`

	Display DisplayConfig `toml:"display"`
}

// DisplayConfig holds Go time layouts used for labels.
type DisplayConfig struct {
	TimeFormat string `toml:"time_format"`
	DateFormat string `toml:"date_format"`
	WeekFormat string `toml:"week_format"`
}

func Default() *Config {
	dir := baseDir()
	return &Config{
		DatabasePath: filepath.Join(dir, "tagtime.db"),
		LogPath:      filepath.Join(dir, "tagtime.log"),
		Environment:  "production",
		Display: DisplayConfig{
			TimeFormat: stats.DefaultFormat.Time,
			DateFormat: stats.DefaultFormat.Date,
			WeekFormat: stats.DefaultFormat.Week,
		},
	}
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tagtime"
	}
	return filepath.Join(home, ".tagtime")
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	if v := os.Getenv(ConfigEnvVar); v != "" {
		return filepath.Clean(v)
	}
	return filepath.Join(baseDir(), "config.toml")
}

// Load reads the config file at path, or DefaultPath when path is empty.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyEnv()
	cfg.fillDisplayDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(DatabaseEnvVar); v != "" {
		c.DatabasePath = filepath.Clean(v)
	}
	if v := os.Getenv(LogEnvVar); v != "" {
		c.LogPath = filepath.Clean(v)
	}
	if v := os.Getenv(EnvEnvVar); v != "" {
		c.Environment = strings.ToLower(v)
	}
}

func (c *Config) fillDisplayDefaults() {
	if c.Display.TimeFormat == "" {
		c.Display.TimeFormat = stats.DefaultFormat.Time
	}
	if c.Display.DateFormat == "" {
		c.Display.DateFormat = stats.DefaultFormat.Date
	}
	if c.Display.WeekFormat == "" {
		c.Display.WeekFormat = stats.DefaultFormat.Week
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return ErrNoDatabase
	}
	switch c.Environment {
	case "production", "development":
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	return nil
}

// Format returns the label layouts for the stats views.
func (c *Config) Format() stats.Format {
	return stats.Format{
		Time: c.Display.TimeFormat,
		Date: c.Display.DateFormat,
		Week: c.Display.WeekFormat,
	}
}
