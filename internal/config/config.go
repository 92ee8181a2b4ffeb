package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keyhook/internal/logging"
)

// Config holds all keyhook settings.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Keymap  KeymapConfig  `toml:"keymap"`
}

// LoggingConfig controls the application log.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File is the log file path. Empty logs to stderr.
	File string `toml:"file"`
}

// KeymapConfig controls where bindings come from.
type KeymapConfig struct {
	// Path is the keymap file. Empty uses the built-in keymap.
	Path string `toml:"path"`

	// Watch reloads the keymap when the file changes.
	Watch bool `toml:"watch"`

	// Debounce coalesces bursts of file writes, e.g. "100ms".
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration that decodes from strings like "150ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDebounce, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Environment variables that override file settings.
const (
	EnvLogLevel    = "KEYHOOK_LOG_LEVEL"
	EnvLogFile     = "KEYHOOK_LOG_FILE"
	EnvKeymap      = "KEYHOOK_KEYMAP"
	EnvKeymapWatch = "KEYHOOK_KEYMAP_WATCH"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Keymap: KeymapConfig{
			Watch:    true,
			Debounce: Duration(100 * time.Millisecond),
		},
	}
}

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(expandHome(path))
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, parseError(path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.Keymap.Path = expandHome(cfg.Keymap.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseError(path string, err error) error {
	pe := &ParseError{Path: path, Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}

// applyEnv overrides settings from the environment.
// Empty string values are treated as valid values, not as unset.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Logging.File = v
	}
	if v, ok := lookup(EnvKeymap); ok {
		c.Keymap.Path = v
	}
	if v, ok := lookup(EnvKeymapWatch); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvKeymapWatch, err)
		}
		c.Keymap.Watch = b
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLevel, c.Logging.Level))
	}
	if c.Keymap.Debounce < 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDebounce, time.Duration(c.Keymap.Debounce)))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() logging.Level {
	if l, ok := logging.ParseLevel(c.Logging.Level); ok {
		return l
	}
	return logging.LevelInfo
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keyhook", "config.toml")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
