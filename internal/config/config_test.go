package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/keyhook/internal/logging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvLogLevel, EnvLogFile, EnvKeymap, EnvKeymapWatch} {
		if v, ok := os.LookupEnv(name); ok {
			t.Setenv(name, v)
			os.Unsetenv(name)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if !cfg.Keymap.Watch {
		t.Error("Keymap.Watch should default to true")
	}
	if time.Duration(cfg.Keymap.Debounce) != 100*time.Millisecond {
		t.Errorf("Keymap.Debounce = %v, want 100ms", time.Duration(cfg.Keymap.Debounce))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[logging]
level = "debug"
file = "/tmp/keyhook.log"

[keymap]
path = "/etc/keyhook/keys.toml"
watch = false
debounce = "250ms"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/tmp/keyhook.log" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Keymap.Path != "/etc/keyhook/keys.toml" || cfg.Keymap.Watch {
		t.Errorf("Keymap = %+v", cfg.Keymap)
	}
	if time.Duration(cfg.Keymap.Debounce) != 250*time.Millisecond {
		t.Errorf("Keymap.Debounce = %v, want 250ms", time.Duration(cfg.Keymap.Debounce))
	}
	if cfg.Level() != logging.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[logging]\nlevel = \"debug\"\n")

	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvKeymap, "/tmp/keys.yaml")
	t.Setenv(EnvKeymapWatch, "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Keymap.Path != "/tmp/keys.yaml" {
		t.Errorf("Keymap.Path = %q", cfg.Keymap.Path)
	}
	if cfg.Keymap.Watch {
		t.Error("Keymap.Watch should be overridden to false")
	}
}

func TestLoadBadEnvBool(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvKeymapWatch, "sometimes")
	if _, err := Load(""); err == nil {
		t.Error("Load() should fail on a bad boolean")
	}
}

func TestLoadParseError(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[logging\nlevel = ")
	_, err := Load(path)

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if pe.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
	}
	if pe.Line == 0 {
		t.Error("ParseError.Line should be set from the decoder position")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"default", func(*Config) {}, nil},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, ErrInvalidLevel},
		{"negative debounce", func(c *Config) { c.Keymap.Debounce = Duration(-time.Second) }, ErrInvalidDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/keys.toml"); got != filepath.Join(home, "keys.toml") {
		t.Errorf("expandHome(~/keys.toml) = %q", got)
	}
	if got := expandHome("/abs/keys.toml"); got != "/abs/keys.toml" {
		t.Errorf("expandHome(/abs/keys.toml) = %q", got)
	}
}
