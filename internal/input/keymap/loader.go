package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a keymap file encoding.
type Format int

const (
	// FormatTOML is the default keymap format.
	FormatTOML Format = iota

	// FormatYAML is selected by .yaml and .yml extensions.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ParseError represents an error while decoding a keymap file.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing keymap %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and validates the keymap at path.
func Load(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}

	km, err := Decode(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}

	km.Source = path
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := km.Validate(); err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	return km, nil
}

// Decode reads a keymap from r without validating it.
func Decode(r io.Reader, format Format) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}

	var config keymapConfig
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &config)
	default:
		err = toml.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, &ParseError{Path: "<reader>", Err: err}
	}

	km := &Keymap{
		Name:     config.Name,
		Bindings: make([]Binding, 0, len(config.Bindings)),
	}
	for i, bc := range config.Bindings {
		keys, err := keysFromConfig(bc.Keys)
		if err != nil {
			return nil, &ParseError{Path: "<reader>", Err: fmt.Errorf("binding %d: %w", i, err)}
		}
		km.Bindings = append(km.Bindings, Binding{
			ID:          bc.ID,
			Keys:        keys,
			Action:      bc.Action,
			Args:        bc.Args,
			Description: bc.Description,
		})
	}
	return km, nil
}

// keysFromConfig accepts a single combo string or a list of them.
func keysFromConfig(v any) ([]string, error) {
	switch keys := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{keys}, nil
	case []any:
		out := make([]string, 0, len(keys))
		for _, item := range keys {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("keys must be strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("keys must be a string or a list of strings, got %T", v)
	}
}

// keymapConfig is the file structure for keymaps.
type keymapConfig struct {
	Name     string          `toml:"name" yaml:"name"`
	Bindings []bindingConfig `toml:"bindings" yaml:"bindings"`
}

type bindingConfig struct {
	ID          string         `toml:"id,omitempty" yaml:"id,omitempty"`
	Keys        any            `toml:"keys" yaml:"keys"`
	Action      string         `toml:"action" yaml:"action"`
	Args        map[string]any `toml:"args,omitempty" yaml:"args,omitempty"`
	Description string         `toml:"description,omitempty" yaml:"description,omitempty"`
}

// Encode writes the keymap as TOML.
func (k *Keymap) Encode(w io.Writer) error {
	config := keymapConfig{
		Name:     k.Name,
		Bindings: make([]bindingConfig, 0, len(k.Bindings)),
	}
	for _, b := range k.Bindings {
		config.Bindings = append(config.Bindings, bindingConfig{
			ID:          b.ID,
			Keys:        b.Keys,
			Action:      b.Action,
			Args:        b.Args,
			Description: b.Description,
		})
	}
	return toml.NewEncoder(w).Encode(config)
}

// SaveFile saves a keymap to a TOML file.
func (k *Keymap) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := k.Encode(&buf); err != nil {
		return fmt.Errorf("encoding keymap: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}
