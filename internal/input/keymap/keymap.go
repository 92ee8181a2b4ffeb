package keymap

import (
	"errors"
	"fmt"
)

// Keymap holds the bindings loaded from one source.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Source indicates where this keymap was loaded from.
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(action string, keys ...string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(action, keys...))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks every binding and reports all problems at once.
func (k *Keymap) Validate() error {
	var errs []error
	ids := make(map[string]int)
	for i, b := range k.Bindings {
		if err := b.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.label(i), err))
		}
		if b.ID != "" {
			if prev, dup := ids[b.ID]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate id, first used by binding %d", b.label(i), prev))
			}
			ids[b.ID] = i
		}
	}
	return errors.Join(errs...)
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		clone.Bindings[i] = b.clone()
	}
	return clone
}
