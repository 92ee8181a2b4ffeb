package keymap

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dshills/keyhook/internal/input/key"
)

// Binding represents a single keys-to-action mapping.
type Binding struct {
	// ID optionally names the binding so it keeps its listener across
	// reloads that reorder the file.
	ID string

	// Keys are the combos that trigger this binding.
	// Examples: "ctrl+k", "meta+shift+p"
	Keys []string

	// Action is the action to run.
	// Examples: "app.quit", "status.set", "script.run"
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// Description provides documentation for the binding.
	Description string
}

// NewBinding creates a new binding with the given action and keys.
func NewBinding(action string, keys ...string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// clone returns a copy that shares no slices or maps with b.
func (b Binding) clone() Binding {
	c := b
	c.Keys = append([]string(nil), b.Keys...)
	if b.Args != nil {
		c.Args = make(map[string]any, len(b.Args))
		for k, v := range b.Args {
			c.Args[k] = v
		}
	}
	return c
}

// Spec returns the parsed keys. Keymap combos may use spaces around
// segments and key aliases; malformed combos never match.
func (b Binding) Spec() key.Spec {
	spec, _ := key.ConfigKeys(b.Keys...)
	return spec
}

// Validate checks the binding's keys and action.
func (b Binding) Validate() error {
	if len(b.Keys) == 0 {
		return errors.New("no keys")
	}
	if b.Action == "" {
		return errors.New("empty action")
	}
	_, err := key.ConfigKeys(b.Keys...)
	return err
}

// bindingIDs returns a stable identifier for each binding. Bindings
// without an explicit ID are named by action and occurrence.
func bindingIDs(bindings []Binding) []string {
	ids := make([]string, len(bindings))
	seen := make(map[string]int)
	for i, b := range bindings {
		if b.ID != "" {
			ids[i] = "id:" + b.ID
			continue
		}
		n := seen[b.Action]
		seen[b.Action] = n + 1
		ids[i] = b.Action + "#" + strconv.Itoa(n)
	}
	return ids
}

// label returns a short description for log and error messages.
func (b Binding) label(i int) string {
	if b.ID != "" {
		return fmt.Sprintf("binding %d (%s)", i, b.ID)
	}
	return fmt.Sprintf("binding %d (%s)", i, b.Action)
}
