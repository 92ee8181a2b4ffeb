package key

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single key-down event.
type Event struct {
	// Key identifies the primary key, e.g. "k", "K", "Enter", "ArrowUp".
	// Printable keys carry their character.
	Key string

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time

	defaultPrevented bool
}

// NewEvent creates a key-down event with the current timestamp.
func NewEvent(k string, mods Modifier) *Event {
	return &Event{
		Key:       k,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewEventFromFlags creates an event from a key and the four modifier flags.
func NewEventFromFlags(k string, ctrl, alt, shift, meta bool) *Event {
	return NewEvent(k, ModifiersFromFlags(ctrl, alt, shift, meta))
}

// Ctrl reports whether Control was held.
func (e *Event) Ctrl() bool { return e.Modifiers.HasCtrl() }

// Alt reports whether Alt was held.
func (e *Event) Alt() bool { return e.Modifiers.HasAlt() }

// Shift reports whether Shift was held.
func (e *Event) Shift() bool { return e.Modifiers.HasShift() }

// Meta reports whether Meta was held.
func (e *Event) Meta() bool { return e.Modifiers.HasMeta() }

// PreventDefault marks the event as handled so the surface that
// dispatched it skips its default action.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// normalizedKey returns the lower-cased primary key used for matching.
func (e *Event) normalizedKey() string {
	return strings.ToLower(e.Key)
}

// String returns the combo form of the event, e.g. "ctrl+shift+p".
func (e *Event) String() string {
	name := keyDisplayName(e.normalizedKey())
	if e.Modifiers == ModNone {
		return name
	}
	return e.Modifiers.String() + "+" + name
}

// GoString implements fmt.GoStringer for debugging.
func (e *Event) GoString() string {
	return fmt.Sprintf("Event{Key: %q, Modifiers: %q, DefaultPrevented: %v}",
		e.Key, e.Modifiers.String(), e.defaultPrevented)
}
