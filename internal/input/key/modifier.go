package key

import "strings"

// Modifier is the set of modifier keys held during a key press.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// modAll is every modifier a combo can name.
const modAll = ModShift | ModCtrl | ModAlt | ModMeta

// modifierOrder lists the combo names in canonical order.
var modifierOrder = [...]struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModShift, "shift"},
	{ModMeta, "meta"},
}

// HasCtrl reports whether Control is in the set.
func (m Modifier) HasCtrl() bool { return m&ModCtrl != 0 }

// HasAlt reports whether Alt is in the set.
func (m Modifier) HasAlt() bool { return m&ModAlt != 0 }

// HasShift reports whether Shift is in the set.
func (m Modifier) HasShift() bool { return m&ModShift != 0 }

// HasMeta reports whether Meta is in the set.
func (m Modifier) HasMeta() bool { return m&ModMeta != 0 }

// String returns the combo form of the modifier set, e.g. "ctrl+alt".
// Modifiers are always listed in ctrl, alt, shift, meta order.
func (m Modifier) String() string {
	parts := make([]string, 0, len(modifierOrder))
	for _, o := range modifierOrder {
		if m&o.mod != 0 {
			parts = append(parts, o.name)
		}
	}
	return strings.Join(parts, separator)
}

// ModifierFromName returns the Modifier for an already lower-cased combo
// segment. Only ctrl, alt, shift and meta are recognized, spelled
// exactly; anything else returns ModNone.
func ModifierFromName(name string) Modifier {
	for _, o := range modifierOrder {
		if o.name == name {
			return o.mod
		}
	}
	return ModNone
}

// ModifiersFromFlags builds a Modifier from the four boolean flags
// a key-down event carries.
func ModifiersFromFlags(ctrl, alt, shift, meta bool) Modifier {
	var m Modifier
	if ctrl {
		m |= ModCtrl
	}
	if alt {
		m |= ModAlt
	}
	if shift {
		m |= ModShift
	}
	if meta {
		m |= ModMeta
	}
	return m
}
