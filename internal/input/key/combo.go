package key

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors. The matcher never returns them: a combo that fails
// validation simply never matches.
var (
	ErrEmptyCombo      = errors.New("empty key combo")
	ErrEmptyKey        = errors.New("missing primary key in key combo")
	ErrUnknownModifier = errors.New("unknown modifier in key combo")
)

// separator joins combo segments.
const separator = "+"

// Combo is a parsed key combination: one primary key and the exact set
// of modifiers that must be held.
type Combo struct {
	raw   string
	key   string
	mods  Modifier
	valid bool
}

// ParseCombo parses a combo string such as "ctrl+shift+k".
//
// The string is lower-cased and split on "+". The last segment is the
// primary key and the rest are modifiers, spelled exactly ctrl, alt,
// shift or meta. Nothing is trimmed or aliased: "ctrl + k" names the
// modifier "ctrl " and never matches. Parsing never fails; malformed
// input yields a combo for which Valid returns false and Matches always
// returns false.
func ParseCombo(s string) Combo {
	c, err := parseCombo(s, false)
	if err != nil {
		return Combo{raw: s}
	}
	return c
}

// ValidateCombo reports why ParseCombo would yield an invalid combo, or nil.
func ValidateCombo(s string) error {
	_, err := parseCombo(s, false)
	return err
}

// ParseConfigCombo parses a combo written in a keymap file. It accepts
// what ParseCombo accepts plus spaces around segments and the key
// aliases in keyAliasMap, so "Ctrl + Esc" binds ctrl+escape and
// "ctrl+plus" binds the "+" key.
func ParseConfigCombo(s string) (Combo, error) {
	return parseCombo(s, true)
}

func parseCombo(raw string, loose bool) (Combo, error) {
	lower := strings.ToLower(raw)
	if loose {
		lower = strings.TrimSpace(lower)
	}
	if lower == "" {
		return Combo{raw: raw}, ErrEmptyCombo
	}

	parts := strings.Split(lower, separator)
	if loose {
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
	}

	primary := parts[len(parts)-1]
	if primary == "" {
		return Combo{raw: raw}, fmt.Errorf("%w: %q", ErrEmptyKey, raw)
	}
	if loose {
		primary = canonicalKey(primary)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Combo{raw: raw}, fmt.Errorf("%w: %q in %q", ErrUnknownModifier, p, raw)
		}
		mods |= mod
	}

	return Combo{raw: raw, key: primary, mods: mods, valid: true}, nil
}

// Valid reports whether the combo parsed cleanly.
func (c Combo) Valid() bool {
	return c.valid
}

// Key returns the lower-cased primary key, or "" for an invalid combo.
func (c Combo) Key() string {
	return c.key
}

// Modifiers returns the required modifier set.
func (c Combo) Modifiers() Modifier {
	return c.mods
}

// Raw returns the string the combo was parsed from.
func (c Combo) Raw() string {
	return c.raw
}

// Matches reports whether the event's key equals the primary key and the
// event holds exactly the combo's modifiers. Modifiers the combo does not
// name must be released.
func (c Combo) Matches(e *Event) bool {
	if !c.valid || e == nil {
		return false
	}
	if e.normalizedKey() != c.key {
		return false
	}
	return e.Modifiers&modAll == c.mods
}

// Equal reports whether two combos describe the same key combination.
// Invalid combos are equal when their raw input is.
func (c Combo) Equal(other Combo) bool {
	if c.valid != other.valid {
		return false
	}
	if !c.valid {
		return c.raw == other.raw
	}
	return c.key == other.key && c.mods == other.mods
}

// String returns the canonical form, modifiers in ctrl, alt, shift, meta
// order, with the space and "+" keys written as "space" and "plus" so
// ParseConfigCombo reads it back. Invalid combos return their raw input.
func (c Combo) String() string {
	if !c.valid {
		return c.raw
	}
	name := keyDisplayName(c.key)
	if c.mods == ModNone {
		return name
	}
	return c.mods.String() + separator + name
}
