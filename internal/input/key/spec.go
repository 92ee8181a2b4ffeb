package key

import (
	"errors"
	"strings"
)

// Spec is an ordered list of combos. It matches an event when any of
// its combos does.
type Spec []Combo

// Keys builds a Spec from one or more combo strings.
func Keys(combos ...string) Spec {
	spec := make(Spec, 0, len(combos))
	for _, s := range combos {
		spec = append(spec, ParseCombo(s))
	}
	return spec
}

// ConfigKeys builds a Spec from keymap combo strings with
// ParseConfigCombo. Every malformed combo is reported; it stays in the
// Spec as an invalid combo that never matches.
func ConfigKeys(combos ...string) (Spec, error) {
	spec := make(Spec, 0, len(combos))
	var errs []error
	for _, s := range combos {
		c, err := ParseConfigCombo(s)
		if err != nil {
			errs = append(errs, err)
		}
		spec = append(spec, c)
	}
	return spec, errors.Join(errs...)
}

// Matches reports whether any combo matches the event.
// An empty Spec never matches.
func (s Spec) Matches(e *Event) bool {
	for _, c := range s {
		if c.Matches(e) {
			return true
		}
	}
	return false
}

// Match returns the first combo that matches the event.
func (s Spec) Match(e *Event) (Combo, bool) {
	for _, c := range s {
		if c.Matches(e) {
			return c, true
		}
	}
	return Combo{}, false
}

// Equal reports whether two specs list the same combos in the same order.
func (s Spec) Equal(other Spec) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Strings returns the canonical form of each combo.
func (s Spec) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.String()
	}
	return out
}

// String joins the canonical combos with ", ".
func (s Spec) String() string {
	return strings.Join(s.Strings(), ", ")
}
