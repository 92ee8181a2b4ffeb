package key

import (
	"errors"
	"testing"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  string
		wantMods Modifier
	}{
		{"k", "k", ModNone},
		{"K", "k", ModNone},
		{"ctrl+k", "k", ModCtrl},
		{"Ctrl+Shift+K", "k", ModCtrl | ModShift},
		{"meta+p", "p", ModMeta},
		{"ctrl+alt+shift+meta+x", "x", modAll},
		{"shift+ctrl+s", "s", ModCtrl | ModShift},
		{"Enter", "enter", ModNone},
		{"ctrl+esc", "esc", ModCtrl},
		{"alt+up", "up", ModAlt},
		{"ctrl+ ", " ", ModCtrl},
		{"ctrl+space", "space", ModCtrl},
		{"f5", "f5", ModNone},
	}

	for _, tt := range tests {
		c := ParseCombo(tt.spec)
		if !c.Valid() {
			t.Errorf("ParseCombo(%q) invalid, want valid", tt.spec)
			continue
		}
		if c.Key() != tt.wantKey {
			t.Errorf("ParseCombo(%q) key = %q, want %q", tt.spec, c.Key(), tt.wantKey)
		}
		if c.Modifiers() != tt.wantMods {
			t.Errorf("ParseCombo(%q) modifiers = %v, want %v", tt.spec, c.Modifiers(), tt.wantMods)
		}
	}
}

func TestParseComboMalformed(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr error
	}{
		{"", ErrEmptyCombo},
		{"ctrl+", ErrEmptyKey},
		{"ctrl++", ErrEmptyKey},
		{"hyper+k", ErrUnknownModifier},
		{"control+k", ErrUnknownModifier},
		{"+k", ErrUnknownModifier},
		{"ctrl + k", ErrUnknownModifier},
		{" ctrl+k", ErrUnknownModifier},
	}

	for _, tt := range tests {
		c := ParseCombo(tt.spec)
		if c.Valid() {
			t.Errorf("ParseCombo(%q) valid, want invalid", tt.spec)
		}
		if c.Matches(NewEvent("k", ModCtrl)) || c.Matches(NewEvent("k", ModNone)) {
			t.Errorf("ParseCombo(%q) matched an event, malformed combos must never match", tt.spec)
		}
		if err := ValidateCombo(tt.spec); !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateCombo(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
		}
	}
}

func TestValidateComboAcceptsWellFormed(t *testing.T) {
	for _, spec := range []string{"k", "ctrl+k", "ctrl+shift+enter", "meta+plus"} {
		if err := ValidateCombo(spec); err != nil {
			t.Errorf("ValidateCombo(%q) error = %v, want nil", spec, err)
		}
	}
}

func TestComboMatches(t *testing.T) {
	tests := []struct {
		name  string
		combo string
		event *Event
		want  bool
	}{
		{"ctrl k", "ctrl+k", NewEventFromFlags("k", true, false, false, false), true},
		{"alt mismatch", "ctrl+k", NewEventFromFlags("k", true, true, false, false), false},
		{"shift extra", "ctrl+k", NewEventFromFlags("k", true, false, true, false), false},
		{"meta extra", "ctrl+k", NewEventFromFlags("k", true, false, false, true), false},
		{"ctrl missing", "ctrl+k", NewEventFromFlags("k", false, false, false, false), false},
		{"key differs", "ctrl+k", NewEventFromFlags("j", true, false, false, false), false},
		{"upper event key", "ctrl+shift+k", NewEventFromFlags("K", true, false, true, false), true},
		{"upper combo", "CTRL+K", NewEventFromFlags("k", true, false, false, false), true},
		{"bare key", "k", NewEventFromFlags("k", false, false, false, false), true},
		{"bare key with ctrl", "k", NewEventFromFlags("k", true, false, false, false), false},
		{"all four", "ctrl+alt+shift+meta+x", NewEventFromFlags("x", true, true, true, true), true},
		{"named key", "ctrl+enter", NewEventFromFlags(NameEnter, true, false, false, false), true},
		{"dom key name", "alt+arrowup", NewEventFromFlags(NameUp, false, true, false, false), true},
		{"space", "ctrl+ ", NewEventFromFlags(NameSpace, true, false, false, false), true},
		{"esc is not escape", "esc", NewEventFromFlags(NameEscape, false, false, false, false), false},
		{"up is not arrowup", "ctrl+up", NewEventFromFlags(NameUp, true, false, false, false), false},
		{"return is not enter", "return", NewEventFromFlags(NameEnter, false, false, false, false), false},
		{"spaced modifier", "ctrl + k", NewEventFromFlags("k", true, false, false, false), false},
		{"spaced key", "ctrl+ k", NewEventFromFlags("k", true, false, false, false), false},
		{"nil event", "k", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCombo(tt.combo).Matches(tt.event); got != tt.want {
				t.Errorf("ParseCombo(%q).Matches(%#v) = %v, want %v", tt.combo, tt.event, got, tt.want)
			}
		})
	}
}

// Every modifier flag is checked, whether or not the combo names it.
func TestComboMatchesExactModifierSet(t *testing.T) {
	combo := ParseCombo("ctrl+shift+k")
	for mask := Modifier(0); mask <= modAll; mask++ {
		if mask&^modAll != 0 {
			continue
		}
		want := mask == ModCtrl|ModShift
		if got := combo.Matches(NewEvent("k", mask)); got != want {
			t.Errorf("Matches(k, %q) = %v, want %v", mask.String(), got, want)
		}
	}
}

func TestComboString(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"K", "k"},
		{"Shift+Ctrl+K", "ctrl+shift+k"},
		{"meta+alt+enter", "alt+meta+enter"},
		{"ctrl+ ", "ctrl+space"},
		{"hyper+k", "hyper+k"},
	}

	for _, tt := range tests {
		if got := ParseCombo(tt.spec).String(); got != tt.want {
			t.Errorf("ParseCombo(%q).String() = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestComboEqual(t *testing.T) {
	if !ParseCombo("shift+ctrl+k").Equal(ParseCombo("CTRL+SHIFT+K")) {
		t.Error("combos with the same key and modifiers should be equal")
	}
	if ParseCombo("ctrl+k").Equal(ParseCombo("alt+k")) {
		t.Error("combos with different modifiers should differ")
	}
	if ParseCombo("hyper+k").Equal(ParseCombo("ctrl+k")) {
		t.Error("invalid combo should not equal a valid one")
	}
}

func TestParseConfigCombo(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  string
		wantMods Modifier
	}{
		{"ctrl + s", "s", ModCtrl},
		{"  Ctrl+Shift+K ", "k", ModCtrl | ModShift},
		{"ctrl+esc", "escape", ModCtrl},
		{"alt+up", "arrowup", ModAlt},
		{"return", "enter", ModNone},
		{"ctrl+space", " ", ModCtrl},
		{"ctrl+plus", "+", ModCtrl},
		{"meta+p", "p", ModMeta},
	}

	for _, tt := range tests {
		c, err := ParseConfigCombo(tt.spec)
		if err != nil {
			t.Errorf("ParseConfigCombo(%q) error = %v", tt.spec, err)
			continue
		}
		if c.Key() != tt.wantKey || c.Modifiers() != tt.wantMods {
			t.Errorf("ParseConfigCombo(%q) = %q %v, want %q %v", tt.spec, c.Key(), c.Modifiers(), tt.wantKey, tt.wantMods)
		}
	}
}

func TestParseConfigComboMatchesDOMNames(t *testing.T) {
	c, err := ParseConfigCombo("Ctrl + Esc")
	if err != nil {
		t.Fatalf("ParseConfigCombo error = %v", err)
	}
	if !c.Matches(NewEvent(NameEscape, ModCtrl)) {
		t.Error("ctrl+esc from a keymap should match Ctrl+Escape")
	}
	// The same text through the literal parser names an unknown modifier.
	if ParseCombo("Ctrl + Esc").Matches(NewEvent(NameEscape, ModCtrl)) {
		t.Error("ParseCombo must not trim or alias")
	}
}

func TestParseConfigComboMalformed(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr error
	}{
		{"   ", ErrEmptyCombo},
		{"ctrl + ", ErrEmptyKey},
		{"hyper + k", ErrUnknownModifier},
	}

	for _, tt := range tests {
		if _, err := ParseConfigCombo(tt.spec); !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseConfigCombo(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
		}
	}
}

func TestConfigComboStringRoundTrip(t *testing.T) {
	for _, spec := range []string{"ctrl+space", "ctrl+plus", "alt+shift+escape"} {
		c, err := ParseConfigCombo(spec)
		if err != nil {
			t.Fatalf("ParseConfigCombo(%q) error = %v", spec, err)
		}
		back, err := ParseConfigCombo(c.String())
		if err != nil || !back.Equal(c) {
			t.Errorf("ParseConfigCombo(%q) round trip = %q, %v", spec, c.String(), err)
		}
	}
}
