package keymap

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/keyhook/internal/input/key"
)

func TestBindingValidate(t *testing.T) {
	tests := []struct {
		name    string
		binding Binding
		wantErr bool
	}{
		{"valid", NewBinding("app.quit", "ctrl+q"), false},
		{"valid many", NewBinding("app.quit", "ctrl+q", "meta+q"), false},
		{"no keys", NewBinding("app.quit"), true},
		{"no action", NewBinding("", "ctrl+q"), true},
		{"empty key", NewBinding("app.quit", "ctrl+"), true},
		{"unknown modifier", NewBinding("app.quit", "hyper+q"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.binding.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBindingValidateReportsEveryCombo(t *testing.T) {
	b := NewBinding("app.quit", "ctrl+", "hyper+q", "ctrl+q")
	err := b.Validate()
	if !errors.Is(err, key.ErrEmptyKey) {
		t.Errorf("Validate() error = %v, want ErrEmptyKey", err)
	}
	if !errors.Is(err, key.ErrUnknownModifier) {
		t.Errorf("Validate() error = %v, want ErrUnknownModifier", err)
	}
}

func TestBindingSpec(t *testing.T) {
	b := NewBinding("palette.open", "Ctrl+Shift+P", "meta+p")
	spec := b.Spec()
	if len(spec) != 2 {
		t.Fatalf("Spec() len = %d, want 2", len(spec))
	}
	if !spec.Matches(key.NewEvent("p", key.ModCtrl|key.ModShift)) {
		t.Error("Spec() should match ctrl+shift+p")
	}
	if spec.Matches(key.NewEvent("p", key.ModCtrl)) {
		t.Error("Spec() should not match ctrl+p")
	}
}

func TestKeymapValidateDuplicateID(t *testing.T) {
	km := NewKeymap("test")
	km.AddBinding(Binding{ID: "quit", Keys: []string{"ctrl+q"}, Action: "app.quit"})
	km.AddBinding(Binding{ID: "quit", Keys: []string{"ctrl+w"}, Action: "app.quit"})

	err := km.Validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Errorf("Validate() error = %v, want duplicate id", err)
	}
}

func TestKeymapClone(t *testing.T) {
	km := NewKeymap("test")
	km.AddBinding(NewBinding("status.set", "ctrl+s").WithArgs(map[string]any{"text": "saved"}))

	clone := km.Clone()
	clone.Bindings[0].Keys[0] = "ctrl+x"
	clone.Bindings[0].Args["text"] = "changed"

	if km.Bindings[0].Keys[0] != "ctrl+s" {
		t.Errorf("original keys changed to %q", km.Bindings[0].Keys[0])
	}
	if km.Bindings[0].Args["text"] != "saved" {
		t.Errorf("original args changed to %v", km.Bindings[0].Args["text"])
	}
}

func TestBindingIDs(t *testing.T) {
	bindings := []Binding{
		NewBinding("status.set", "ctrl+a"),
		{ID: "quit", Keys: []string{"ctrl+q"}, Action: "app.quit"},
		NewBinding("status.set", "ctrl+b"),
	}
	want := []string{"status.set#0", "id:quit", "status.set#1"}
	got := bindingIDs(bindings)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bindingIDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBindingSpecAcceptsAliases(t *testing.T) {
	b := NewBinding("app.quit", "Ctrl + Esc", "alt+up")
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	spec := b.Spec()
	if !spec.Matches(key.NewEvent(key.NameEscape, key.ModCtrl)) {
		t.Error("Spec() should match Ctrl+Escape")
	}
	if !spec.Matches(key.NewEvent(key.NameUp, key.ModAlt)) {
		t.Error("Spec() should match Alt+ArrowUp")
	}
}
