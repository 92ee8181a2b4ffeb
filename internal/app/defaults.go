package app

import (
	"github.com/dshills/keyhook/internal/action"
	"github.com/dshills/keyhook/internal/input/key"
	"github.com/dshills/keyhook/internal/input/keymap"
)

// quitKeys trigger the default quit action when no binding prevents them.
var quitKeys = key.Keys("ctrl+c", "escape")

// DefaultKeymap returns the bindings used when no keymap file is set.
func DefaultKeymap() *keymap.Keymap {
	km := keymap.NewKeymap("default")
	km.AddBinding(keymap.NewBinding(action.Quit, "ctrl+q").
		WithDescription("Quit"))
	km.AddBinding(keymap.NewBinding(action.SetStatus, "ctrl+s", "meta+s").
		WithArgs(map[string]any{"text": "saved"}).
		WithDescription("Show a status message"))
	km.AddBinding(keymap.NewBinding(action.LogMsg, "ctrl+shift+k").
		WithDescription("Log the shortcut"))
	km.AddBinding(keymap.NewBinding(action.RunScript, "alt+h").
		WithArgs(map[string]any{"code": `status("hello from " .. event.combo)`}).
		WithDescription("Run a Lua snippet"))
	return km
}
