// Package keymap binds configured key combos to actions.
//
// A keymap file lists bindings. Each binding names one combo or a list
// of combos (any of them triggers it), an action, and optional fixed
// arguments:
//
//	name = "default"
//
//	[[bindings]]
//	keys = ["ctrl+k", "meta+k"]
//	action = "status.set"
//	args = { text = "palette" }
//
//	[[bindings]]
//	keys = "ctrl+q"
//	action = "app.quit"
//
// Files ending in .yaml or .yml use the same fields in YAML.
//
// Manager keeps one shortcut hook per binding on an input surface and
// re-renders them when a new keymap is applied; Watch reloads the file
// when it changes on disk.
package keymap
