// Package config loads keyhook settings.
//
// Settings come from three places, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file
//  3. KEYHOOK_* environment variables
//
// A config file looks like:
//
//	[logging]
//	level = "debug"
//	file = "/tmp/keyhook.log"
//
//	[keymap]
//	path = "~/.config/keyhook/keys.toml"
//	watch = true
//	debounce = "150ms"
package config
