// Package key provides key event types and shortcut matching for the input system.
//
// This package defines the fundamental types for keyboard shortcuts:
//
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key-down with modifiers, timestamp and a default-action flag
//   - Combo: One primary key plus an exact set of modifiers
//   - Spec: An ordered list of combos, any of which triggers a shortcut
//
// # Combo Specifications
//
// Combos are written as "+"-joined segments, case-insensitive. The last
// segment is the primary key, the others are modifiers:
//
//	"k"             - K with no modifiers
//	"ctrl+k"        - Ctrl+K
//	"ctrl+shift+p"  - Ctrl+Shift+P
//	"meta+enter"    - Meta+Enter
//
// # Matching
//
// A combo matches an event when the primary keys are equal and the
// event's four modifier flags are exactly the combo's modifier set.
// "ctrl+k" does not match Ctrl+Alt+K.
//
// Keys are compared literally after lower-casing: "esc" does not match an
// Escape event and "ctrl + k" is malformed. Malformed combos never match.
// Parsing does not fail; use ValidateCombo to learn why a combo is bad.
//
// # Keymap Combos
//
// ParseConfigCombo and ConfigKeys read combos from keymap files. They
// trim spaces around segments and accept aliases such as "esc",
// "return", "up", "space" and "plus".
package key
