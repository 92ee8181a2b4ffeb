// Package shortcut binds key combinations to callbacks on an input surface.
//
// A Hook owns at most one listener on its surface. Render installs the
// listener and, when keys, callback or dependencies change, replaces it:
// the old listener is always removed before the new one is added. Close
// removes it for good.
//
//	h := shortcut.New(term)
//	defer h.Close()
//
//	// Re-render whenever the inputs change, as a UI would.
//	h.Render(key.Keys("ctrl+k", "meta+k"), openPalette, paletteOpen)
//
// Scope and With tie a binding to a context or a function call so that
// teardown runs on every exit path.
package shortcut
