package key

// Canonical names for non-printable keys, lower-cased. They follow the
// names browsers report in KeyboardEvent.key so combos written for web
// front-ends carry over unchanged.
const (
	NameEnter     = "Enter"
	NameEscape    = "Escape"
	NameTab       = "Tab"
	NameBackspace = "Backspace"
	NameDelete    = "Delete"
	NameInsert    = "Insert"
	NameHome      = "Home"
	NameEnd       = "End"
	NamePageUp    = "PageUp"
	NamePageDown  = "PageDown"
	NameUp        = "ArrowUp"
	NameDown      = "ArrowDown"
	NameLeft      = "ArrowLeft"
	NameRight     = "ArrowRight"
	NameSpace     = " "
)

// keyAliasMap maps alternate spellings (lowercase) to the lower-cased
// canonical key name. Only keymap files get aliases; ParseCombo compares
// keys literally.
var keyAliasMap = map[string]string{
	"esc":      "escape",
	"return":   "enter",
	"cr":       "enter",
	"bs":       "backspace",
	"del":      "delete",
	"ins":      "insert",
	"pgup":     "pageup",
	"pgdn":     "pagedown",
	"up":       "arrowup",
	"down":     "arrowdown",
	"left":     "arrowleft",
	"right":    "arrowright",
	"space":    " ",
	"spacebar": " ",
	"plus":     "+",
}

// canonicalKey resolves aliases for an already lower-cased, trimmed key name.
func canonicalKey(name string) string {
	if canon, ok := keyAliasMap[name]; ok {
		return canon
	}
	return name
}

// keyDisplayName returns the name a lower-cased key is written as in a combo.
func keyDisplayName(name string) string {
	switch name {
	case " ":
		return "space"
	case "+":
		return "plus"
	}
	return name
}
