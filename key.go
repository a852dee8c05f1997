package celadon

import "strings"

// Key represents a keyboard key.
type Key uint16

const (
	// KeyNone represents no key (zero value).
	KeyNone Key = iota

	// KeyRune represents a printable character. Check KeyEvent.Rune for the character.
	KeyRune

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyCtrlA through KeyCtrlZ are contiguous, so KeyCtrlA+n is Ctrl plus
	// the nth letter.
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// KeyCtrlSpace represents Ctrl+Space (NUL character, 0x00)
	KeyCtrlSpace
)

// keyNames holds the binding name of every non-rune key. The names are what
// Bind accepts, such as "up", "return" or "ctrl-c".
var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyEscape:    "escape",
	KeyEnter:     "return",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
	KeyCtrlSpace: "ctrl-space",
}

// keyAliases are extra names a key answers to after its own.
var keyAliases = map[Key][]string{
	KeyEnter:  {"enter"},
	KeyEscape: {"esc"},
}

// String returns the binding name of the key.
func (k Key) String() string {
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return "ctrl-" + string(rune('a'+k-KeyCtrlA))
	}
	if k == KeyRune {
		return "rune"
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Modifier represents keyboard modifier flags.
type Modifier uint8

const (
	// ModNone represents no modifiers.
	ModNone Modifier = 0
	// ModCtrl represents the Ctrl modifier.
	ModCtrl Modifier = 1 << iota
	// ModAlt represents the Alt (option) modifier.
	ModAlt
	// ModShift represents the Shift modifier.
	ModShift
)

// Has checks if the modifier set includes the given modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// prefix returns the modifiers as a binding prefix such as "shift-ctrl-".
func (m Modifier) prefix(sep string) string {
	var b strings.Builder
	if m.Has(ModShift) {
		b.WriteString("shift" + sep)
	}
	if m.Has(ModCtrl) {
		b.WriteString("ctrl" + sep)
	}
	if m.Has(ModAlt) {
		b.WriteString("alt" + sep)
	}
	return b.String()
}

// String returns a human-readable representation of the modifiers.
func (m Modifier) String() string {
	if m == ModNone {
		return "none"
	}
	return strings.TrimSuffix(m.prefix("+"), "+")
}

// KeyEvent is a key press read from the terminal.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mod  Modifier
}

func (KeyEvent) inputEvent() {}

// Name returns the binding name of the event: "a", "alt-x", "shift-tab",
// "ctrl-c", "return".
func (e KeyEvent) Name() string {
	if e.Key == KeyRune {
		mod := e.Mod &^ ModShift
		return mod.prefix("-") + string(e.Rune)
	}
	if e.Key >= KeyCtrlA && e.Key <= KeyCtrlZ {
		return e.Key.String()
	}
	return e.Mod.prefix("-") + e.Key.String()
}

// Names returns every name the event can be bound under, most specific
// first.
func (e KeyEvent) Names() []string {
	names := []string{e.Name()}
	if e.Mod == ModNone {
		names = append(names, keyAliases[e.Key]...)
	}
	return names
}

// IsRune reports whether the event is the printable character r.
func (e KeyEvent) IsRune(r rune) bool {
	return e.Key == KeyRune && e.Rune == r
}

// navigation returns +1 for keys that move selection forward, -1 for keys
// that move it back and 0 otherwise.
func (e KeyEvent) navigation() int {
	switch e.Name() {
	case "down", "right", "tab":
		return 1
	case "up", "left", "shift-tab":
		return -1
	}
	return 0
}
