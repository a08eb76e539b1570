package terminal

import (
	"fmt"
	"unicode/utf8"
)

// KeyCode identifies the kind of key event.
type KeyCode int

const (
	KeyOther KeyCode = iota
	KeyChar
	KeyBackspace
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// keyNames follows the naming used by Bubble Tea so bubbles/key bindings
// can match our events.
var keyNames = map[KeyCode]string{
	KeyBackspace: "backspace",
	KeyEnter:     "enter",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

// String returns a human-readable name for the key code
func (c KeyCode) String() string {
	switch c {
	case KeyOther:
		return "other"
	case KeyChar:
		return "char"
	}
	if name, ok := keyNames[c]; ok {
		return name
	}
	return fmt.Sprintf("KeyCode(%d)", int(c))
}

// Key is a single decoded key event.
type Key struct {
	Code KeyCode
	Rune rune // Set when Code is KeyChar
}

// Convenience values for the named keys.
var (
	Enter     = Key{Code: KeyEnter}
	Backspace = Key{Code: KeyBackspace}
	Up        = Key{Code: KeyUp}
	Down      = Key{Code: KeyDown}
	Left      = Key{Code: KeyLeft}
	Right     = Key{Code: KeyRight}
	Space     = Char(' ')
)

// Char returns the key event for a printable rune.
func Char(r rune) Key {
	return Key{Code: KeyChar, Rune: r}
}

// String returns the Bubble Tea style name of the key. Printable keys
// return the rune itself; unrecognised keys return an empty string.
func (k Key) String() string {
	switch k.Code {
	case KeyChar:
		return string(k.Rune)
	case KeyOther:
		return ""
	}
	return keyNames[k.Code]
}

// ParseKey is the inverse of Key.String. A single rune becomes a KeyChar
// event, a known name becomes the matching named key and anything else
// becomes KeyOther.
func ParseKey(name string) Key {
	for code, n := range keyNames {
		if n == name {
			return Key{Code: code}
		}
	}
	if name == "space" {
		return Space
	}
	if r, size := utf8.DecodeRuneInString(name); size > 0 && size == len(name) && r != utf8.RuneError {
		return Char(r)
	}
	return Key{Code: KeyOther}
}
