package prompt

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/ui"
)

// KeyMap binds the keys the prompts react to. Digit jumps ('1'..'9') and
// text input are not configurable.
type KeyMap struct {
	Proceed   key.Binding // Confirm an answer; skips in Select.AskOptional
	Pick      key.Binding // Confirm the highlighted option in Select.AskOptional
	Toggle    key.Binding // Flip the highlighted option in MultiSelect
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Backspace key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Proceed: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "proceed"),
		),
		Pick: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move right"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete"),
		),
	}
}

// matches reports whether k triggers any of the bindings.
func matches(k terminal.Key, bindings ...key.Binding) bool {
	if k.Code == terminal.KeyOther {
		return false
	}
	return key.Matches(k, bindings...)
}

// action converts a binding's help text into a header hint, optionally
// replacing the description.
func action(b key.Binding, desc string) ui.Action {
	h := b.Help()
	if desc == "" {
		desc = h.Desc
	}
	return ui.Action{Key: h.Key, Desc: desc}
}
