package prompt

import (
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/ui"
)

// Validator converts the raw text of an answer into a value. Returning an
// error rejects the answer; the error message is shown to the user and the
// prompt keeps editing. Validators may be called any number of times.
type Validator[T any] func(input string) (T, error)

// Input asks for a single line of text and converts it with a Validator.
//
// Example:
//
//	name, err := prompt.NewInput("What's your name?", func(s string) (string, error) {
//	    if len(s) <= 3 {
//	        return "", prompt.NewValidationError("Too short")
//	    }
//	    return s, nil
//	}).Charset(prompt.RuneRange('a', 'z')...).Ask(dev)
type Input[T any] struct {
	title    string
	def      string
	charset  Charset
	validate Validator[T]
	keys     KeyMap
	theme    *ui.Theme
}

// NewInput creates an input with the given title and validator.
func NewInput[T any](title string, validate Validator[T]) *Input[T] {
	return &Input[T]{
		title:    title,
		validate: validate,
		keys:     DefaultKeyMap(),
	}
}

// Default sets the text the buffer starts with.
func (in *Input[T]) Default(text string) *Input[T] {
	in.def = text
	return in
}

// Charset restricts which runes may be typed. Other runes are dropped
// silently. With no arguments the restriction is removed.
func (in *Input[T]) Charset(runes ...rune) *Input[T] {
	if len(runes) == 0 {
		in.charset = nil
		return in
	}
	in.charset = NewCharset(runes...)
	return in
}

// Theme sets the theme used for rendering.
func (in *Input[T]) Theme(t *ui.Theme) *Input[T] {
	in.theme = t
	return in
}

// KeyMap replaces the key bindings.
func (in *Input[T]) KeyMap(k KeyMap) *Input[T] {
	in.keys = k
	return in
}

// Ask runs the prompt on dev until an answer passes validation.
func (in *Input[T]) Ask(dev terminal.Device) (T, error) {
	var zero T
	theme := themeOrDefault(in.theme)
	s := newScreen(dev, in.title)

	if err := s.writeLine(theme.Question(in.title, action(in.keys.Proceed, ""))); err != nil {
		return zero, err
	}

	buf := NewBuffer(in.def)
	errShown := false

	if err := in.paint(s, theme, buf); err != nil {
		return zero, err
	}

	for {
		k, err := s.readKey()
		if err != nil {
			return zero, err
		}

		switch {
		case k.Code == terminal.KeyChar && !unicode.IsControl(k.Rune):
			if !in.charset.Allows(k.Rune) {
				continue
			}
			atEnd := buf.AtEnd()
			buf.Insert(k.Rune)
			if atEnd {
				err = s.writeString(string(k.Rune))
			} else {
				err = in.paint(s, theme, buf)
			}

		case matches(k, in.keys.Backspace):
			atEnd := buf.AtEnd()
			r, ok := buf.Backspace()
			if !ok {
				continue
			}
			if atEnd {
				err = s.clearChars(runewidth.RuneWidth(r))
			} else {
				err = in.paint(s, theme, buf)
			}

		case matches(k, in.keys.Left):
			if r, ok := buf.Left(); ok {
				err = s.moveCursor(-runewidth.RuneWidth(r))
			}

		case matches(k, in.keys.Right):
			if r, ok := buf.Right(); ok {
				err = s.moveCursor(runewidth.RuneWidth(r))
			}

		case matches(k, in.keys.Proceed):
			value, verr := in.validate(buf.String())
			if verr == nil {
				if err := in.settle(s, theme, buf.String(), errShown); err != nil {
					return zero, err
				}
				logging.LogAnswer(in.title, buf.String())
				return value, nil
			}

			logging.LogRejected(in.title, verr.Error())
			err = in.reject(s, theme, buf, verr.Error(), errShown)
			errShown = true
		}

		if err != nil {
			return zero, err
		}
	}
}

// paint redraws the input line and puts the cursor back over the buffer
// position.
func (in *Input[T]) paint(s *screen, theme *ui.Theme, buf *Buffer) error {
	if err := s.clearLine(); err != nil {
		return err
	}
	if err := s.writeString(theme.InputPrefix() + buf.String()); err != nil {
		return err
	}
	return s.moveCursor(buf.CursorWidth() - buf.Width())
}

// reject replaces the input line (and any previous failure line) with a
// failure line, then paints the input below it again.
func (in *Input[T]) reject(s *screen, theme *ui.Theme, buf *Buffer, msg string, errShown bool) error {
	if err := s.clearLine(); err != nil {
		return err
	}
	if errShown {
		if err := s.clearLastLines(1); err != nil {
			return err
		}
	}
	if err := s.writeLine(theme.Failure(msg)); err != nil {
		return err
	}
	return in.paint(s, theme, buf)
}

// settle erases the question, any failure line and the input line and
// writes the settled answer line.
func (in *Input[T]) settle(s *screen, theme *ui.Theme, answer string, errShown bool) error {
	if err := s.clearLine(); err != nil {
		return err
	}
	lines := 1
	if errShown {
		lines = 2
	}
	if err := s.clearLastLines(lines); err != nil {
		return err
	}
	return s.writeLine(theme.Answered(in.title, answer))
}

func themeOrDefault(t *ui.Theme) *ui.Theme {
	if t != nil {
		return t
	}
	return ui.DefaultTheme()
}
