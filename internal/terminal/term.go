package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI control sequences used by Term
const (
	ansiClearLine  = "\r\x1b[2K"
	ansiClearDown  = "\r\x1b[J"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
)

// Term is a Device backed by a real terminal.
type Term struct {
	in    *os.File
	out   io.Writer
	keys  *Decoder
	state *term.State
}

// NewTerm creates a Term reading keys from in and writing to out.
func NewTerm(in *os.File, out io.Writer) *Term {
	return &Term{
		in:   in,
		out:  out,
		keys: NewDecoder(in),
	}
}

// Stdio returns a Term that reads the keyboard from stdin and renders on
// stderr, leaving stdout free for answers.
func Stdio() *Term {
	return NewTerm(os.Stdin, os.Stderr)
}

// IsTerminal reports whether the input side is an interactive terminal.
func (t *Term) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// MakeRaw puts the input terminal into raw mode. Restore must be called
// to return it to its previous state.
func (t *Term) MakeRaw() error {
	if t.state != nil {
		return nil
	}
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.state = state
	return nil
}

// Restore returns the terminal to the state saved by MakeRaw.
func (t *Term) Restore() error {
	if t.state == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.state)
	t.state = nil
	return err
}

// HideCursor hides the terminal cursor.
func (t *Term) HideCursor() error {
	return t.write(ansiHideCursor)
}

// ShowCursor shows the terminal cursor.
func (t *Term) ShowCursor() error {
	return t.write(ansiShowCursor)
}

// ReadKey implements Device
func (t *Term) ReadKey() (Key, error) {
	return t.keys.ReadKey()
}

// WriteLine implements Device. Lines end in CRLF because raw mode disables
// output post-processing.
func (t *Term) WriteLine(text string) error {
	return t.write(text + "\r\n")
}

// WriteString implements Device
func (t *Term) WriteString(text string) error {
	return t.write(text)
}

// MoveCursor implements Device
func (t *Term) MoveCursor(delta int) error {
	switch {
	case delta > 0:
		return t.write(fmt.Sprintf("\x1b[%dC", delta))
	case delta < 0:
		return t.write(fmt.Sprintf("\x1b[%dD", -delta))
	}
	return nil
}

// ClearLine implements Device
func (t *Term) ClearLine() error {
	return t.write(ansiClearLine)
}

// ClearLastLines implements Device
func (t *Term) ClearLastLines(n int) error {
	if n <= 0 {
		return nil
	}
	return t.write(fmt.Sprintf("\x1b[%dA", n) + ansiClearDown)
}

// ClearChars implements Device
func (t *Term) ClearChars(n int) error {
	if n <= 0 {
		return nil
	}
	return t.write(fmt.Sprintf("\x1b[%dD\x1b[K", n))
}

// Size implements Device. It asks the input terminal first and falls back
// to the output when that is a terminal file.
func (t *Term) Size() (int, int, error) {
	width, height, err := term.GetSize(int(t.in.Fd()))
	if err == nil {
		return height, width, nil
	}
	if f, ok := t.out.(*os.File); ok {
		if width, height, ferr := term.GetSize(int(f.Fd())); ferr == nil {
			return height, width, nil
		}
	}
	return 0, 0, errors.Join(errors.New("terminal size unavailable"), err)
}

func (t *Term) write(s string) error {
	_, err := io.WriteString(t.out, s)
	return err
}
