// Package terminaltest provides a scripted terminal.Device for tests.
//
// Screen replays a fixed list of key events and keeps a simulated screen:
// the committed lines above the cursor, the current line and the cursor
// column. ANSI styling is stripped on write so assertions can compare plain
// text. Columns are counted in runes, which matches the real terminal for
// the single-width text the tests use.
package terminaltest

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/termask/internal/terminal"
)

// Screen is a simulated terminal.Device.
type Screen struct {
	rows, cols int

	keys []terminal.Key
	read int

	lines []string
	cur   []rune
	col   int

	// WriteErr, when set, is returned by every output operation.
	WriteErr error
	// Ops records the name of every operation in call order.
	Ops []string
}

// New creates a Screen with the given height that replays keys in order.
// Once the keys run out ReadKey returns io.EOF.
func New(rows int, keys ...terminal.Key) *Screen {
	return &Screen{rows: rows, cols: 80, keys: keys}
}

// Type converts text into key events: '\n' becomes Enter, every other rune
// a character key.
func Type(text string) []terminal.Key {
	keys := make([]terminal.Key, 0, len(text))
	for _, r := range text {
		if r == '\n' {
			keys = append(keys, terminal.Enter)
			continue
		}
		keys = append(keys, terminal.Char(r))
	}
	return keys
}

// Seq flattens keys and key slices into one script.
func Seq(parts ...any) []terminal.Key {
	var keys []terminal.Key
	for _, p := range parts {
		switch v := p.(type) {
		case terminal.Key:
			keys = append(keys, v)
		case []terminal.Key:
			keys = append(keys, v...)
		case string:
			keys = append(keys, Type(v)...)
		default:
			panic(fmt.Sprintf("terminaltest: unsupported key part %T", p))
		}
	}
	return keys
}

// Push appends more keys to the script.
func (s *Screen) Push(keys ...terminal.Key) {
	s.keys = append(s.keys, keys...)
}

// Remaining returns the number of keys not yet read.
func (s *Screen) Remaining() int {
	return len(s.keys) - s.read
}

// Lines returns the committed lines, top to bottom.
func (s *Screen) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Current returns the text of the line the cursor is on.
func (s *Screen) Current() string {
	return string(s.cur)
}

// Column returns the cursor column on the current line.
func (s *Screen) Column() int {
	return s.col
}

// Text returns every visible line, including a non-empty current line.
func (s *Screen) Text() string {
	lines := s.Lines()
	if len(s.cur) > 0 {
		lines = append(lines, s.Current())
	}
	return strings.Join(lines, "\n")
}

// ReadKey implements terminal.Device
func (s *Screen) ReadKey() (terminal.Key, error) {
	s.Ops = append(s.Ops, "read key")
	if s.read >= len(s.keys) {
		return terminal.Key{}, io.EOF
	}
	k := s.keys[s.read]
	s.read++
	return k, nil
}

// WriteLine implements terminal.Device
func (s *Screen) WriteLine(text string) error {
	if err := s.op("write line"); err != nil {
		return err
	}
	s.put(text)
	s.lines = append(s.lines, string(s.cur))
	s.cur = nil
	s.col = 0
	return nil
}

// WriteString implements terminal.Device
func (s *Screen) WriteString(text string) error {
	if err := s.op("write string"); err != nil {
		return err
	}
	s.put(text)
	return nil
}

// MoveCursor implements terminal.Device
func (s *Screen) MoveCursor(delta int) error {
	if err := s.op("move cursor"); err != nil {
		return err
	}
	s.col += delta
	if s.col < 0 {
		s.col = 0
	}
	if s.col > s.cols-1 {
		s.col = s.cols - 1
	}
	return nil
}

// ClearLine implements terminal.Device
func (s *Screen) ClearLine() error {
	if err := s.op("clear line"); err != nil {
		return err
	}
	s.cur = nil
	s.col = 0
	return nil
}

// ClearLastLines implements terminal.Device
func (s *Screen) ClearLastLines(n int) error {
	if err := s.op("clear last lines"); err != nil {
		return err
	}
	if n > len(s.lines) {
		return fmt.Errorf("terminaltest: clearing %d lines but only %d on screen", n, len(s.lines))
	}
	s.lines = s.lines[:len(s.lines)-n]
	s.cur = nil
	s.col = 0
	return nil
}

// ClearChars implements terminal.Device
func (s *Screen) ClearChars(n int) error {
	if err := s.op("clear chars"); err != nil {
		return err
	}
	s.col -= n
	if s.col < 0 {
		s.col = 0
	}
	if s.col < len(s.cur) {
		s.cur = s.cur[:s.col]
	}
	return nil
}

// Size implements terminal.Device
func (s *Screen) Size() (int, int, error) {
	if err := s.op("size"); err != nil {
		return 0, 0, err
	}
	return s.rows, s.cols, nil
}

func (s *Screen) op(name string) error {
	s.Ops = append(s.Ops, name)
	return s.WriteErr
}

// put writes text at the cursor, overwriting what is there.
func (s *Screen) put(text string) {
	for _, r := range ansi.Strip(text) {
		for len(s.cur) < s.col {
			s.cur = append(s.cur, ' ')
		}
		if s.col < len(s.cur) {
			s.cur[s.col] = r
		} else {
			s.cur = append(s.cur, r)
		}
		s.col++
	}
}
