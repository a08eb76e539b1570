package prompt

import (
	"github.com/mattn/go-runewidth"
)

// Buffer is the text being edited plus a cursor offset, counted in runes.
// The cursor always satisfies 0 <= cursor <= Len().
type Buffer struct {
	text   []rune
	cursor int
}

// NewBuffer creates a buffer holding text with the cursor at its end.
func NewBuffer(text string) *Buffer {
	r := []rune(text)
	return &Buffer{text: r, cursor: len(r)}
}

// String returns the buffer text.
func (b *Buffer) String() string {
	return string(b.text)
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// AtEnd reports whether the cursor is after the last rune.
func (b *Buffer) AtEnd() bool {
	return b.cursor == len(b.text)
}

// Insert puts r at the cursor and advances the cursor past it.
func (b *Buffer) Insert(r rune) {
	b.text = append(b.text, 0)
	copy(b.text[b.cursor+1:], b.text[b.cursor:])
	b.text[b.cursor] = r
	b.cursor++
}

// Backspace removes the rune before the cursor. It returns the removed rune
// and false when there is nothing to remove.
func (b *Buffer) Backspace() (rune, bool) {
	if b.cursor == 0 {
		return 0, false
	}
	r := b.text[b.cursor-1]
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	return r, true
}

// Left moves the cursor back one rune, returning the rune it passed over.
func (b *Buffer) Left() (rune, bool) {
	if b.cursor == 0 {
		return 0, false
	}
	b.cursor--
	return b.text[b.cursor], true
}

// Right moves the cursor forward one rune, returning the rune it passed over.
func (b *Buffer) Right() (rune, bool) {
	if b.cursor == len(b.text) {
		return 0, false
	}
	b.cursor++
	return b.text[b.cursor-1], true
}

// Width returns the display width of the whole buffer in terminal cells.
func (b *Buffer) Width() int {
	return runewidth.StringWidth(string(b.text))
}

// CursorWidth returns the display width of the text before the cursor.
func (b *Buffer) CursorWidth() int {
	return runewidth.StringWidth(string(b.text[:b.cursor]))
}

// Charset is an allow-list of runes. A nil Charset allows everything.
type Charset map[rune]struct{}

// NewCharset creates a charset allowing exactly the given runes.
func NewCharset(runes ...rune) Charset {
	c := make(Charset, len(runes))
	for _, r := range runes {
		c[r] = struct{}{}
	}
	return c
}

// CharsetOf creates a charset allowing every rune in s.
func CharsetOf(s string) Charset {
	return NewCharset([]rune(s)...)
}

// RuneRange returns the runes from lo to hi inclusive, for building
// charsets such as RuneRange('a', 'z').
func RuneRange(lo, hi rune) []rune {
	if hi < lo {
		return nil
	}
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

// Allows reports whether r may be inserted.
func (c Charset) Allows(r rune) bool {
	if c == nil {
		return true
	}
	_, ok := c[r]
	return ok
}
