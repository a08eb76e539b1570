package terminal

import (
	"bufio"
	"io"
	"unicode"
	"unicode/utf8"
)

// Decoder turns the byte stream of a raw-mode terminal into key events.
//
// Only the keys the prompts act on are decoded by name. Everything else,
// including unknown escape sequences, becomes a KeyOther event so callers can
// ignore it.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// ReadKey blocks until a complete key event has been read.
func (d *Decoder) ReadKey() (Key, error) {
	r, size, err := d.r.ReadRune()
	if err != nil {
		return Key{}, err
	}

	switch r {
	case '\r', '\n':
		return Enter, nil
	case 0x7f, 0x08:
		return Backspace, nil
	case 0x03: // Ctrl+C
		return Key{}, ErrInterrupted
	case 0x1b:
		return d.readEscape()
	}

	if r == utf8.RuneError && size == 1 {
		return Key{Code: KeyOther}, nil
	}
	if unicode.IsControl(r) {
		return Key{Code: KeyOther}, nil
	}
	return Char(r), nil
}

// readEscape decodes what follows an ESC byte. A lone ESC (nothing else
// buffered from the same read) is reported as KeyOther.
func (d *Decoder) readEscape() (Key, error) {
	if d.r.Buffered() == 0 {
		return Key{Code: KeyOther}, nil
	}

	b, err := d.r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	if b != '[' && b != 'O' {
		// Alt+key; drop the modifier and the key
		return Key{Code: KeyOther}, nil
	}

	// CSI / SS3: skip parameter and intermediate bytes up to the final byte
	var final byte
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if c >= 0x40 && c <= 0x7e {
			final = c
			break
		}
	}

	switch final {
	case 'A':
		return Up, nil
	case 'B':
		return Down, nil
	case 'C':
		return Right, nil
	case 'D':
		return Left, nil
	}
	return Key{Code: KeyOther}, nil
}
