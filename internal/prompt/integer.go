package prompt

import (
	"errors"
	"strconv"

	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/ui"
)

// Integral is the set of integer types Integer can read.
type Integral interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer asks for a whole number between Min and Max inclusive. Only
// digits (and '-' when Min is negative) can be typed.
//
// Example:
//
//	age, err := prompt.NewInteger[uint8]("How old are you?").Max(120).Ask(dev)
type Integer[T Integral] struct {
	title   string
	def     string
	min     T
	max     T
	nonZero bool
	keys    KeyMap
	theme   *ui.Theme
}

// NewInteger creates an integer input bounded by the range of T.
func NewInteger[T Integral](title string) *Integer[T] {
	lo, hi := bounds[T]()
	return &Integer[T]{
		title: title,
		min:   lo,
		max:   hi,
		keys:  DefaultKeyMap(),
	}
}

// Min sets the smallest accepted value.
func (n *Integer[T]) Min(v T) *Integer[T] {
	n.min = v
	return n
}

// Max sets the largest accepted value.
func (n *Integer[T]) Max(v T) *Integer[T] {
	n.max = v
	return n
}

// NonZero rejects 0 even when it lies within the bounds.
func (n *Integer[T]) NonZero() *Integer[T] {
	n.nonZero = true
	return n
}

// Default pre-fills the buffer with v.
func (n *Integer[T]) Default(v T) *Integer[T] {
	n.def = format(v)
	return n
}

// Theme sets the theme used for rendering.
func (n *Integer[T]) Theme(t *ui.Theme) *Integer[T] {
	n.theme = t
	return n
}

// KeyMap replaces the key bindings.
func (n *Integer[T]) KeyMap(k KeyMap) *Integer[T] {
	n.keys = k
	return n
}

// Ask runs the prompt on dev until a number within bounds is entered.
func (n *Integer[T]) Ask(dev terminal.Device) (T, error) {
	return NewInput(n.title, n.Validate).
		Default(n.def).
		Charset(n.charset()...).
		Theme(n.theme).
		KeyMap(n.keys).
		Ask(dev)
}

// Validate parses input and checks it against the bounds. Failures are
// *ValidationError values carrying the message shown to the user.
func (n *Integer[T]) Validate(input string) (T, error) {
	v, err := parse[T](input)
	if err != nil {
		var numErr *strconv.NumError
		switch {
		case input == "":
			return 0, NewValidationError("You must enter a value")
		case errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrSyntax):
			return 0, NewValidationError("An invalid character is present")
		case errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange):
			if v < 0 {
				return 0, n.tooSmall()
			}
			return 0, n.tooBig()
		default:
			return 0, NewValidationError("Unable to convert input to number")
		}
	}

	if n.nonZero && v == 0 {
		return 0, NewValidationError("Number can't be zero")
	}
	if v < n.min {
		return 0, n.tooSmall()
	}
	if v > n.max {
		return 0, n.tooBig()
	}
	return v, nil
}

func (n *Integer[T]) tooSmall() error {
	return Invalidf("Too small! Must be above or equal to %s", format(n.min))
}

func (n *Integer[T]) tooBig() error {
	return Invalidf("Too big! Must be below or equal to %s", format(n.max))
}

func (n *Integer[T]) charset() []rune {
	runes := RuneRange('0', '9')
	if n.min < 0 {
		runes = append(runes, '-')
	}
	return runes
}

// signed reports whether T can hold negative values.
func signed[T Integral]() bool {
	var zero T
	return zero-1 < zero
}

// bitSize returns the width of T in bits.
func bitSize[T Integral]() int {
	bits := 0
	for v := T(1); v != 0; v <<= 1 {
		bits++
	}
	return bits
}

// bounds returns the smallest and largest values of T.
func bounds[T Integral]() (T, T) {
	if !signed[T]() {
		return 0, ^T(0)
	}
	hi := T(1)<<(bitSize[T]()-1) - 1
	return -hi - 1, hi
}

// parse converts decimal text to T. On a range error the returned value is
// the bound that was crossed, like strconv does.
func parse[T Integral](s string) (T, error) {
	if signed[T]() {
		v, err := strconv.ParseInt(s, 10, bitSize[T]())
		return T(v), err
	}
	v, err := strconv.ParseUint(s, 10, bitSize[T]())
	return T(v), err
}

func format[T Integral](v T) string {
	if signed[T]() {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}
