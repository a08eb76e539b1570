package prompt

import (
	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/ui"
)

// skipped is the settled answer of a prompt left without a choice.
const skipped = "Skipped"

// Select asks for exactly one option from a Source.
//
// Options that do not fit on the terminal are paged: with r rows, r-2
// options are shown at a time and the page follows the cursor.
type Select[T comparable] struct {
	title   string
	src     Source[T]
	initial *T
	keys    KeyMap
	theme   *ui.Theme
}

// NewSelect creates a select over src.
func NewSelect[T comparable](title string, src Source[T]) *Select[T] {
	return &Select[T]{
		title: title,
		src:   src,
		keys:  DefaultKeyMap(),
	}
}

// Initial places the cursor on v. A value that is not in the source makes
// Ask fail with a *LogicError.
func (s *Select[T]) Initial(v T) *Select[T] {
	s.initial = &v
	return s
}

// Theme sets the theme used for rendering.
func (s *Select[T]) Theme(t *ui.Theme) *Select[T] {
	s.theme = t
	return s
}

// KeyMap replaces the key bindings.
func (s *Select[T]) KeyMap(k KeyMap) *Select[T] {
	s.keys = k
	return s
}

// Ask runs the prompt on dev until an option is confirmed with Enter.
func (s *Select[T]) Ask(dev terminal.Device) (T, error) {
	v, _, err := s.run(dev, false)
	return v, err
}

// AskOptional runs the prompt on dev. Space confirms the option under the
// cursor; Enter skips the question and returns false.
func (s *Select[T]) AskOptional(dev terminal.Device) (T, bool, error) {
	return s.run(dev, true)
}

func (s *Select[T]) run(dev terminal.Device, optional bool) (T, bool, error) {
	var zero T
	if s.src.Len() == 0 {
		return zero, false, ErrNoOptions
	}
	cursor, err := s.start()
	if err != nil {
		return zero, false, err
	}

	theme := themeOrDefault(s.theme)
	sc := newScreen(dev, s.title)
	nav := newNavigator(s.src.Len(), cursor)
	list := &block{s: sc}

	pick, skip := s.keys.Proceed, s.keys.Proceed
	header := theme.Question(s.title, action(s.keys.Proceed, "select"))
	if optional {
		pick = s.keys.Pick
		header = theme.Question(s.title, action(s.keys.Pick, "select"), action(s.keys.Proceed, "skip"))
	}

	if err := sc.writeLine(header); err != nil {
		return zero, false, err
	}
	if err := s.draw(sc, theme, nav, list); err != nil {
		return zero, false, err
	}

	var (
		state  choiceState
		chosen T
		ok     bool
		answer = skipped
	)
	for !state.done() {
		k, err := sc.readKey()
		if err != nil {
			return zero, false, err
		}
		state.key()

		var moved bool
		switch {
		case matches(k, pick):
			v, found := s.src.Value(nav.cursor)
			if !found {
				return zero, false, ErrIndexOutOfRange
			}
			chosen, ok, answer = v, true, s.src.Label(nav.cursor)
			state.finalize()

		case optional && matches(k, skip):
			state.finalize()

		case matches(k, s.keys.Up):
			moved = nav.up()
		case matches(k, s.keys.Down):
			moved = nav.down()
		case k.Code == terminal.KeyChar:
			moved = nav.jump(k.Rune)
		}

		if moved {
			if err := list.clear(0); err != nil {
				return zero, false, err
			}
			if err := s.draw(sc, theme, nav, list); err != nil {
				return zero, false, err
			}
		}
	}

	if err := list.clear(state.settleLines()); err != nil {
		return zero, false, err
	}
	if err := sc.writeLine(theme.Answered(s.title, answer)); err != nil {
		return zero, false, err
	}
	logging.LogAnswer(s.title, answer)
	return chosen, ok, nil
}

func (s *Select[T]) start() (int, error) {
	if s.initial == nil {
		return 0, nil
	}
	i, ok := s.src.Index(*s.initial)
	if !ok {
		return 0, &LogicError{Message: "initial value is not one of the options"}
	}
	return i, nil
}

func (s *Select[T]) draw(sc *screen, theme *ui.Theme, nav *navigator, list *block) error {
	rows, err := sc.rows()
	if err != nil {
		return err
	}
	start, end := nav.window(rows)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, theme.Option(s.src.Label(i), i == nav.cursor))
	}
	return list.draw(lines)
}
