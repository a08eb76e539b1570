package prompt

import (
	"fmt"
	"math"
	"strings"

	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/ui"
)

// MultiSelect asks for any number of options between Min and Max.
// Space toggles the option under the cursor; Enter confirms.
//
// The answer lists the chosen values in the order they were chosen.
type MultiSelect[T comparable] struct {
	title   string
	src     Source[T]
	initial []T
	min     int
	max     int
	keys    KeyMap
	theme   *ui.Theme
}

// NewMultiSelect creates a multiple choice prompt over src with no
// cardinality limits.
func NewMultiSelect[T comparable](title string, src Source[T]) *MultiSelect[T] {
	return &MultiSelect[T]{
		title: title,
		src:   src,
		max:   math.MaxInt,
		keys:  DefaultKeyMap(),
	}
}

// Initial preselects values, in order. A value that is not in the source
// makes Ask fail with a *LogicError.
func (m *MultiSelect[T]) Initial(values ...T) *MultiSelect[T] {
	m.initial = values
	return m
}

// Min sets the fewest options that must be chosen.
func (m *MultiSelect[T]) Min(n int) *MultiSelect[T] {
	m.min = n
	return m
}

// Max sets the most options that may be chosen.
func (m *MultiSelect[T]) Max(n int) *MultiSelect[T] {
	m.max = n
	return m
}

// Theme sets the theme used for rendering.
func (m *MultiSelect[T]) Theme(t *ui.Theme) *MultiSelect[T] {
	m.theme = t
	return m
}

// KeyMap replaces the key bindings.
func (m *MultiSelect[T]) KeyMap(k KeyMap) *MultiSelect[T] {
	m.keys = k
	return m
}

// Check reports the failure message for a selection of n options, or nil
// when n is within bounds.
func (m *MultiSelect[T]) Check(n int) error {
	if n < m.min {
		return Invalidf("Must select at least %d", m.min)
	}
	if n > m.max {
		return Invalidf("Must select %d or less", m.max)
	}
	return nil
}

// Ask runs the prompt on dev until a selection within bounds is confirmed.
func (m *MultiSelect[T]) Ask(dev terminal.Device) ([]T, error) {
	if m.src.Len() == 0 {
		return nil, ErrNoOptions
	}
	sel, err := m.start()
	if err != nil {
		return nil, err
	}

	theme := themeOrDefault(m.theme)
	sc := newScreen(dev, m.title)
	nav := newNavigator(m.src.Len(), 0)
	list := &block{s: sc}
	var state choiceState

	header := theme.Question(m.title, action(m.keys.Toggle, "select"), action(m.keys.Proceed, "proceed"))
	if err := sc.writeLine(header); err != nil {
		return nil, err
	}
	if err := m.draw(sc, theme, nav, list, sel); err != nil {
		return nil, err
	}

	for !state.done() {
		k, err := sc.readKey()
		if err != nil {
			return nil, err
		}
		state.key()

		var changed bool
		switch {
		case matches(k, m.keys.Toggle):
			sel = sel.toggle(nav.cursor)
			changed = true

		case matches(k, m.keys.Proceed):
			if verr := m.Check(len(sel)); verr != nil {
				logging.LogRejected(m.title, verr.Error())
				if err := list.clear(state.reject()); err != nil {
					return nil, err
				}
				if err := sc.writeLine(theme.Failure(verr.Error())); err != nil {
					return nil, err
				}
				if err := m.draw(sc, theme, nav, list, sel); err != nil {
					return nil, err
				}
				continue
			}
			state.finalize()

		case matches(k, m.keys.Up):
			changed = nav.up()
		case matches(k, m.keys.Down):
			changed = nav.down()
		case k.Code == terminal.KeyChar:
			changed = nav.jump(k.Rune)
		}

		if changed {
			if err := list.clear(0); err != nil {
				return nil, err
			}
			if err := m.draw(sc, theme, nav, list, sel); err != nil {
				return nil, err
			}
		}
	}

	values := make([]T, 0, len(sel))
	labels := make([]string, 0, len(sel))
	for _, i := range sel {
		v, ok := m.src.Value(i)
		if !ok {
			return nil, ErrIndexOutOfRange
		}
		values = append(values, v)
		labels = append(labels, m.src.Label(i))
	}

	answer := skipped
	if len(labels) > 0 {
		answer = strings.Join(labels, ", ")
	}
	if err := list.clear(state.settleLines()); err != nil {
		return nil, err
	}
	if err := sc.writeLine(theme.Answered(m.title, answer)); err != nil {
		return nil, err
	}
	logging.LogAnswer(m.title, answer)
	return values, nil
}

func (m *MultiSelect[T]) start() (selection, error) {
	sel := make(selection, 0, len(m.initial))
	for _, v := range m.initial {
		i, ok := m.src.Index(v)
		if !ok {
			return nil, &LogicError{Message: fmt.Sprintf("initial value %v is not one of the options", v)}
		}
		if !sel.contains(i) {
			sel = append(sel, i)
		}
	}
	return sel, nil
}

func (m *MultiSelect[T]) draw(sc *screen, theme *ui.Theme, nav *navigator, list *block, sel selection) error {
	rows, err := sc.rows()
	if err != nil {
		return err
	}
	start, end := nav.window(rows)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, theme.Choice(m.src.Label(i), i == nav.cursor, sel.contains(i)))
	}
	return list.draw(lines)
}
