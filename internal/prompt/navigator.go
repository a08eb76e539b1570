package prompt

import (
	"slices"
)

// phase is the state of a choice prompt. A rejected answer moves it to
// phaseShowingError; the next key moves it back to phaseEditing.
type phase int

const (
	phaseEditing phase = iota
	phaseShowingError
	phaseFinalized
)

// choiceState drives the phase of a Select or MultiSelect. The failure line
// of a rejection stays on screen after the phase returns to editing, so
// errShown outlives phaseShowingError.
type choiceState struct {
	phase    phase
	errShown bool
}

// key records that a key arrived; a shown error goes back to editing.
func (c *choiceState) key() {
	if c.phase == phaseShowingError {
		c.phase = phaseEditing
	}
}

// reject moves to phaseShowingError. It returns how many lines above the
// option block belong to a previous failure and must be cleared with it.
func (c *choiceState) reject() int {
	prev := 0
	if c.errShown {
		prev = 1
	}
	c.phase = phaseShowingError
	c.errShown = true
	return prev
}

func (c *choiceState) finalize() {
	c.phase = phaseFinalized
}

func (c *choiceState) done() bool {
	return c.phase == phaseFinalized
}

// settleLines is the number of lines above the option block cleared when
// the prompt settles: the header plus any failure line.
func (c *choiceState) settleLines() int {
	if c.errShown {
		return 2
	}
	return 1
}

// reservedRows is the number of terminal rows kept free of options for the
// question line and the line the cursor rests on.
const reservedRows = 2

// navigator is a cursor over count options.
type navigator struct {
	cursor int
	count  int
}

func newNavigator(count, cursor int) *navigator {
	return &navigator{cursor: cursor, count: count}
}

// up moves the cursor one row up, wrapping from the first option to the
// last. It reports whether the cursor changed.
func (n *navigator) up() bool {
	prev := n.cursor
	if n.cursor > 0 {
		n.cursor--
	} else {
		n.cursor = n.count - 1
	}
	return n.cursor != prev
}

// down moves the cursor one row down, wrapping from the last option to the
// first. It reports whether the cursor changed.
func (n *navigator) down() bool {
	prev := n.cursor
	if n.cursor < n.count-1 {
		n.cursor++
	} else {
		n.cursor = 0
	}
	return n.cursor != prev
}

// jump moves the cursor to option digit-1 for the digits '1' to '9'. Digits
// past the last option are ignored.
func (n *navigator) jump(r rune) bool {
	if r < '1' || r > '9' {
		return false
	}
	i := int(r - '1')
	if i >= n.count || i == n.cursor {
		return false
	}
	n.cursor = i
	return true
}

// window returns the half-open range of options visible on a terminal with
// the given number of rows.
func (n *navigator) window(rows int) (int, int) {
	size := pageSize(rows)
	start := page(n.cursor, size) * size
	return start, min(start+size, n.count)
}

// pageSize is the number of options shown at once.
func pageSize(rows int) int {
	return max(rows-reservedRows, 1)
}

// page returns the page the option at index i is on.
func page(i, size int) int {
	return i / size
}

// selection holds chosen option indices in the order they were chosen.
type selection []int

func (s selection) contains(i int) bool {
	return slices.Contains(s, i)
}

// toggle removes i when present, otherwise appends it.
func (s selection) toggle(i int) selection {
	if at := slices.Index(s, i); at >= 0 {
		return slices.Delete(s, at, at+1)
	}
	return append(s, i)
}

// block tracks how many option rows are on screen so they can be erased.
type block struct {
	s     *screen
	drawn int
}

func (b *block) draw(lines []string) error {
	for _, line := range lines {
		if err := b.s.writeLine(line); err != nil {
			return err
		}
		b.drawn++
	}
	return nil
}

// clear erases the drawn rows plus extra lines above them.
func (b *block) clear(extra int) error {
	n := b.drawn + extra
	b.drawn = 0
	return b.s.clearLastLines(n)
}
