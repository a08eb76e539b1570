package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Palette holds the colours and glyphs a Theme renders with. Colours are
// any value lipgloss.Color accepts ("#43BF6D", "2", ...).
type Palette struct {
	Accent    string `yaml:"accent"`    // Question mark
	Highlight string `yaml:"highlight"` // Cursor marker and the row under the cursor
	Error     string `yaml:"error"`     // Failure marker and message
	Muted     string `yaml:"muted"`     // Settled answers

	Arrow   string `yaml:"arrow"`   // Cursor and input marker
	Filled  string `yaml:"filled"`  // Selected option
	Outline string `yaml:"outline"` // Unselected option
	Failure string `yaml:"failure"` // Validation failure marker
}

// DefaultPalette returns the built-in colours and glyphs.
func DefaultPalette() Palette {
	return Palette{
		Accent:    string(SuccessColor),
		Highlight: string(ErrorColor),
		Error:     string(ErrorColor),
		Muted:     string(MutedColor),
		Arrow:     "❯",
		Filled:    "◉",
		Outline:   "◯",
		Failure:   "X",
	}
}

// Merge returns p with every empty field taken from fallback.
func (p Palette) Merge(fallback Palette) Palette {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Palette{
		Accent:    pick(p.Accent, fallback.Accent),
		Highlight: pick(p.Highlight, fallback.Highlight),
		Error:     pick(p.Error, fallback.Error),
		Muted:     pick(p.Muted, fallback.Muted),
		Arrow:     pick(p.Arrow, fallback.Arrow),
		Filled:    pick(p.Filled, fallback.Filled),
		Outline:   pick(p.Outline, fallback.Outline),
		Failure:   pick(p.Failure, fallback.Failure),
	}
}

// Action describes one key a prompt responds to, e.g. {"enter", "proceed"}.
type Action struct {
	Key  string
	Desc string
}

// Theme renders prompt fragments.
type Theme struct {
	palette Palette

	question  lipgloss.Style
	title     lipgloss.Style
	answer    lipgloss.Style
	keyHint   lipgloss.Style
	failure   lipgloss.Style
	marker    lipgloss.Style
	highlight lipgloss.Style
}

// NewTheme creates a Theme rendering through r with the given palette.
// Empty palette fields fall back to DefaultPalette.
func NewTheme(r *lipgloss.Renderer, p Palette) *Theme {
	p = p.Merge(DefaultPalette())
	return &Theme{
		palette:   p,
		question:  r.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		title:     r.NewStyle().Bold(true),
		answer:    r.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		keyHint:   r.NewStyle().Foreground(lipgloss.Color(p.Error)),
		failure:   r.NewStyle().Foreground(lipgloss.Color(p.Error)),
		marker:    r.NewStyle().Foreground(lipgloss.Color(p.Highlight)),
		highlight: r.NewStyle().Foreground(lipgloss.Color(p.Highlight)).Bold(true),
	}
}

// DefaultTheme renders with the default palette on the process terminal.
func DefaultTheme() *Theme {
	return NewTheme(lipgloss.DefaultRenderer(), DefaultPalette())
}

// PlainTheme renders without any colour or text attributes.
func PlainTheme(p Palette) *Theme {
	return NewTheme(NewRenderer(io.Discard, termenv.Ascii), p)
}

// NewRenderer returns a lipgloss renderer for w pinned to the given colour
// profile instead of detecting it from w.
func NewRenderer(w io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return r
}

// Palette returns the palette the theme was built with.
func (t *Theme) Palette() Palette {
	return t.palette
}

// Question renders the header line of a prompt that is still being
// answered: "? Title (<enter> to proceed)".
func (t *Theme) Question(title string, actions ...Action) string {
	line := fmt.Sprintf("%s %s", t.question.Render("?"), t.title.Render(title))
	if len(actions) == 0 {
		return line
	}
	hints := make([]string, 0, len(actions))
	for _, a := range actions {
		hints = append(hints, fmt.Sprintf("%s to %s", t.keyHint.Render("<"+a.Key+">"), a.Desc))
	}
	return fmt.Sprintf("%s (%s)", line, strings.Join(hints, ", "))
}

// Answered renders the settled line that replaces a finished prompt.
func (t *Theme) Answered(title, answer string) string {
	return fmt.Sprintf("%s %s %s", t.question.Render("?"), t.title.Render(title), t.answer.Render(answer))
}

// Failure renders an inline validation failure line.
func (t *Theme) Failure(msg string) string {
	return fmt.Sprintf("%s %s", t.failure.Render(t.palette.Failure), t.failure.Render(msg))
}

// InputPrefix renders the marker in front of the text being edited.
func (t *Theme) InputPrefix() string {
	return t.marker.Render(strings.Repeat(t.palette.Arrow, 2)) + " "
}

// InputPrefixWidth is the number of terminal cells InputPrefix occupies.
func (t *Theme) InputPrefixWidth() int {
	return runewidth.StringWidth(strings.Repeat(t.palette.Arrow, 2) + " ")
}

// Option renders one row of a single choice list. The row under the cursor
// carries the arrow; the others are indented to line up with it.
func (t *Theme) Option(label string, active bool) string {
	if active {
		return t.marker.Render(t.palette.Arrow) + " " + t.highlight.Render(label)
	}
	return strings.Repeat(" ", runewidth.StringWidth(t.palette.Arrow)+1) + label
}

// Choice renders one row of a multiple choice list. The selection marker
// and the cursor highlight are independent.
func (t *Theme) Choice(label string, active, selected bool) string {
	dot := t.palette.Outline
	if selected {
		dot = t.palette.Filled
	}
	if active {
		return t.marker.Render(dot) + " " + t.highlight.Render(label)
	}
	return dot + " " + label
}
