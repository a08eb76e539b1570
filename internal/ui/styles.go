package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Fixed colours. Everything else follows the Palette.
var (
	SuccessColor = lipgloss.Color("#43BF6D") // Default accent: question marks, completed boxes
	ErrorColor   = lipgloss.Color("#FF5555") // Default error and cursor highlight
	MutedColor   = lipgloss.Color("#626262") // Default muted: settled answers, secondary text
	FrameColor   = lipgloss.Color("#7D56F4") // Banner border and dividers
	SkippedColor = lipgloss.Color("#FFA500") // Skipped answers in summaries
	TextColor    = lipgloss.Color("#FFFFFF")
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
	detailKeyWidth   = 22
	resultPadding    = 2
)

// Result markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
)

// Chrome styles the banner and result boxes printed around a form. It takes
// its colours from a Palette so summaries match the prompts.
type Chrome struct {
	accent, failure, muted lipgloss.Color

	title      lipgloss.Style
	subtitle   lipgloss.Style
	paramKey   lipgloss.Style
	paramValue lipgloss.Style
	complete   lipgloss.Style
	failed     lipgloss.Style
	errorText  lipgloss.Style
	detailKey  lipgloss.Style
	detailVal  lipgloss.Style
	skipped    lipgloss.Style
	tipTitle   lipgloss.Style
	tip        lipgloss.Style
}

// NewChrome builds box styles from p. Empty fields use DefaultPalette.
func NewChrome(p Palette) *Chrome {
	p = p.Merge(DefaultPalette())
	accent, failure, muted := lipgloss.Color(p.Accent), lipgloss.Color(p.Error), lipgloss.Color(p.Muted)

	return &Chrome{
		accent:  accent,
		failure: failure,
		muted:   muted,

		title:      lipgloss.NewStyle().Foreground(TextColor).Bold(true).PaddingLeft(2),
		subtitle:   lipgloss.NewStyle().Foreground(muted).PaddingLeft(2),
		paramKey:   lipgloss.NewStyle().Foreground(muted).PaddingLeft(2),
		paramValue: lipgloss.NewStyle().Foreground(TextColor),
		complete:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		failed:     lipgloss.NewStyle().Foreground(failure).Bold(true),
		errorText:  lipgloss.NewStyle().Foreground(failure),
		detailKey:  lipgloss.NewStyle().Foreground(muted).Width(detailKeyWidth),
		detailVal:  lipgloss.NewStyle().Foreground(TextColor),
		skipped:    lipgloss.NewStyle().Foreground(SkippedColor).Italic(true),
		tipTitle:   lipgloss.NewStyle().Foreground(muted).Bold(true),
		tip:        lipgloss.NewStyle().Foreground(muted),
	}
}

// DefaultChrome uses the default palette.
func DefaultChrome() *Chrome {
	return NewChrome(DefaultPalette())
}

func (c *Chrome) bannerBox(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(FrameColor).
		Width(width - 2)
}

// resultBox is the double-bordered frame of a success or failure result.
func (c *Chrome) resultBox(width int, failed bool) lipgloss.Style {
	border := c.accent
	if failed {
		border = c.failure
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Width(width-2).
		Padding(0, resultPadding)
}

// contentWidth is the room inside resultBox(width, ...) once the border and
// padding are taken off.
func (c *Chrome) contentWidth(width int) int {
	return width - 2 - resultPadding*2
}

// tipBox sits indented inside a failure box.
func (c *Chrome) tipBox(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.muted).
		Width(width-12).
		Padding(0, 1).
		MarginLeft(3)
}

func (c *Chrome) divider(width int) string {
	return lipgloss.NewStyle().Foreground(FrameColor).Render(strings.Repeat("─", width))
}

// clampWidth keeps box widths within the supported range.
func clampWidth(width int) int {
	return min(max(width, MinTerminalWidth), MaxContentWidth)
}

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _ := GetTerminalSize()
	return width
}

// GetTerminalSize returns the width and height of the terminal. Stdout is
// asked first, then stderr where the prompts render. The width is clamped
// to the supported range.
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height, err = term.GetSize(int(os.Stderr.Fd()))
	}
	if err != nil {
		return MinTerminalWidth, 24
	}
	return clampWidth(width), height
}
