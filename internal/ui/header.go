package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is a key/value row shown under a banner title.
type Param struct {
	Key   string
	Value string
}

// Banner is the box printed before a form starts.
type Banner struct {
	Title    string  // e.g., "Onboarding"
	Subtitle string  // e.g., form description
	Params   []Param // e.g., {"Questions", "5"}
	Width    int     // Terminal width for responsive rendering

	chrome *Chrome
}

// NewBanner creates a new banner with the given values
func NewBanner(title, subtitle string, params ...Param) *Banner {
	return &Banner{
		Title:    title,
		Subtitle: subtitle,
		Params:   params,
		Width:    GetTerminalWidth(),
		chrome:   DefaultChrome(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (b *Banner) SetWidth(width int) *Banner {
	b.Width = width
	return b
}

// SetPalette renders the banner with p
func (b *Banner) SetPalette(p Palette) *Banner {
	b.chrome = NewChrome(p)
	return b
}

// Render returns the styled banner as a string
func (b *Banner) Render() string {
	c := b.chrome
	width := clampWidth(b.Width)

	sections := []string{c.title.Render(strings.ToUpper(b.Title))}
	if b.Subtitle != "" {
		sections = append(sections, c.subtitle.Render(b.Subtitle))
	}

	if len(b.Params) > 0 {
		// Border plus padding
		sections = append(sections, c.divider(max(width-6, 10)))
		for _, p := range b.Params {
			sections = append(sections, c.paramKey.Render(p.Key+":")+" "+c.paramValue.Render(p.Value))
		}
	}

	return c.bannerBox(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// String implements fmt.Stringer
func (b *Banner) String() string {
	return b.Render()
}
