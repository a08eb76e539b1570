package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
)

// Detail is one row of a result box. Rows keep the order they were added
// in, which for form summaries is the question order.
type Detail struct {
	Key     string
	Value   string
	Skipped bool // Rendered as a "Skipped" marker instead of Value
}

// Result is the box printed after a form: the answers on success, the
// error and troubleshooting tips on failure.
type Result struct {
	Type            ResultType
	Title           string   // e.g., "Onboarding"
	Details         []Detail // Rows to display, in order
	Error           error    // Failure results only
	Troubleshooting []string // Failure results only
	Width           int      // Terminal width

	chrome *Chrome
}

// NewSuccessResult creates a result listing details
func NewSuccessResult(title string, details []Detail) *Result {
	return &Result{
		Type:    ResultSuccess,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
		chrome:  DefaultChrome(),
	}
}

// NewFailureResult creates a result reporting err
func NewFailureResult(title string, err error, troubleshooting []string) *Result {
	return &Result{
		Type:            ResultFailure,
		Title:           title,
		Error:           err,
		Troubleshooting: troubleshooting,
		Width:           GetTerminalWidth(),
		chrome:          DefaultChrome(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// SetPalette renders the box with p
func (r *Result) SetPalette(p Palette) *Result {
	r.chrome = NewChrome(p)
	return r
}

// AddDetail appends a detail row
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, Detail{Key: key, Value: value})
	return r
}

// AddSkipped appends a row for a question that was skipped
func (r *Result) AddSkipped(key string) *Result {
	r.Details = append(r.Details, Detail{Key: key, Skipped: true})
	return r
}

// Answered counts the details that were not skipped.
func (r *Result) Answered() int {
	n := 0
	for _, d := range r.Details {
		if !d.Skipped {
			n++
		}
	}
	return n
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	width := clampWidth(r.Width)
	if r.Type == ResultFailure {
		return r.renderFailure(width)
	}
	return r.renderSuccess(width)
}

func (r *Result) renderSuccess(width int) string {
	c := r.chrome
	lines := []string{"", c.complete.Render(fmt.Sprintf("   %s  COMPLETE  ─  %s", SuccessMarker, r.Title)), ""}

	for _, d := range r.Details {
		value := c.detailVal.Render(d.Value)
		if d.Skipped {
			value = c.skipped.Render("Skipped")
		}
		lines = append(lines, c.detailKey.Render(fmt.Sprintf("   %s:", d.Key))+" "+value)
	}

	// The bar only appears when something was skipped
	if answered := r.Answered(); answered < len(r.Details) {
		const indent = "   "
		room := c.contentWidth(width) - len(indent)
		lines = append(lines, "", indent+completionBar(answered, len(r.Details), room, c.accent))
	}

	lines = append(lines, "")
	return c.resultBox(width, false).Render(strings.Join(lines, "\n"))
}

func (r *Result) renderFailure(width int) string {
	c := r.chrome
	lines := []string{"", c.failed.Render(fmt.Sprintf("   %s  FAILED  ─  %s", FailureMarker, r.Title)), ""}

	if r.Error != nil {
		lines = append(lines, c.errorText.Render("   Error: "+r.Error.Error()), "")
	}

	if len(r.Troubleshooting) > 0 {
		tips := []string{c.tipTitle.Render("Troubleshooting:"), ""}
		for _, tip := range r.Troubleshooting {
			tips = append(tips, c.tip.Render("  • "+tip))
		}
		lines = append(lines, c.tipBox(width).Render(lipgloss.JoinVertical(lipgloss.Left, tips...)), "")
	}

	return c.resultBox(width, true).Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}

// RenderFailure renders a failure box with the given title, error, and troubleshooting tips
func RenderFailure(title string, err error, troubleshooting []string) string {
	return NewFailureResult(title, err, troubleshooting).Render()
}
