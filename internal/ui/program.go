package ui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// staticView is a Bubble Tea model that draws its content a single time and
// quits. Summaries go through it so the renderer handles colour downgrades
// for the output terminal.
type staticView string

func (v staticView) Init() tea.Cmd                       { return tea.Quit }
func (v staticView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v staticView) View() string                        { return string(v) + "\n" }

// RenderOnce draws content to w through Bubble Tea and returns once it has
// been flushed. No input is read.
func RenderOnce(w io.Writer, content string) error {
	_, err := tea.NewProgram(staticView(content), tea.WithOutput(w), tea.WithInput(nil)).Run()
	return err
}

// Printer writes result boxes sized to the terminal.
type Printer struct {
	out     io.Writer
	width   int
	palette Palette
}

// NewPrinter creates a Printer writing to w, or os.Stdout when w is nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w, width: GetTerminalWidth()}
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// SetPalette colours every box printed afterwards with pal.
func (p *Printer) SetPalette(pal Palette) *Printer {
	p.palette = pal
	return p
}

// Println writes content followed by a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// PrintResult prints r using the printer's width and palette.
func (p *Printer) PrintResult(r *Result) {
	p.Println(r.SetWidth(p.width).SetPalette(p.palette).Render())
}
