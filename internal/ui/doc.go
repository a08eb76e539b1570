// Package ui provides the visual language of termask.
//
// The package has two halves. Theme renders the fragments the interactive
// prompts repaint on every key: the question header, the input prefix, the
// option rows with their cursor and selection markers, the inline failure
// line and the settled answer line. The rest of the package renders
// "run once and exit" output for the CLI, such as the banner shown before a
// form and the summary box printed after it.
//
// # Themes
//
// A Theme is built from a lipgloss renderer and a Palette:
//
//	theme := ui.NewTheme(lipgloss.DefaultRenderer(), ui.DefaultPalette())
//	fmt.Println(theme.Answered("What's your name?", "Ada"))
//
// PlainTheme returns a theme whose renderer never emits colour, which is
// what tests and non-terminal sessions use. The remote server builds a
// renderer per session from the colour profile the client announces.
//
// # Summaries
//
// After a form completes the CLI prints a Result box listing every answer
// in question order, with a completion bar for optional questions that were
// skipped:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintResult(ui.NewSuccessResult("Onboarding", details))
//
// RenderOnce renders such content through Bubble Tea when the output is an
// interactive terminal.
package ui
