package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/termask/internal/config"
	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/ui"
)

// errNotTerminal is returned when stdin cannot be switched to raw mode.
var errNotTerminal = errors.New("stdin is not a terminal; prompts need an interactive session")

// withTerm runs fn with the process terminal in raw mode and restores it
// afterwards, even when fn fails.
func withTerm(fn func(t *terminal.Term) error) error {
	t := terminal.Stdio()
	if !t.IsTerminal() {
		return errNotTerminal
	}
	if err := t.MakeRaw(); err != nil {
		return err
	}
	defer func() {
		if err := t.Restore(); err != nil {
			logging.Warn("Failed to restore terminal", zap.Error(err))
		}
	}()
	return fn(t)
}

// preferences loads the user configuration. A broken file is reported and
// the defaults are used so prompts still work.
func preferences() *config.Preferences {
	prefs, err := config.LoadPreferences()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.NewPreferences()
	}
	return prefs
}

// stderrRenderer detects the colour support of the terminal prompts are
// drawn on.
func stderrRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(os.Stderr)
}

// theme builds the prompt theme from the user's palette.
func theme(prefs *config.Preferences) *ui.Theme {
	return ui.NewTheme(stderrRenderer(), prefs.Palette())
}
