// Termask asks questions on the terminal and prints the answers.
//
// It offers one-shot prompts for shell scripts, runs YAML forms, and can
// host a form for other people to answer over a websocket.
//
// Usage:
//
//	termask [command] [flags]
//
// Prompts render on stderr; answers are printed on stdout so they can be
// captured with $(...). See 'termask --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/version"
)

// Exit code used when the user presses Ctrl+C, as shells do for SIGINT
const exitInterrupted = 130

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		if errors.Is(err, terminal.ErrInterrupted) {
			os.Exit(exitInterrupted)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "termask",
	Short: "Ask validated questions on the terminal",
	Long: `Termask collects validated answers from a person at a terminal.

Single prompts (text, integers, emails, single and multiple choice) can be
asked from shell scripts with 'termask ask'. Whole questionnaires are
described in YAML and run with 'termask run', or hosted for remote users
with 'termask serve' and answered with 'termask connect'.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Detailed())
	},
}
