package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/muurk/termask/internal/config"
	"github.com/muurk/termask/internal/form"
	"github.com/muurk/termask/internal/terminal"
)

// Ask command flags
var (
	askDefault   string
	askCharset   string
	askMinLength int
	askMin       int64
	askMax       int64
	askNonZero   bool
	askInitial   []string
	askOptional  bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a single question",
	Long: `Ask one question and print the answer on stdout.

The prompt is drawn on stderr, so the answer can be captured by a shell:

  name=$(termask ask text "What's your name?")`,
}

var askTextCmd = &cobra.Command{
	Use:   "text <title>",
	Short: "Ask for a line of text",
	Example: `  termask ask text "Project name?" --default demo
  termask ask text "Code?" --charset abcdef0123456789 --min-length 6`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return askQuestion(cmd, &config.Question{
			Kind:      config.KindText,
			Title:     args[0],
			Default:   askDefault,
			Charset:   askCharset,
			MinLength: askMinLength,
		})
	},
}

var askIntCmd = &cobra.Command{
	Use:   "int <title>",
	Short: "Ask for a whole number",
	Example: `  termask ask int "Age?" --min 0 --max 120
  termask ask int "Offset?" --min -10 --max 10 --non-zero`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := &config.Question{
			Kind:    config.KindInteger,
			Title:   args[0],
			Default: askDefault,
			NonZero: askNonZero,
		}
		setBounds(cmd, q)
		return askQuestion(cmd, q)
	},
}

var askEmailCmd = &cobra.Command{
	Use:     "email <title>",
	Short:   "Ask for an email address",
	Example: `  termask ask email "Contact?"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return askQuestion(cmd, &config.Question{
			Kind:    config.KindEmail,
			Title:   args[0],
			Default: askDefault,
		})
	},
}

var askSelectCmd = &cobra.Command{
	Use:   "select <title> <option>...",
	Short: "Ask to pick one option",
	Long: `Ask to pick one option with the arrow keys or the digits 1-9.

With --optional, space picks the highlighted option and enter skips the
question; nothing is printed when it is skipped.`,
	Example: `  termask ask select "Environment?" dev staging prod --initial staging`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return askQuestion(cmd, &config.Question{
			Kind:     config.KindSelect,
			Title:    args[0],
			Options:  optionsFromArgs(args[1:]),
			Initial:  askInitial,
			Optional: askOptional,
		})
	},
}

var askMultiSelectCmd = &cobra.Command{
	Use:   "multiselect <title> <option>...",
	Short: "Ask to pick several options",
	Long: `Ask to pick several options. Space toggles the highlighted option and
enter confirms. The picked values are printed one per line in the order
they were picked.`,
	Example: `  termask ask multiselect "Languages?" go rust zig --min 1 --max 2`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := &config.Question{
			Kind:    config.KindMultiSelect,
			Title:   args[0],
			Options: optionsFromArgs(args[1:]),
			Initial: askInitial,
		}
		setBounds(cmd, q)
		return askQuestion(cmd, q)
	},
}

func init() {
	askTextCmd.Flags().StringVar(&askDefault, "default", "", "Text the answer starts with")
	askTextCmd.Flags().StringVar(&askCharset, "charset", "", "Only allow these characters")
	askTextCmd.Flags().IntVar(&askMinLength, "min-length", 0, "Minimum number of characters")

	askIntCmd.Flags().StringVar(&askDefault, "default", "", "Number the answer starts with")
	askIntCmd.Flags().Int64Var(&askMin, "min", 0, "Smallest accepted value")
	askIntCmd.Flags().Int64Var(&askMax, "max", 0, "Largest accepted value")
	askIntCmd.Flags().BoolVar(&askNonZero, "non-zero", false, "Reject zero")

	askEmailCmd.Flags().StringVar(&askDefault, "default", "", "Address the answer starts with")

	askSelectCmd.Flags().StringSliceVar(&askInitial, "initial", nil, "Option the cursor starts on")
	askSelectCmd.Flags().BoolVar(&askOptional, "optional", false, "Allow skipping with enter")

	askMultiSelectCmd.Flags().StringSliceVar(&askInitial, "initial", nil, "Options selected at the start")
	askMultiSelectCmd.Flags().Int64Var(&askMin, "min", 0, "Minimum number of options")
	askMultiSelectCmd.Flags().Int64Var(&askMax, "max", 0, "Maximum number of options")

	askCmd.AddCommand(askTextCmd, askIntCmd, askEmailCmd, askSelectCmd, askMultiSelectCmd)
	rootCmd.AddCommand(askCmd)
}

// setBounds copies --min and --max into q when they were given.
func setBounds(cmd *cobra.Command, q *config.Question) {
	if cmd.Flags().Changed("min") {
		q.Min = &askMin
	}
	if cmd.Flags().Changed("max") {
		q.Max = &askMax
	}
}

func optionsFromArgs(args []string) []config.Option {
	opts := make([]config.Option, len(args))
	for i, a := range args {
		opts[i] = config.Option{Value: a}
	}
	return opts
}

// askQuestion validates q, asks it on the terminal and prints the answer.
func askQuestion(cmd *cobra.Command, q *config.Question) error {
	q.Name = "answer"
	f := &config.Form{Version: 1, Title: q.Title, Questions: []*config.Question{q}}
	if errs := f.Validate(); len(errs) > 0 {
		return &config.FormError{Problems: errs}
	}

	runner := form.NewRunner(theme(preferences()))

	var answer form.Answer
	err := withTerm(func(t *terminal.Term) error {
		var err error
		answer, err = runner.Ask(t, q)
		return err
	})
	if err != nil {
		return err
	}
	return printAnswer(cmd.OutOrStdout(), answer)
}

// printAnswer writes the bare value: one line, or one line per picked
// option. Skipped answers print nothing.
func printAnswer(w io.Writer, a form.Answer) error {
	if a.Skipped {
		return nil
	}
	if values, ok := a.Value.([]string); ok {
		for _, v := range values {
			if _, err := fmt.Fprintln(w, v); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintln(w, a.Value)
	return err
}
