package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/termask/internal/config"
	"github.com/muurk/termask/internal/form"
	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/prompt"
	"github.com/muurk/termask/internal/remote"
	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/ui"
)

// Form command flags
var (
	outputFormat    string
	noBanner        bool
	serveAddr       string
	serveAdvertise  bool
	serveName       string
	discoverTimeout int
)

func init() {
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Answer format (yaml, json, summary); defaults to the configured output")
	runCmd.Flags().BoolVar(&noBanner, "no-banner", false, "Do not print the form banner")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to the configured remote.listen)")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", true, "Announce the form over mDNS")
	serveCmd.Flags().StringVar(&serveName, "name", "", "mDNS instance name (defaults to the form title)")

	connectCmd.Flags().IntVar(&discoverTimeout, "timeout", 0, "Discovery timeout in seconds (defaults to the configured remote.discover_timeout)")
	connectCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Print answers as yaml or summary")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(connectCmd)
}

// runCmd asks every question of a form file
var runCmd = &cobra.Command{
	Use:   "run <form.yaml>",
	Short: "Run a YAML form",
	Long: `Ask every question of a YAML form in order and print the answers.

Answers are printed on stdout when the form completes. If the form is
interrupted nothing is printed.`,
	Example: `  # Print answers as YAML
  termask run onboarding.yaml

  # JSON for scripting
  termask run onboarding.yaml --format json > answers.json

  # Show a summary box instead
  termask run onboarding.yaml -f summary`,
	Args: cobra.ExactArgs(1),
	RunE: runForm,
}

func runForm(cmd *cobra.Command, args []string) error {
	f, err := config.LoadForm(args[0])
	if err != nil {
		return err
	}

	prefs := preferences()
	format := outputFormat
	if format == "" {
		format = prefs.OutputFormat()
	}

	if !noBanner {
		banner := ui.NewBanner(f.Title, f.Description, ui.Param{Key: "Questions", Value: strconv.Itoa(len(f.Questions))}).SetPalette(prefs.Palette())
		fmt.Fprintln(os.Stderr, banner.Render())
	}

	runner := form.NewRunner(theme(prefs))
	var answers []form.Answer
	err = withTerm(func(t *terminal.Term) error {
		var err error
		answers, err = runner.Run(t, f)
		return err
	})
	if err != nil {
		return err
	}

	return form.Write(cmd.OutOrStdout(), format, f.Title, answers, ui.GetTerminalWidth())
}

// serveCmd hosts a form for remote sessions
var serveCmd = &cobra.Command{
	Use:   "serve <form.yaml>",
	Short: "Host a form for remote users",
	Long: `Host a YAML form over a websocket so other people can answer it with
'termask connect'. Every session gets its own copy of the form.

The answers of each completed session are printed on stdout as a YAML
document. The server stops on Ctrl+C or SIGTERM.`,
	Example: `  # Serve on the configured address and announce it over mDNS
  termask serve onboarding.yaml

  # Serve on a fixed port without mDNS
  termask serve onboarding.yaml --addr :9000 --advertise=false`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	f, err := config.LoadForm(args[0])
	if err != nil {
		return err
	}

	prefs := preferences()
	addr := serveAddr
	if addr == "" {
		addr = prefs.Remote.Listen
	}
	advertise := serveAdvertise
	if !cmd.Flags().Changed("advertise") {
		advertise = prefs.Remote.Advertise
	}

	out := cmd.OutOrStdout()
	var outMu sync.Mutex

	srv, err := remote.New(remote.Config{
		Addr:      addr,
		Form:      f,
		Palette:   prefs.Palette(),
		Advertise: advertise,
		Name:      serveName,
		OnComplete: func(remoteAddr string, answers []form.Answer) {
			outMu.Lock()
			defer outMu.Unlock()
			fmt.Fprintf(out, "---\n# %s %s\n", remoteAddr, time.Now().Format(time.RFC3339))
			if err := form.WriteYAML(out, answers); err != nil {
				logging.Error("Failed to print answers", zap.String("remote_addr", remoteAddr), zap.Error(err))
			}
		},
	})
	if err != nil {
		return err
	}

	bound, err := srv.Listen()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Serving %q on ws://%s%s (Ctrl+C to stop)\n", f.Title, bound, remote.DefaultPath)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

// connectCmd answers a remote form
var connectCmd = &cobra.Command{
	Use:   "connect [url]",
	Short: "Answer a form hosted with 'termask serve'",
	Long: `Connect to a form server and answer its questions on this terminal.

Without a URL the local network is searched over mDNS and, when more than
one server answers, you pick one from a list.`,
	Example: `  # Discover servers on the local network
  termask connect

  # Connect directly
  termask connect ws://192.168.1.20:7357/ws`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConnect,
}

func runConnect(cmd *cobra.Command, args []string) error {
	prefs := preferences()
	ctx := cmd.Context()

	var result *remote.Result
	err := withTerm(func(t *terminal.Term) error {
		url := ""
		if len(args) == 1 {
			url = args[0]
		} else {
			ep, err := discover(ctx, t, prefs)
			if err != nil {
				return err
			}
			url = ep.URL()
		}

		var err error
		result, err = remote.NewClient(t).WithProfile(stderrRenderer().ColorProfile()).Run(ctx, url)
		return err
	})
	if err != nil {
		return err
	}

	switch outputFormat {
	case "", config.OutputYAML:
		_, err = fmt.Fprint(cmd.OutOrStdout(), result.Answers)
	case config.OutputSummary:
		p := ui.NewPrinter(cmd.OutOrStdout()).SetPalette(preferences().Palette())
		p.PrintResult(ui.NewSuccessResult(result.Title, nil).AddDetail("Server version", result.Version))
		p.Println(result.Answers)
	default:
		err = fmt.Errorf("unsupported format %q for remote answers (expected yaml or summary)", outputFormat)
	}
	return err
}

// discover browses for form servers and lets the user pick one.
func discover(ctx context.Context, t *terminal.Term, prefs *config.Preferences) (*remote.Endpoint, error) {
	timeout := discoverTimeout
	if timeout <= 0 {
		timeout = prefs.Remote.DiscoverTimeout
	}

	if err := t.WriteLine(fmt.Sprintf("Searching for form servers (timeout: %ds)...", timeout)); err != nil {
		return nil, err
	}

	scanner := remote.NewScanner()
	scanner.Timeout = time.Duration(timeout) * time.Second
	endpoints, err := scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	if err := t.ClearLastLines(1); err != nil {
		return nil, err
	}

	switch len(endpoints) {
	case 0:
		box := ui.RenderFailure("No form servers found", fmt.Errorf("nothing answered within %ds", timeout), []string{
			"Check that 'termask serve' is running with --advertise",
			"mDNS does not cross routers; pass the URL instead",
			"Try increasing --timeout for slower networks",
		})
		for _, line := range strings.Split(box, "\n") {
			if err := t.WriteLine(line); err != nil {
				return nil, err
			}
		}
		return nil, fmt.Errorf("no form servers found")
	case 1:
		return endpoints[0], nil
	}

	return prompt.NewSelect("Which form?", prompt.NewOptions(endpoints...)).
		Theme(theme(prefs)).
		Ask(t)
}
