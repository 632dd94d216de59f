package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui"
	"github.com/knaw-huc/entity-annotator/internal/logger"
)

// errNoTerminal is returned when the TUI is started without a terminal.
var errNoTerminal = errors.New("the interactive UI needs a terminal; use the subcommands for scripting")

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive annotation interface.

Review random mentions, or browse terms by frequency and annotate their
occurrences one by one.

Controls:
  ↑/↓       - Navigate
  Space     - Choose candidate
  s         - Save decision
  n         - Skip mention
  ←/→       - Previous / next page
  Esc       - Back
  ?         - Help
  Ctrl+C    - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// isTerminal reports whether stdin and stdout are terminals.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runApp runs the assembled app. Replaced in tests.
var runApp = func(app *tui.App) error {
	return app.Run()
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if !isTerminal() {
		return errNoTerminal
	}
	s, err := backend()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; verbose logs go to a file instead.
	if logger.IsVerbose() {
		restore, err := logger.ToFile(logPath(s))
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = restore() }()
		logger.Section("TUI session")
	}

	ports := tui.NewPorts(s.Resolver, s.Submitter, s.Terms, s.Statistics)
	ports.Export = s.Export

	app, err := tui.NewApp(ports, tui.Config{
		PageSize:   s.PageSize,
		BackendURL: s.BackendURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	logger.Debug("starting TUI against %s", s.BackendURL)
	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func logPath(s *Services) string {
	if s.LogFile != "" {
		return s.LogFile
	}
	if s.Settings != nil {
		return filepath.Join(filepath.Dir(s.Settings.Path()), "annotator.log")
	}
	return "annotator.log"
}
