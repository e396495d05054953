// Package cli wires configuration, logging and storage together and exposes
// them as the focusflow command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sadopc/focusflow/internal/config"
	"github.com/sadopc/focusflow/internal/logging"
	"github.com/sadopc/focusflow/internal/state"
	"github.com/sadopc/focusflow/internal/store"
	"github.com/sadopc/focusflow/internal/timer"
	"github.com/sadopc/focusflow/internal/tui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// env is what every command runs against. It is filled in by the root
// command's pre-run hook and released by run, whatever the outcome.
type env struct {
	cfg     *config.Config
	store   *store.Store
	state   *state.State
	logFile *os.File

	// interactive reports whether the TUI can take over the terminal.
	interactive func() bool
}

func (e *env) open(flags *pflag.FlagSet) error {
	configDir, _ := flags.GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if configDir != "" {
		cfg, err = config.LoadFrom(configDir, flags)
	} else {
		cfg, err = config.Load(flags)
	}
	if err != nil {
		return err
	}
	e.cfg = cfg

	f, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	e.logFile = f
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logging.Init(logging.Config{Level: level, Output: f})

	switch cfg.Backend {
	case config.BackendDiskv:
		e.store, err = store.NewDiskv(cfg.KVDir)
	default:
		e.store, err = store.New(cfg.DBPath)
	}
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	e.state = state.Load(e.store)

	logging.Debug("environment ready",
		"backend", cfg.Backend,
		"db_path", cfg.DBPath,
		"kv_dir", cfg.KVDir)
	return nil
}

func (e *env) close() error {
	var errs []error
	if e.store != nil {
		errs = append(errs, e.store.Close())
		e.store = nil
	}
	if e.logFile != nil {
		logging.Init(logging.Config{Output: io.Discard})
		errs = append(errs, e.logFile.Close())
		e.logFile = nil
	}
	return errors.Join(errs...)
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "focusflow",
		Short: "A focus timer with subjects, a task board and study analytics",
		Long: `focusflow tracks focused study time per subject, keeps a small kanban
board of tasks and shows daily goal progress, a calendar heatmap and
subject analytics.

Run without arguments to open the terminal UI.

Examples:
  focusflow
  focusflow stats
  focusflow export --format json --out sessions.json
  focusflow --backend diskv --kv-dir ~/focus-kv`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return e.open(cmd.Flags())
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !e.interactive() {
				return printStats(cmd.OutOrStdout(), e.state, time.Now())
			}
			return runTUI(e)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "directory holding config.yaml (default $XDG_CONFIG_HOME/focusflow)")
	pf.String("backend", "", "storage backend: sqlite or diskv")
	pf.String("db-path", "", "SQLite database file")
	pf.String("kv-dir", "", "diskv base directory")
	pf.String("log-file", "", "log file")
	pf.Bool("debug", false, "log at debug level")

	root.AddCommand(
		newStatsCommand(e),
		newExportCommand(e),
		newResetCommand(e),
	)
	return root
}

func runTUI(e *env) error {
	tm := timer.New(e.state)
	p := tea.NewProgram(tui.NewApp(e.state, tm, ""), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		tm.Cancel()
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// run executes root and then closes whatever e opened, including after a
// failed command or a half-finished open.
func run(e *env, root *cobra.Command) (err error) {
	defer func() {
		err = errors.Join(err, e.close())
	}()
	return root.Execute()
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	e := &env{interactive: isTerminal}
	err := run(e, newRootCommand(e))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
