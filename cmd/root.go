// Package cmd provides the CLI commands for the pomo application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomo-cli/internal/adapters/tui"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	configPath string
	debugLog   bool
)

// errNotATerminal is returned when the session is started without a terminal.
var errNotATerminal = errors.New(`the timer needs an interactive terminal; use "pomo tasks" to print the task list`)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "pomo - A Pomodoro timer with a task list for the terminal",
	Long: `pomo is a terminal Pomodoro timer with a task list.

Run "pomo" with no arguments to open the timer. Press ? inside it for the
key bindings and S to save your task list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runSession,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if cerr := cleanupServices(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntP("pomodoro-time", "p", 25, "Pomodoro length in minutes")
	flags.IntP("short-break-time", "s", 5, "Short break length in minutes")
	flags.IntP("long-break-time", "l", 15, "Long break length in minutes")
	flags.StringP("task-file-path", "t", "tasks", "Task file to load and save (.db, .sqlite or .sqlite3 uses SQLite)")
	flags.StringP("focus-mode", "f", "false", `Start in zen mode when "true"`)
	flags.String("log-file", "", "Write logs to this file")
	flags.StringVar(&configPath, "config", "", "Config file (default: ~/.pomo/config.toml)")
	flags.BoolVar(&debugLog, "debug", false, "Log at debug level")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("pomo\nVersion: {{.Version}}\nBuilt: %s (%s)\n", BuildDate, GitCommit))

	// Add subcommands
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// runSession opens the interactive timer over the configured task list.
func runSession(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return errNotATerminal
	}

	ctx, stop := setupSignalHandler()
	defer stop()

	session := newSession(ctx)

	opts := tui.Options{
		Theme:           &app.config.Theme,
		Watermark:       "pomo " + Version,
		OnTimerFinished: notifyTimerFinished,
	}
	if app.config.Display.ShowBranch {
		branch, err := app.git.Branch(ctx, "")
		if err != nil {
			slog.Debug("no branch for header", "err", err)
		} else {
			opts.Branch = branch
		}
	}

	return tui.Run(ctx, session, opts)
}

// newSession builds the session state from the configuration and the stored
// task list.
func newSession(ctx context.Context) *services.Session {
	durations := app.config.Durations()
	tasks := app.store.Load(ctx)
	state := domain.NewAppState(durations, tasks, app.config.StudyMode())

	session := services.NewSession(state, durations, app.store)

	slog.Info("session started",
		"tasks", len(tasks),
		"location", app.store.Location(),
		"study_mode", state.StudyMode,
	)
	return session
}

// notifyTimerFinished announces a timer that reached zero.
func notifyTimerFinished(timer domain.Timer) error {
	return app.notifier.TimerFinished(timer.Mode, domain.FormatClock(timer.TotalTime))
}
