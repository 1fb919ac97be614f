package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xvierd/pomo-cli/internal/adapters/git"
	"github.com/xvierd/pomo-cli/internal/adapters/notification"
	"github.com/xvierd/pomo-cli/internal/adapters/storage"
	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/ports"
	"github.com/xvierd/pomo-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	viper    *viper.Viper
	config   *config.Config
	store    ports.TaskStore
	tasks    *services.TaskService
	git      ports.BranchDetector
	notifier ports.Notifier
	logFile  io.Closer
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// configOptional lets a missing --config file through, for commands that
// create it.
var configOptional bool

// flagKeys binds root flags to their configuration keys.
var flagKeys = map[string]string{
	"pomodoro-time":    "timer.pomodoro",
	"short-break-time": "timer.short_break",
	"long-break-time":  "timer.long_break",
	"task-file-path":   "tasks.file",
	"focus-mode":       "display.focus_mode",
	"log-file":         "log.file",
}

// initializeServices loads configuration and sets up the adapters and
// services every command shares. cmd is the command being run; its root
// carries the flags bound into the configuration.
func initializeServices(cmd *cobra.Command) error {
	app.viper = config.New()
	flags := cmd.Root().PersistentFlags()
	for flagName, key := range flagKeys {
		if err := app.viper.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", flagName, err)
		}
	}
	if debugLog {
		app.viper.Set("log.level", "debug")
	}

	load := config.Load
	if configOptional {
		load = config.LoadOptional
	}
	cfg, err := load(app.viper, configPath)
	if err != nil {
		return err
	}
	app.config = cfg

	logFile, err := setupLogger(cfg.Log)
	if err != nil {
		return err
	}
	app.logFile = logFile

	if dir := filepath.Dir(cfg.Tasks.File); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create task directory: %w", err)
		}
	}

	app.store, err = storage.Open(cfg.Tasks.File)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.tasks = services.NewTaskService(app.store)
	app.git = git.NewDetector()
	app.notifier = notification.New(cfg.Notifications)

	slog.Debug("services initialized", "tasks", app.store.Location(), "config", app.viper.ConfigFileUsed())
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	var err error
	if app.store != nil {
		err = app.store.Close()
		app.store = nil
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
	return err
}

// setupLogger installs the default slog logger. The interface owns the
// terminal, so logs go to a file or nowhere.
func setupLogger(cfg config.LogConfig) (io.Closer, error) {
	name := strings.TrimSpace(cfg.Level)
	if name == "" {
		name = "info"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("config: invalid log level %q: %w", cfg.Level, err)
	}

	var (
		out    io.Writer = io.Discard
		closer io.Closer
	)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return closer, nil
}

// setupSignalHandler returns a context cancelled on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
