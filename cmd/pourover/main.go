// Pourover is a guided pour-over brewing timer.
//
// Usage:
//
//	pourover [brew] [--water N] [--method M] [--no-sound]
//	pourover recipe | curve | simulate | methods
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/pourover/internal/config"
	"github.com/hammamikhairi/pourover/internal/display"
	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/logger"
	"github.com/hammamikhairi/pourover/internal/storage"
)

var flagConfig string

func main() {
	rootCmd := &cobra.Command{
		Use:   "pourover",
		Short: "Guided pour-over brewing timer",
		Long: `Pourover turns a water amount and a brew method into a timed schedule of
pours and waits, then guides you through it with a live chart of how much
water should be on the scale and a chime at every step.`,
		SilenceUsage: true,
		RunE:         runBrew,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (yaml, toml or json)")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(brewCmd())
	rootCmd.AddCommand(recipeCmd())
	rootCmd.AddCommand(curveCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(methodsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the dependencies shared by every command.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	store    domain.SettingsStore
	settings domain.Settings
	closeLog func()
}

// setup resolves configuration, opens the log and loads saved settings.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cmd.Flags(), flagConfig)
	if err != nil {
		return nil, err
	}

	logOut, closeLog := openLog(cfg.LogFile)

	// Redirect Go's default log package (used by the audio backend) to the
	// same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(cfg.LogLevel, logOut)
	a := &app{cfg: cfg, log: log, closeLog: closeLog}

	a.store, err = openStore(cfg, log)
	if err != nil {
		log.Warn("settings storage unavailable, using memory: %v", err)
		a.store = storage.NewMemoryStore(log)
	}

	saved, err := a.store.Load(cmd.Context())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		saved = domain.DefaultSettings()
	case err != nil:
		log.Warn("loading settings, using defaults: %v", err)
		saved = domain.DefaultSettings()
	}
	a.settings = cfg.Apply(saved)

	log.Debug("settings: method=%s water=%.0f speed=%.0f theme=%s",
		a.settings.Method, a.settings.TotalWater, a.settings.Speed, a.settings.Theme)
	return a, nil
}

func (a *app) close() {
	_ = a.log.Sync()
	a.closeLog()
}

// openLog directs logs to a file by default so the brew screen stays clean.
func openLog(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

func openStore(cfg *config.Config, log *logger.Logger) (domain.SettingsStore, error) {
	if cfg.Ephemeral {
		return storage.NewMemoryStore(log), nil
	}
	path := cfg.SettingsPath
	if path == "" {
		var err error
		if path, err = storage.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return storage.NewFileStore(path, log), nil
}

// signalContext is cancelled on interrupt or termination.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func printBanner(w io.Writer, tagline string) {
	fmt.Fprint(w, display.RenderBanner(display.TermWidth(), tagline))
}
