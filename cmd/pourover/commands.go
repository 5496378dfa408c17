package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/pourover/internal/config"
	"github.com/hammamikhairi/pourover/internal/curve"
	"github.com/hammamikhairi/pourover/internal/display"
	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/engine"
	"github.com/hammamikhairi/pourover/internal/logger"
	"github.com/hammamikhairi/pourover/internal/recipe"
	"github.com/hammamikhairi/pourover/internal/sound"
	"github.com/hammamikhairi/pourover/internal/timer"
)

// Default clock multiplier for headless runs.
const simulateSpeed = 10.0

func brewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brew",
		Short: "Open the interactive brew screen (default)",
		RunE:  runBrew,
	}
}

func runBrew(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	notifier := newNotifier(ctx, a.cfg, a.log, nil)

	// The UI offers a narrower range than the command line accepts.
	settings := a.settings
	settings.TotalWater = domain.ClampWater(settings.TotalWater)
	settings.Speed = domain.ClampSpeed(settings.Speed)

	eng, err := engine.New(settings, a.log,
		engine.WithNotifier(notifier),
		engine.WithCountdown(a.cfg.Countdown),
	)
	if err != nil {
		return err
	}

	ui := display.NewUI(eng, a.store, a.log,
		display.WithTickInterval(a.cfg.Tick),
		display.WithTheme(settings.Theme),
	)
	if err := ui.Run(ctx); err != nil && ctx.Err() == nil {
		a.log.Error("display: %v", err)
		return err
	}
	return nil
}

// newNotifier builds the audio notifier, falling back to a silent one when
// sound is disabled or no output device is available. inner, when set,
// also receives every event.
func newNotifier(ctx context.Context, cfg *config.Config, log *logger.Logger, inner domain.Notifier) domain.Notifier {
	if cfg.NoSound {
		log.Info("audio cues disabled")
		return sound.NewSilent(inner, log)
	}

	player, err := sound.NewPlayer(log)
	if err != nil {
		log.Error("audio player init failed, cues disabled: %v", err)
		return sound.NewSilent(inner, log)
	}

	opts := []sound.ChimeOption{}
	if inner != nil {
		opts = append(opts, sound.WithInner(inner))
	}
	chimes := sound.NewChimeNotifier(player, log, opts...)
	chimes.Start(ctx)
	return chimes
}

func recipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recipe",
		Short: "Print the pour schedule for the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			r, err := recipe.Generate(a.settings.TotalWater, a.settings.Method)
			if err != nil {
				return err
			}
			p, err := recipe.NewCatalog(a.log).Get(cmd.Context(), r.Method())
			if err != nil {
				return err
			}
			display.NewConsole(os.Stdout, a.log, false).PrintRecipe(r, p)
			return nil
		},
	}
}

func curveCmd() *cobra.Command {
	var (
		resolution float64
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Print the planned water curve sampled over time",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			r, err := recipe.Generate(a.settings.TotalWater, a.settings.Method)
			if err != nil {
				return err
			}
			samples, err := curve.Sample(r, resolution)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(samples)
			}
			display.NewConsole(os.Stdout, a.log, false).PrintCurve(samples)
			return nil
		},
	}

	cmd.Flags().Float64Var(&resolution, "resolution", 1, "seconds between samples")
	cmd.Flags().BoolVar(&asJSON, "json", false, "machine-readable JSON output")
	return cmd
}

func simulateCmd() *cobra.Command {
	var progress time.Duration

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a brew without the brew screen, printing every cue",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			settings := a.settings
			if !a.cfg.Overridden(config.KeySpeed) {
				settings.Speed = simulateSpeed
			}

			console := display.NewConsole(os.Stdout, a.log, false)
			eng, err := engine.New(settings, a.log,
				engine.WithNotifier(newNotifier(ctx, a.cfg, a.log, console)),
				engine.WithCountdown(a.cfg.Countdown),
			)
			if err != nil {
				return err
			}

			p, _ := recipe.ProfileFor(settings.Method)
			fmt.Printf("%s, %.0fg water at %gx\n", p.Title, settings.TotalWater, settings.Speed)

			opts := []timer.Option{
				timer.WithTickInterval(a.cfg.Tick),
				timer.WithStopOnFinish(true),
			}
			if progress > 0 {
				opts = append(opts, timer.WithWatcher(console.PrintProgress, timer.WithWatchInterval(progress)))
			}
			sup := timer.New(eng, a.log, opts...)

			eng.Start()
			sup.Start(ctx)
			defer sup.Stop()

			select {
			case <-sup.Done():
			case <-ctx.Done():
				return ctx.Err()
			}

			// Let the final chime play out.
			if !a.cfg.NoSound {
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&progress, "progress", 5*time.Second, "interval between progress lines (0 disables)")
	return cmd
}

func methodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods [query]",
		Short: "List the available brew methods",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			catalog := recipe.NewCatalog(a.log)
			var methods []recipe.MethodSummary
			if len(args) == 1 {
				methods, err = catalog.Search(cmd.Context(), args[0])
			} else {
				methods, err = catalog.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(methods) == 0 && len(args) == 1 {
				return fmt.Errorf("no method matches %q: %w", args[0], domain.ErrNotFound)
			}

			printBanner(os.Stdout, "guided pour-over timer")
			display.NewConsole(os.Stdout, a.log, false).PrintMethods(methods)
			return nil
		},
	}
}
