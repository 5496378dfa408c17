package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/logger"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlags(t), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Settings != domain.DefaultSettings() {
		t.Fatalf("settings = %+v", cfg.Settings)
	}
	if cfg.LogLevel != logger.LevelNormal || cfg.Countdown != 3 || cfg.Tick != 100*time.Millisecond {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Overridden(KeyWater) || cfg.Overridden(KeyMethod) {
		t.Fatal("flag defaults must not count as overrides")
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load(newFlags(t, "--water", "420", "--method", "hoffmann", "--speed", "8", "-v", "--no-sound", "--countdown", "0"), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := cfg.Settings
	if s.TotalWater != 420 || s.Method != domain.MethodHoffmann1Cup || s.Speed != 8 {
		t.Fatalf("settings = %+v", s)
	}
	if cfg.LogLevel != logger.LevelVerbose || !cfg.NoSound || cfg.Countdown != 0 {
		t.Fatalf("options = %+v", cfg)
	}
	if !cfg.Overridden(KeyWater) || cfg.Overridden(KeyTheme) {
		t.Fatal("override tracking is wrong")
	}
}

func TestQuietWinsOverVerbose(t *testing.T) {
	cfg, err := Load(newFlags(t, "-v", "-q"), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != logger.LevelOff {
		t.Fatalf("level = %v, want off", cfg.LogLevel)
	}
}

func TestLoadEnvAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pourover.yaml")
	if err := os.WriteFile(path, []byte("water: 500\ntheme: light\nlog-file: stderr\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	t.Setenv("POUROVER_METHOD", "1cup")
	t.Setenv("POUROVER_WATER", "250")

	cfg, err := Load(newFlags(t, "--speed", "2"), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := cfg.Settings
	if s.TotalWater != 250 {
		t.Fatalf("env should beat the file, water = %v", s.TotalWater)
	}
	if s.Method != domain.MethodHoffmann1Cup || s.Theme != domain.ThemeLight || s.Speed != 2 {
		t.Fatalf("settings = %+v", s)
	}
	if cfg.LogFile != "stderr" {
		t.Fatalf("log file = %q", cfg.LogFile)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"negative water", []string{"--water", "-5"}, ErrInvalidConfig},
		{"too much water", []string{"--water", "20000"}, ErrInvalidConfig},
		{"zero speed", []string{"--speed", "0"}, ErrInvalidConfig},
		{"bad theme", []string{"--theme", "neon"}, ErrInvalidConfig},
		{"bad tick", []string{"--tick", "0s"}, ErrInvalidConfig},
		{"negative countdown", []string{"--countdown", "-1"}, ErrInvalidConfig},
		{"unknown method", []string{"--method", "aeropress"}, domain.ErrUnknownMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(newFlags(t, tt.args...), ""); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := Load(newFlags(t), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestApply(t *testing.T) {
	cfg, err := Load(newFlags(t, "--water", "350"), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	saved := domain.Settings{TotalWater: 200, Method: domain.MethodHoffmann1Cup, Speed: 4, Theme: domain.ThemeLight}

	got := cfg.Apply(saved)
	want := saved
	want.TotalWater = 350
	if got != want {
		t.Fatalf("applied %+v, want %+v", got, want)
	}
}
