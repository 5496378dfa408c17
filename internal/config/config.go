// Package config resolves runtime options from defaults, an optional
// config file, POUROVER_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/logger"
	"github.com/hammamikhairi/pourover/internal/recipe"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "POUROVER"

// Keys, shared by flags, env vars and the config file.
const (
	KeyWater     = "water"
	KeyMethod    = "method"
	KeySpeed     = "speed"
	KeyTheme     = "theme"
	KeyVerbose   = "verbose"
	KeyQuiet     = "quiet"
	KeyLogFile   = "log-file"
	KeyNoSound   = "no-sound"
	KeyEphemeral = "ephemeral"
	KeySettings  = "settings"
	KeyTick      = "tick"
	KeyCountdown = "countdown"
)

// ErrInvalidConfig is returned for values that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds resolved runtime options.
type Config struct {
	// Settings are the brew settings after defaults and overrides.
	Settings domain.Settings

	LogLevel     logger.Level
	LogFile      string
	NoSound      bool
	Ephemeral    bool
	SettingsPath string
	Tick         time.Duration
	Countdown    int

	// overridden lists the settings keys given explicitly by the user.
	overridden map[string]bool
}

// Defaults returns the options used when nothing else is configured.
func Defaults() *Config {
	return &Config{
		Settings:   domain.DefaultSettings(),
		LogLevel:   logger.LevelNormal,
		LogFile:    ".pourover/pourover.log",
		Tick:       100 * time.Millisecond,
		Countdown:  3,
		overridden: map[string]bool{},
	}
}

// RegisterFlags adds the global flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Defaults()
	fs.Float64(KeyWater, def.Settings.TotalWater, "total brew water in grams")
	fs.String(KeyMethod, def.Settings.Method.String(), "brew method (4:6, hoffmann-1cup)")
	fs.Float64(KeySpeed, def.Settings.Speed, "clock speed multiplier")
	fs.String(KeyTheme, string(def.Settings.Theme), "colour theme (dark, light)")
	fs.BoolP(KeyVerbose, "v", false, "enable verbose/debug logging")
	fs.BoolP(KeyQuiet, "q", false, "disable all logging")
	fs.String(KeyLogFile, def.LogFile, "file to write logs to (use \"stderr\" to log to console)")
	fs.Bool(KeyNoSound, false, "disable audio cues")
	fs.Bool(KeyEphemeral, false, "do not read or write saved settings")
	fs.String(KeySettings, "", "settings file (default $XDG_CONFIG_HOME/pourover/settings.yaml)")
	fs.Duration(KeyTick, def.Tick, "clock tick interval")
	fs.Int(KeyCountdown, def.Countdown, "seconds counted down before each pour (0 disables)")
}

// Load resolves options. Values in a .env file in the working directory
// are loaded into the environment first. configFile may be empty.
func Load(fs *pflag.FlagSet, configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	return fromViper(v)
}

// fromViper reads options out of v. Only keys that were set somewhere
// (changed flag, env, file) replace the defaults.
func fromViper(v *viper.Viper) (*Config, error) {
	cfg := Defaults()

	if v.IsSet(KeyWater) {
		cfg.Settings.TotalWater = v.GetFloat64(KeyWater)
		cfg.overridden[KeyWater] = true
	}
	if v.IsSet(KeyMethod) {
		m, err := domain.ParseMethod(v.GetString(KeyMethod))
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", KeyMethod, v.GetString(KeyMethod), err)
		}
		cfg.Settings.Method = m
		cfg.overridden[KeyMethod] = true
	}
	if v.IsSet(KeySpeed) {
		cfg.Settings.Speed = v.GetFloat64(KeySpeed)
		cfg.overridden[KeySpeed] = true
	}
	if v.IsSet(KeyTheme) {
		cfg.Settings.Theme = domain.Theme(strings.ToLower(v.GetString(KeyTheme)))
		cfg.overridden[KeyTheme] = true
	}

	if v.GetBool(KeyVerbose) {
		cfg.LogLevel = logger.LevelVerbose
	}
	if v.GetBool(KeyQuiet) {
		cfg.LogLevel = logger.LevelOff
	}
	if v.IsSet(KeyLogFile) {
		cfg.LogFile = v.GetString(KeyLogFile)
	}
	cfg.NoSound = v.GetBool(KeyNoSound)
	cfg.Ephemeral = v.GetBool(KeyEphemeral)
	cfg.SettingsPath = v.GetString(KeySettings)
	if v.IsSet(KeyTick) {
		cfg.Tick = v.GetDuration(KeyTick)
	}
	if v.IsSet(KeyCountdown) {
		cfg.Countdown = v.GetInt(KeyCountdown)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every option is usable.
func (c *Config) Validate() error {
	s := c.Settings
	if !(s.TotalWater > 0) || s.TotalWater > recipe.MaxTotalWater || math.IsInf(s.TotalWater, 0) {
		return fmt.Errorf("%s %v: must be in (0, %v]: %w", KeyWater, s.TotalWater, recipe.MaxTotalWater, ErrInvalidConfig)
	}
	if !(s.Speed > 0) || math.IsInf(s.Speed, 0) {
		return fmt.Errorf("%s %v: must be positive: %w", KeySpeed, s.Speed, ErrInvalidConfig)
	}
	if s.Theme != domain.ThemeDark && s.Theme != domain.ThemeLight {
		return fmt.Errorf("%s %q: %w", KeyTheme, s.Theme, ErrInvalidConfig)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("%s %s: must be positive: %w", KeyTick, c.Tick, ErrInvalidConfig)
	}
	if c.Countdown < 0 {
		return fmt.Errorf("%s %d: must not be negative: %w", KeyCountdown, c.Countdown, ErrInvalidConfig)
	}
	return nil
}

// Overridden reports whether key was given explicitly.
func (c *Config) Overridden(key string) bool { return c.overridden[key] }

// Apply layers the explicitly given settings over saved ones.
func (c *Config) Apply(saved domain.Settings) domain.Settings {
	out := saved
	if c.overridden[KeyWater] {
		out.TotalWater = c.Settings.TotalWater
	}
	if c.overridden[KeyMethod] {
		out.Method = c.Settings.Method
	}
	if c.overridden[KeySpeed] {
		out.Speed = c.Settings.Speed
	}
	if c.overridden[KeyTheme] {
		out.Theme = c.Settings.Theme
	}
	return out
}
