package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/logger"
	"github.com/hammamikhairi/pourover/internal/recipe"
)

// Compile-time interface check.
var _ domain.SettingsStore = (*FileStore)(nil)

// Keys in the settings file.
const (
	keyWater  = "water"
	keyMethod = "method"
	keySpeed  = "speed"
	keyTheme  = "theme"
)

// FileStore keeps settings in a YAML file. Safe for concurrent access.
type FileStore struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

// NewFileStore creates a store backed by the file at path. The file is
// created on the first Save.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// DefaultPath returns the settings file location under the user's config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "pourover", "settings.yaml"), nil
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")

	def := domain.DefaultSettings()
	v.SetDefault(keyWater, def.TotalWater)
	v.SetDefault(keyMethod, def.Method.String())
	v.SetDefault(keySpeed, def.Speed)
	v.SetDefault(keyTheme, string(def.Theme))
	return v
}

// Load reads the settings file. Keys missing from the file take their
// default values. Returns ErrNotFound if the file does not exist.
func (s *FileStore) Load(ctx context.Context) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("settings file %s does not exist", s.path)
		return domain.Settings{}, domain.ErrNotFound
	}

	v := s.newViper()
	if err := v.ReadInConfig(); err != nil {
		return domain.Settings{}, fmt.Errorf("reading settings %s: %w", s.path, err)
	}

	method, err := domain.ParseMethod(v.GetString(keyMethod))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("reading settings %s: %w", s.path, err)
	}

	theme := domain.Theme(v.GetString(keyTheme))
	if theme != domain.ThemeDark && theme != domain.ThemeLight {
		s.log.Warn("unknown theme %q in %s, using %s", theme, s.path, domain.ThemeDark)
		theme = domain.ThemeDark
	}

	def := domain.DefaultSettings()
	water := v.GetFloat64(keyWater)
	if !(water > 0) || water > recipe.MaxTotalWater || math.IsInf(water, 0) {
		s.log.Warn("invalid water %q in %s, using %.0fg", v.GetString(keyWater), s.path, def.TotalWater)
		water = def.TotalWater
	}
	speed := v.GetFloat64(keySpeed)
	if !(speed > 0) || math.IsInf(speed, 0) {
		s.log.Warn("invalid speed %q in %s, using %gx", v.GetString(keySpeed), s.path, def.Speed)
		speed = def.Speed
	}

	settings := domain.Settings{
		TotalWater: water,
		Method:     method,
		Speed:      speed,
		Theme:      theme,
	}
	s.log.Debug("loaded settings from %s: %+v", s.path, settings)
	return settings, nil
}

// Save writes the settings file, creating its directory if needed.
func (s *FileStore) Save(ctx context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	v := s.newViper()
	v.Set(keyWater, settings.TotalWater)
	v.Set(keyMethod, settings.Method.String())
	v.Set(keySpeed, settings.Speed)
	v.Set(keyTheme, string(settings.Theme))

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings %s: %w", s.path, err)
	}
	s.log.Debug("saved settings to %s", s.path)
	return nil
}
