// Package storage provides settings persistence implementations.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/logger"
)

// Compile-time interface check.
var _ domain.SettingsStore = (*MemoryStore)(nil)

// MemoryStore keeps settings in memory for the life of the process. Safe
// for concurrent access.
type MemoryStore struct {
	mu       sync.RWMutex
	settings *domain.Settings
	saves    int
	log      *logger.Logger
}

// NewMemoryStore creates an empty in-memory settings store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

// Save replaces the stored settings.
func (s *MemoryStore) Save(ctx context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving settings (method=%s, water=%.0f, speed=%.0f, theme=%s)",
		settings.Method, settings.TotalWater, settings.Speed, settings.Theme)
	s.settings = &settings
	s.saves++
	return nil
}

// Load returns the stored settings, or ErrNotFound if nothing was saved.
func (s *MemoryStore) Load(ctx context.Context) (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		s.log.Debug("no settings saved yet")
		return domain.Settings{}, domain.ErrNotFound
	}
	return *s.settings, nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
