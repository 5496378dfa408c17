package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/logger"
)

func TestMemoryStore(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryStore(log)
	ctx := context.Background()

	// Load before any save.
	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	want := domain.Settings{TotalWater: 420, Method: domain.MethodHoffmann1Cup, Speed: 3, Theme: domain.ThemeLight}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("loaded %+v, want %+v", got, want)
	}

	// Overwrite.
	want.TotalWater = 200
	store.Save(ctx, want)
	got, _ = store.Load(ctx)
	if got.TotalWater != 200 {
		t.Fatalf("expected overwritten water, got %v", got.TotalWater)
	}
	if store.Saves() != 2 {
		t.Fatalf("expected 2 saves, got %d", store.Saves())
	}
}
