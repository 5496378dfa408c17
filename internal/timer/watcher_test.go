package timer

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/engine"
	"github.com/hammamikhairi/pourover/internal/logger"
)

// stubBrew returns a fixed snapshot.
type stubBrew struct {
	snap engine.Snapshot
}

func (b *stubBrew) Tick(context.Context, time.Duration) (engine.Snapshot, []domain.Event) {
	return b.snap, nil
}

func (b *stubBrew) Snapshot() engine.Snapshot { return b.snap }

func TestWatcherReportsOnlyRunningBrews(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	brew := &stubBrew{}

	var got []engine.Snapshot
	w := NewWatcher(brew, func(s engine.Snapshot) { got = append(got, s) }, log)

	now := time.Unix(0, 0)
	tests := []struct {
		status domain.BrewStatus
		want   int
	}{
		{domain.BrewIdle, 0},
		{domain.BrewRunning, 1},
		{domain.BrewPaused, 1},
		{domain.BrewRunning, 2},
		{domain.BrewFinished, 2},
	}

	for _, tt := range tests {
		brew.snap = engine.Snapshot{Status: tt.status, Elapsed: 12}
		w.check(now)
		if len(got) != tt.want {
			t.Fatalf("after %s: %d reports, want %d", tt.status, len(got), tt.want)
		}
	}
}

func TestWatcherWarnsOnLongPause(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.LevelNormal, &buf)
	brew := &stubBrew{snap: engine.Snapshot{SessionID: "abc", Status: domain.BrewPaused}}
	w := NewWatcher(brew, func(engine.Snapshot) {}, log, WithPausedWarning(30*time.Second))

	start := time.Unix(0, 0)
	w.check(start)
	w.check(start.Add(10 * time.Second))
	if strings.Contains(buf.String(), "paused for") {
		t.Fatalf("warned too early: %q", buf.String())
	}

	w.check(start.Add(40 * time.Second))
	w.check(start.Add(50 * time.Second))
	if n := strings.Count(buf.String(), "paused for"); n != 1 {
		t.Fatalf("expected one warning, got %d in %q", n, buf.String())
	}

	// Resuming re-arms the warning.
	brew.snap.Status = domain.BrewRunning
	w.check(start.Add(60 * time.Second))
	brew.snap.Status = domain.BrewPaused
	w.check(start.Add(70 * time.Second))
	w.check(start.Add(110 * time.Second))
	if n := strings.Count(buf.String(), "paused for"); n != 2 {
		t.Fatalf("expected a second warning, got %d", n)
	}
}
