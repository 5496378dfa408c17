package timer

import (
	"context"
	"time"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/engine"
	"github.com/hammamikhairi/pourover/internal/logger"
)

// ReportFunc receives periodic progress snapshots.
type ReportFunc func(engine.Snapshot)

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets how often the watcher reports.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithPausedWarning sets how long a brew may sit paused before the
// watcher logs a warning. Zero disables the warning.
func WithPausedWarning(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.pausedWarning = d
	}
}

// Watcher periodically reports the progress of a running brew. It runs on
// a slower cycle than the supervisor (default: 5 seconds) and never
// advances the clock itself.
type Watcher struct {
	brew          Brew
	report        ReportFunc
	log           *logger.Logger
	interval      time.Duration
	pausedWarning time.Duration

	pausedSince time.Time
	warned      bool
}

// NewWatcher creates a watcher with the given dependencies.
func NewWatcher(brew Brew, report ReportFunc, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		brew:          brew,
		report:        report,
		log:           log,
		interval:      5 * time.Second,
		pausedWarning: time.Minute,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the watcher loop. Blocks until ctx is cancelled.
// Intended to be called as a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Debug("watcher started (interval=%s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watcher stopped")
			return
		case now := <-ticker.C:
			w.check(now)
		}
	}
}

// check runs one watcher cycle.
func (w *Watcher) check(now time.Time) {
	snap := w.brew.Snapshot()

	if snap.Status != domain.BrewPaused {
		w.pausedSince = time.Time{}
		w.warned = false
	}

	switch snap.Status {
	case domain.BrewRunning:
		w.log.Debug("watcher: brew %s at %.1fs, phase %d, %.0fg",
			snap.SessionID, snap.Elapsed, snap.PhaseIndex, snap.Weight)
		w.report(snap)
	case domain.BrewPaused:
		if w.pausedSince.IsZero() {
			w.pausedSince = now
		}
		if w.pausedWarning > 0 && !w.warned && now.Sub(w.pausedSince) >= w.pausedWarning {
			w.warned = true
			w.log.Warn("brew %s paused for %s at %.1fs; the bed is cooling",
				snap.SessionID, now.Sub(w.pausedSince).Round(time.Second), snap.Elapsed)
		}
	}
}
