// Package engine implements the brew session: it owns the brew clock,
// swaps recipes when the water or method changes, and turns clock ticks
// into cue events.
package engine

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hammamikhairi/pourover/internal/curve"
	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/logger"
	"github.com/hammamikhairi/pourover/internal/recipe"
)

// Option configures the engine.
type Option func(*Engine)

// WithNotifier sets where cue events are delivered.
func WithNotifier(n domain.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithCountdown sets how many seconds are counted down before each pour.
// Zero disables countdown cues.
func WithCountdown(seconds int) Option {
	return func(e *Engine) {
		e.countdown = seconds
	}
}

// Snapshot is a consistent view of a brew at one instant.
type Snapshot struct {
	SessionID  string
	Method     domain.Method
	TotalWater float64
	Dose       float64
	Speed      float64
	Status     domain.BrewStatus
	Elapsed    float64 // seconds of brew time
	EndTime    float64 // seconds
	Weight     float64 // target grams on the scale right now

	PhaseIndex int // -1 when no phase is active
	Phase      domain.Phase
	PhaseLeft  float64 // seconds until the active phase ends
	HasNext    bool
	Next       domain.Phase
}

// Active reports whether a phase is active in the snapshot.
func (s Snapshot) Active() bool { return s.PhaseIndex >= 0 }

// Engine drives a single brew. The recipe it holds is never mutated: a
// water or method change builds a new one and resets the clock in the same
// critical section, so a stale clock is never paired with a new recipe.
type Engine struct {
	log       *logger.Logger
	notifier  domain.Notifier
	countdown int

	mu        sync.Mutex
	sessionID string
	settings  domain.Settings
	recipe    *domain.Recipe
	elapsed   float64
	status    domain.BrewStatus
	tracker   *Tracker
}

// New creates a brew engine for the given settings.
func New(settings domain.Settings, log *logger.Logger, opts ...Option) (*Engine, error) {
	if err := checkSpeed(settings.Speed); err != nil {
		return nil, err
	}
	r, err := recipe.Generate(settings.TotalWater, settings.Method)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		log:       log,
		countdown: 3,
		sessionID: generateID(),
		settings:  settings,
		recipe:    r,
		status:    domain.BrewIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.tracker = NewTracker(e.countdown)

	e.log.Info("brew %s ready: %s, %.0fg water, %d phases, %.0fs",
		e.sessionID, settings.Method, settings.TotalWater, r.Len(), r.EndTime())
	return e, nil
}

// Recipe returns the current recipe. It is immutable and safe to share.
func (e *Engine) Recipe() *domain.Recipe {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recipe
}

// Settings returns the current settings.
func (e *Engine) Settings() domain.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Start starts or resumes the brew clock. Returns false if the brew has
// already finished.
func (e *Engine) Start() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startLocked()
}

func (e *Engine) startLocked() bool {
	switch e.status {
	case domain.BrewFinished:
		return false
	case domain.BrewRunning:
		return true
	}
	if e.status == domain.BrewPaused {
		e.log.Info("brew %s resumed at %.1fs", e.sessionID, e.elapsed)
	} else {
		e.log.Info("brew %s started", e.sessionID)
	}
	e.status = domain.BrewRunning
	return true
}

// Pause stops the brew clock without resetting it.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pauseLocked()
}

func (e *Engine) pauseLocked() {
	if e.status != domain.BrewRunning {
		return
	}
	e.status = domain.BrewPaused
	e.log.Info("brew %s paused at %.1fs", e.sessionID, e.elapsed)
}

// Toggle pauses a running brew or starts a stopped one and returns the new
// status.
func (e *Engine) Toggle() domain.BrewStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == domain.BrewRunning {
		e.pauseLocked()
	} else {
		e.startLocked()
	}
	return e.status
}

// Reset stops the brew and rewinds the clock to zero.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
	e.log.Info("brew reset, new session %s", e.sessionID)
}

func (e *Engine) resetLocked() {
	e.elapsed = 0
	e.status = domain.BrewIdle
	e.tracker.Reset()
	e.sessionID = generateID()
}

// SetWater regenerates the recipe for a new total water amount and resets
// the brew.
func (e *Engine) SetWater(totalWater float64) error {
	e.mu.Lock()
	method := e.settings.Method
	e.mu.Unlock()

	r, err := recipe.Generate(totalWater, method)
	if err != nil {
		return fmt.Errorf("setting water: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.settings
	next.TotalWater = totalWater
	if err := e.swapLocked(next, r); err != nil {
		return fmt.Errorf("setting water: %w", err)
	}
	return nil
}

// SetMethod regenerates the recipe for a new method and resets the brew.
func (e *Engine) SetMethod(m domain.Method) error {
	e.mu.Lock()
	water := e.settings.TotalWater
	e.mu.Unlock()

	r, err := recipe.Generate(water, m)
	if err != nil {
		return fmt.Errorf("setting method: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.settings
	next.Method = m
	if err := e.swapLocked(next, r); err != nil {
		return fmt.Errorf("setting method: %w", err)
	}
	return nil
}

// swapLocked installs settings together with their recipe and rewinds the
// clock. Nothing changes if no recipe can be built for next.
func (e *Engine) swapLocked(next domain.Settings, r *domain.Recipe) error {
	// Another change may have landed between generation and locking.
	if r == nil || r.Method() != next.Method || r.TotalWater() != next.TotalWater {
		fresh, err := recipe.Generate(next.TotalWater, next.Method)
		if err != nil {
			e.log.Error("regenerating recipe: %v", err)
			return err
		}
		r = fresh
	}
	e.settings = next
	e.recipe = r
	e.resetLocked()
	e.log.Info("recipe regenerated: %s, %.0fg water, %d phases, %.0fs",
		r.Method(), r.TotalWater(), r.Len(), r.EndTime())
	return nil
}

// SetSpeed changes the clock multiplier.
func (e *Engine) SetSpeed(speed float64) error {
	if err := checkSpeed(speed); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.Speed = speed
	e.log.Debug("brew %s speed set to %.0fx", e.sessionID, speed)
	return nil
}

func checkSpeed(speed float64) error {
	if !(speed > 0) || math.IsInf(speed, 0) {
		return fmt.Errorf("speed %v: %w", speed, domain.ErrInvalidSpeed)
	}
	return nil
}

// Tick advances a running brew by dt of wall-clock time scaled by the
// speed multiplier, clamping at the end of the recipe. Cue events are
// delivered to the notifier and also returned.
func (e *Engine) Tick(ctx context.Context, dt time.Duration) (Snapshot, []domain.Event) {
	e.mu.Lock()
	if e.status != domain.BrewRunning || dt <= 0 {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	}

	e.elapsed += dt.Seconds() * e.settings.Speed
	if end := e.recipe.EndTime(); e.elapsed >= end {
		e.elapsed = end
		e.status = domain.BrewFinished
		e.log.Info("brew %s finished", e.sessionID)
	}
	events := e.tracker.Observe(e.recipe, e.elapsed)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	for _, ev := range events {
		e.log.Debug("brew %s: %s (from=%d to=%d) at %.2fs", snap.SessionID, ev.Kind, ev.From, ev.To, ev.At)
		if e.notifier == nil {
			continue
		}
		if err := e.notifier.Notify(ctx, ev); err != nil {
			e.log.Error("notifying %s: %v", ev.Kind, err)
		}
	}
	return snap, events
}

// Snapshot returns the current state of the brew.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	r := e.recipe
	snap := Snapshot{
		SessionID:  e.sessionID,
		Method:     e.settings.Method,
		TotalWater: e.settings.TotalWater,
		Speed:      e.settings.Speed,
		Status:     e.status,
		Elapsed:    e.elapsed,
		EndTime:    r.EndTime(),
		PhaseIndex: -1,
	}

	if dose, err := recipe.Dose(e.settings.TotalWater, e.settings.Method); err == nil {
		snap.Dose = dose
	}

	w, err := curve.Weight(r, e.elapsed)
	if err != nil {
		e.log.Error("interpolating weight: %v", err)
	}
	snap.Weight = w

	idx, _ := curve.ActiveIndex(r, e.elapsed)
	if idx >= 0 {
		snap.PhaseIndex = idx
		snap.Phase = r.Phase(idx)
		snap.PhaseLeft = snap.Phase.End - e.elapsed
		if idx+1 < r.Len() {
			snap.HasNext = true
			snap.Next = r.Phase(idx + 1)
		}
	}
	return snap
}
