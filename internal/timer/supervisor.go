// Package timer drives a brew engine from wall-clock time in the
// background, for runs that have no interactive UI.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/engine"
	"github.com/hammamikhairi/pourover/internal/logger"
)

// Brew is the part of the engine the supervisor drives.
type Brew interface {
	Tick(ctx context.Context, dt time.Duration) (engine.Snapshot, []domain.Event)
	Snapshot() engine.Snapshot
}

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often the supervisor advances the brew.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithClock replaces time.Now. The supervisor advances the brew by the
// difference between successive clock readings.
func WithClock(now func() time.Time) Option {
	return func(s *Supervisor) {
		s.now = now
	}
}

// WithStopOnFinish makes the supervisor exit once the brew finishes.
func WithStopOnFinish(stop bool) Option {
	return func(s *Supervisor) {
		s.stopOnFinish = stop
	}
}

// WithWatcher enables a progress watcher that reports the brew on a
// slower cycle than the tick loop.
func WithWatcher(report ReportFunc, opts ...WatcherOption) Option {
	return func(s *Supervisor) {
		s.watchReport = report
		s.watchOpts = opts
	}
}

// Supervisor runs in the background and feeds elapsed time to a brew.
type Supervisor struct {
	brew         Brew
	log          *logger.Logger
	tickInterval time.Duration
	now          func() time.Time
	stopOnFinish bool

	watchReport ReportFunc
	watchOpts   []WatcherOption

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a supervisor for the given brew.
func New(brew Brew, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		brew:         brew,
		log:          log,
		tickInterval: 100 * time.Millisecond,
		now:          time.Now,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the background loop. Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("brew supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.done = make(chan struct{})

	go s.loop(childCtx, s.done)

	if s.watchReport != nil {
		w := NewWatcher(s.brew, s.watchReport, s.log, s.watchOpts...)
		go w.Run(childCtx)
	}

	s.log.Info("brew supervisor started (tick=%s)", s.tickInterval)
}

// Stop shuts down the supervisor.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.running = false
	s.log.Info("brew supervisor stopped")
}

// Done returns a channel that is closed when the loop exits: after Stop,
// after the context is cancelled, or when the brew finishes and
// stop-on-finish is set.
func (s *Supervisor) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Supervisor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	last := s.now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := s.now()
			dt := now.Sub(last)
			last = now

			snap, _ := s.brew.Tick(ctx, dt)
			if snap.Status == domain.BrewFinished && s.stopOnFinish {
				s.log.Info("brew %s finished, supervisor exiting", snap.SessionID)
				s.mu.Lock()
				s.running = false
				s.cancel()
				s.mu.Unlock()
				return
			}
		}
	}
}
