package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/engine"
	"github.com/hammamikhairi/pourover/internal/logger"
)

// fakeClock advances by a fixed step on every reading.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// mockNotifier counts events for testing.
type mockNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (m *mockNotifier) Notify(_ context.Context, ev domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *mockNotifier) count(kind domain.EventKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ev := range m.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func newEngine(t *testing.T, notifier domain.Notifier) *engine.Engine {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	eng, err := engine.New(domain.DefaultSettings(), log, engine.WithNotifier(notifier))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng
}

func TestSupervisorFinishesBrew(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	notifier := &mockNotifier{}
	eng := newEngine(t, notifier)
	eng.Start()

	clock := &fakeClock{now: time.Unix(0, 0), step: 5 * time.Second}
	sup := New(eng, log,
		WithTickInterval(time.Millisecond),
		WithClock(clock.Now),
		WithStopOnFinish(true),
	)
	sup.Start(context.Background())
	defer sup.Stop()

	select {
	case <-sup.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not finish the brew")
	}

	snap := eng.Snapshot()
	if snap.Status != domain.BrewFinished || snap.Elapsed != 210 {
		t.Fatalf("expected finished at 210s, got %s at %v", snap.Status, snap.Elapsed)
	}
	if got := notifier.count(domain.EventFinished); got != 1 {
		t.Fatalf("finished events = %d, want 1", got)
	}
	if got := notifier.count(domain.EventPhaseChanged); got != 9 {
		t.Fatalf("phase changed events = %d, want 9", got)
	}
}

func TestSupervisorStopClosesDone(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	eng := newEngine(t, &mockNotifier{})
	eng.Start()

	sup := New(eng, log, WithTickInterval(time.Millisecond))
	sup.Start(context.Background())

	select {
	case <-sup.Done():
		t.Fatal("done closed before stop")
	case <-time.After(20 * time.Millisecond):
	}

	sup.Stop()
	select {
	case <-sup.Done():
	case <-time.After(time.Second):
		t.Fatal("done not closed after stop")
	}

	// Stopping twice is harmless.
	sup.Stop()
}

func TestSupervisorKeepsRunningWithoutStopOnFinish(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	eng := newEngine(t, &mockNotifier{})
	eng.Start()

	clock := &fakeClock{now: time.Unix(0, 0), step: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	sup := New(eng, log, WithTickInterval(time.Millisecond), WithClock(clock.Now))
	sup.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	if eng.Snapshot().Status != domain.BrewFinished {
		t.Fatal("expected the brew to finish")
	}
	select {
	case <-sup.Done():
		t.Fatal("supervisor exited without stop-on-finish")
	default:
	}

	cancel()
	select {
	case <-sup.Done():
	case <-time.After(time.Second):
		t.Fatal("done not closed after cancel")
	}
}

func TestSupervisorRestart(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	eng := newEngine(t, &mockNotifier{})

	sup := New(eng, log, WithTickInterval(time.Millisecond))
	sup.Start(context.Background())
	sup.Start(context.Background()) // already running, ignored
	sup.Stop()
	<-sup.Done()

	sup.Start(context.Background())
	defer sup.Stop()
	select {
	case <-sup.Done():
		t.Fatal("restarted supervisor reports done")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestSupervisorRunsWatcher(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	eng := newEngine(t, &mockNotifier{})
	eng.Start()

	var mu sync.Mutex
	var reports int
	report := func(engine.Snapshot) {
		mu.Lock()
		reports++
		mu.Unlock()
	}

	clock := &fakeClock{now: time.Unix(0, 0), step: 10 * time.Millisecond}
	sup := New(eng, log,
		WithTickInterval(time.Millisecond),
		WithClock(clock.Now),
		WithWatcher(report, WithWatchInterval(2*time.Millisecond)),
	)
	sup.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	sup.Stop()

	mu.Lock()
	defer mu.Unlock()
	if reports == 0 {
		t.Fatal("expected at least one progress report")
	}
}
