package engine

import (
	"math"

	"github.com/hammamikhairi/pourover/internal/curve"
	"github.com/hammamikhairi/pourover/internal/domain"
)

// TrackerState is the position of the brew clock relative to the recipe.
type TrackerState int

const (
	NotStarted TrackerState = iota
	InPhase
	Finished
)

// String returns a human-readable tracker state.
func (s TrackerState) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InPhase:
		return "in_phase"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Tracker turns successive clock readings into cue events. Transitions are
// decided by phase index, never by weight, and each one fires exactly once.
//
//	NotStarted --(t lands in phase i)--> InPhase(i)   emits Started
//	InPhase(i) --(t lands in phase j)--> InPhase(j)   emits PhaseChanged
//	any        --(t >= end)-----------> Finished      emits Finished
//
// Finished is terminal until Reset. A Tracker is not safe for concurrent use.
type Tracker struct {
	state     TrackerState
	index     int
	countdown int // seconds counted down before a pour, 0 disables
	lastCount int // last countdown value emitted in the current phase
}

// NewTracker creates a tracker that counts down the last countdown seconds
// of every wait that leads into a pour.
func NewTracker(countdown int) *Tracker {
	return &Tracker{index: -1, countdown: countdown}
}

// State returns the current state.
func (t *Tracker) State() TrackerState { return t.state }

// Index returns the active phase index, or -1 outside InPhase.
func (t *Tracker) Index() int { return t.index }

// Reset returns the tracker to NotStarted.
func (t *Tracker) Reset() {
	t.state = NotStarted
	t.index = -1
	t.lastCount = 0
}

// Observe feeds one clock reading and returns the events it triggers, in
// order. Readings before the first phase are ignored.
func (t *Tracker) Observe(r *domain.Recipe, at float64) []domain.Event {
	if t.state == Finished || r.Len() == 0 {
		return nil
	}

	if at >= r.EndTime() {
		from := t.index
		t.state = Finished
		t.index = -1
		return []domain.Event{{Kind: domain.EventFinished, From: from, To: -1, At: at}}
	}

	idx, err := curve.ActiveIndex(r, at)
	if err != nil || idx < 0 {
		return nil
	}

	var events []domain.Event
	switch {
	case t.state == NotStarted:
		events = append(events, domain.Event{Kind: domain.EventStarted, From: -1, To: idx, Phase: r.Phase(idx), At: at})
		t.enter(idx)
	case idx != t.index:
		events = append(events, domain.Event{Kind: domain.EventPhaseChanged, From: t.index, To: idx, Phase: r.Phase(idx), At: at})
		t.enter(idx)
	}

	if ev, ok := t.countdownEvent(r, at); ok {
		events = append(events, ev)
	}
	return events
}

func (t *Tracker) enter(idx int) {
	t.state = InPhase
	t.index = idx
	t.lastCount = 0
}

// countdownEvent emits one event per whole-second mark crossed in the last
// seconds of a wait that is followed by a pour.
func (t *Tracker) countdownEvent(r *domain.Recipe, at float64) (domain.Event, bool) {
	if t.countdown <= 0 || t.index+1 >= r.Len() {
		return domain.Event{}, false
	}
	p, next := r.Phase(t.index), r.Phase(t.index+1)
	if p.Kind != domain.Wait || next.Kind != domain.Pour {
		return domain.Event{}, false
	}

	n := int(math.Ceil(p.End - at))
	if n < 1 || n > t.countdown {
		return domain.Event{}, false
	}
	if t.lastCount != 0 && n >= t.lastCount {
		return domain.Event{}, false
	}
	t.lastCount = n
	return domain.Event{
		Kind:  domain.EventCountdown,
		From:  t.index,
		To:    t.index + 1,
		Phase: next,
		At:    at,
		Count: n,
	}, true
}
