package domain

// BrewStatus tracks the lifecycle of a brew session.
type BrewStatus int

const (
	BrewIdle BrewStatus = iota
	BrewRunning
	BrewPaused
	BrewFinished
)

// String returns a human-readable brew status.
func (s BrewStatus) String() string {
	switch s {
	case BrewIdle:
		return "idle"
	case BrewRunning:
		return "running"
	case BrewPaused:
		return "paused"
	case BrewFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// EventKind classifies a cue emitted while the brew clock advances.
type EventKind int

const (
	// EventStarted fires when the clock first lands inside a phase.
	EventStarted EventKind = iota
	// EventPhaseChanged fires when the active phase index changes.
	EventPhaseChanged
	// EventCountdown fires on each of the last few seconds before a pour.
	EventCountdown
	// EventFinished fires once when the clock reaches the end of the recipe.
	EventFinished
)

// String returns a human-readable event kind.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventPhaseChanged:
		return "phase_changed"
	case EventCountdown:
		return "countdown"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is a cue for the audio and display collaborators.
type Event struct {
	Kind  EventKind
	From  int     // previous phase index, -1 if none
	To    int     // new phase index, -1 when finished
	Phase Phase   // phase entered (zero when finished)
	At    float64 // elapsed seconds when the event was observed
	Count int     // seconds left, for countdown events
}

// Theme is the colour scheme of the terminal UI.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Settings are the user choices remembered between runs.
type Settings struct {
	TotalWater float64
	Method     Method
	Speed      float64
	Theme      Theme
}

// Water limits offered by the UI.
const (
	MinWater     = 150.0
	MaxWater     = 600.0
	WaterStep    = 10.0
	DefaultWater = 300.0
	MinSpeed     = 1.0
	MaxSpeed     = 10.0
)

// DefaultSettings returns the settings used on first launch.
func DefaultSettings() Settings {
	return Settings{
		TotalWater: DefaultWater,
		Method:     MethodFourSix,
		Speed:      1,
		Theme:      ThemeDark,
	}
}

// ClampWater limits w to the range the UI offers.
func ClampWater(w float64) float64 {
	if w < MinWater {
		return MinWater
	}
	if w > MaxWater {
		return MaxWater
	}
	return w
}

// ClampSpeed limits s to the demo speed range the UI offers.
func ClampSpeed(s float64) float64 {
	if s < MinSpeed {
		return MinSpeed
	}
	if s > MaxSpeed {
		return MaxSpeed
	}
	return s
}
