package domain

import "context"

// Notifier receives brew cues. Implementations can play tones, print to
// the terminal, or both.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// SettingsStore persists user settings. Implementations can be in-memory
// or file-backed.
type SettingsStore interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}
