// Package sound synthesizes and plays the brew cues: a two-note chime when
// a phase changes and a short blip counting down to each pour.
package sound

import "time"

// Audio parameters shared by the synth and the player.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Envelope shape applied to every tone.
const (
	attackTime = 50 * time.Millisecond
	peakGain   = 0.1
	floorGain  = 0.001
)

// Cue tones.
const (
	NoteC5    = 523.25
	NoteE5    = 659.25
	NoteA5    = 880.0
	chimeNote = 400 * time.Millisecond
	chimeGap  = 100 * time.Millisecond
	blipNote  = 100 * time.Millisecond
)
