package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// Tone is a single enveloped sine note placed on a timeline.
type Tone struct {
	Freq     float64       // Hz
	Offset   time.Duration // start relative to the clip
	Duration time.Duration
}

// end returns when the tone stops, relative to the clip.
func (t Tone) end() time.Duration { return t.Offset + t.Duration }

// Render mixes tones into signed 16-bit little-endian mono PCM. The clip
// lasts until the last tone ends.
func Render(tones ...Tone) []byte {
	var length time.Duration
	for _, t := range tones {
		if t.end() > length {
			length = t.end()
		}
	}
	n := samplesFor(length)
	mix := make([]float64, n)

	for _, t := range tones {
		first := samplesFor(t.Offset)
		count := samplesFor(t.Duration)
		for i := 0; i < count && first+i < n; i++ {
			at := float64(i) / SampleRate
			mix[first+i] += envelope(at, t.Duration.Seconds()) * math.Sin(2*math.Pi*t.Freq*at)
		}
	}

	pcm := make([]byte, n*2)
	for i, v := range mix {
		v = math.Max(-1, math.Min(1, v))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(math.Round(v*math.MaxInt16))))
	}
	return pcm
}

// envelope rises linearly to peakGain over the attack, then decays
// exponentially to floorGain at the end of the tone.
func envelope(at, length float64) float64 {
	attack := attackTime.Seconds()
	if at < attack {
		return peakGain * at / attack
	}
	release := length - attack
	if release <= 0 {
		return peakGain
	}
	frac := math.Min((at-attack)/release, 1)
	return peakGain * math.Pow(floorGain/peakGain, frac)
}

func samplesFor(d time.Duration) int {
	return int(math.Round(d.Seconds() * SampleRate))
}

// StepComplete renders the phase-change chime: C5 then E5 a beat later.
func StepComplete() []byte {
	return Render(
		Tone{Freq: NoteC5, Duration: chimeNote},
		Tone{Freq: NoteE5, Offset: chimeGap, Duration: chimeNote},
	)
}

// Countdown renders the short blip played on the seconds before a pour.
func Countdown() []byte {
	return Render(Tone{Freq: NoteA5, Duration: blipNote})
}
