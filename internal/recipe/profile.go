package recipe

import "github.com/hammamikhairi/pourover/internal/domain"

// Checkpoint is one pour of a method: the cumulative share of the total
// water reached when the pour ends, how long the pour takes, and how long
// to wait before the next one.
type Checkpoint struct {
	Fraction  float64
	PourFor   float64 // seconds
	WaitFor   float64 // seconds
	PourLabel string
	WaitLabel string
}

// Profile describes a brew method.
type Profile struct {
	Method      domain.Method
	Title       string
	Short       string
	Tagline     string
	Footnote    string
	Ratio       float64 // grams of water per gram of coffee
	Checkpoints []Checkpoint
}

// Kasuya's 4:6 splits the water into 40% for sweetness and acidity and 60%
// for strength, poured in five equal parts 45 seconds apart.
var fourSix = Profile{
	Method:   domain.MethodFourSix,
	Title:    "V60 Guide: 4:6 Method",
	Short:    "4:6 Method",
	Tagline:  "Sweetness & Strength balance",
	Footnote: "Based on Tetsu Kasuya's 4:6 method. Adjust grind size to finish drawdown around 3:30.",
	Ratio:    15,
	Checkpoints: []Checkpoint{
		{Fraction: 0.2, PourFor: 10, WaitFor: 35, PourLabel: "Bloom Pour", WaitLabel: "Bloom Wait"},
		{Fraction: 0.4, PourFor: 10, WaitFor: 35, PourLabel: "2nd Pour", WaitLabel: "Wait"},
		{Fraction: 0.6, PourFor: 10, WaitFor: 35, PourLabel: "3rd Pour", WaitLabel: "Wait"},
		{Fraction: 0.8, PourFor: 10, WaitFor: 35, PourLabel: "4th Pour", WaitLabel: "Wait"},
		{Fraction: 1.0, PourFor: 10, WaitFor: 20, PourLabel: "Final Pour", WaitLabel: "Draw Down"},
	},
}

// Hoffmann's single cup: bloom to 20% until 0:45, then four pours of 20%
// spaced 20-25 seconds apart, finished by 2:00 and drained by 3:00.
var hoffmann1Cup = Profile{
	Method:   domain.MethodHoffmann1Cup,
	Title:    "James Hoffmann 1-Cup",
	Short:    "Hoffmann",
	Tagline:  "Better 1 Cup Technique",
	Footnote: "Based on James Hoffmann's 'Better 1 Cup V60' technique. High temp, medium-fine grind.",
	Ratio:    16.66,
	Checkpoints: []Checkpoint{
		{Fraction: 0.2, PourFor: 10, WaitFor: 35, PourLabel: "Bloom Pour", WaitLabel: "Bloom (swirl)"},
		{Fraction: 0.4, PourFor: 15, WaitFor: 10, PourLabel: "Pour to 40%", WaitLabel: "Pause"},
		{Fraction: 0.6, PourFor: 10, WaitFor: 10, PourLabel: "Pour to 60%", WaitLabel: "Pause"},
		{Fraction: 0.8, PourFor: 10, WaitFor: 10, PourLabel: "Pour to 80%", WaitLabel: "Pause"},
		{Fraction: 1.0, PourFor: 10, WaitFor: 60, PourLabel: "Final Pour", WaitLabel: "Swirl & Draw Down"},
	},
}

var profiles = map[domain.Method]*Profile{
	domain.MethodFourSix:      &fourSix,
	domain.MethodHoffmann1Cup: &hoffmann1Cup,
}

// ProfileFor returns a copy of the profile of a method. Changing it does
// not affect generated recipes.
func ProfileFor(m domain.Method) (*Profile, error) {
	p, ok := profiles[m]
	if !ok {
		return nil, domain.ErrUnknownMethod
	}
	cp := *p
	cp.Checkpoints = append([]Checkpoint(nil), p.Checkpoints...)
	return &cp, nil
}

// TotalTime returns the brew length of the profile in seconds.
func (p *Profile) TotalTime() float64 {
	total := 0.0
	for _, c := range p.Checkpoints {
		total += c.PourFor + c.WaitFor
	}
	return total
}
