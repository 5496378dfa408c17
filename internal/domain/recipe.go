// Package domain defines the core types and interfaces for the brew guide.
// All other packages depend on domain; domain depends on nothing.
package domain

import "fmt"

// PhaseKind tells whether water is being added during a phase.
type PhaseKind int

const (
	// Pour ramps the water mass up to the phase target.
	Pour PhaseKind = iota
	// Wait holds the water mass constant.
	Wait
)

// String returns a human-readable phase kind.
func (k PhaseKind) String() string {
	switch k {
	case Pour:
		return "pour"
	case Wait:
		return "wait"
	default:
		return "unknown"
	}
}

// Phase is one interval of a brew schedule. Times are seconds from the
// start of the brew, weights are grams of water on the scale.
type Phase struct {
	Start        float64
	End          float64
	TargetWeight float64
	Kind         PhaseKind
	Label        string
}

// Duration returns the phase length in seconds.
func (p Phase) Duration() float64 {
	return p.End - p.Start
}

// Contains reports whether t falls in the half-open interval [Start, End).
func (p Phase) Contains(t float64) bool {
	return t >= p.Start && t < p.End
}

// Recipe is an ordered, immutable pour schedule. Build one with NewRecipe;
// the zero value has no phases and is rejected by the interpolation code.
type Recipe struct {
	method     Method
	totalWater float64
	phases     []Phase
}

// NewRecipe copies phases into a new recipe.
func NewRecipe(method Method, totalWater float64, phases []Phase) *Recipe {
	cp := make([]Phase, len(phases))
	copy(cp, phases)
	return &Recipe{method: method, totalWater: totalWater, phases: cp}
}

// Method returns the brew method the recipe was generated for.
func (r *Recipe) Method() Method { return r.method }

// TotalWater returns the declared total water in grams.
func (r *Recipe) TotalWater() float64 { return r.totalWater }

// Len returns the number of phases. Safe on a nil recipe.
func (r *Recipe) Len() int {
	if r == nil {
		return 0
	}
	return len(r.phases)
}

// Phase returns the phase at index i. Panics if i is out of range.
func (r *Recipe) Phase(i int) Phase { return r.phases[i] }

// Phases returns a copy of the phase list.
func (r *Recipe) Phases() []Phase {
	cp := make([]Phase, len(r.phases))
	copy(cp, r.phases)
	return cp
}

// Last returns the final phase. Panics on an empty recipe.
func (r *Recipe) Last() Phase { return r.phases[len(r.phases)-1] }

// EndTime returns the time at which the brew is finished.
func (r *Recipe) EndTime() float64 { return r.Last().End }

// Equal reports whether two recipes have the same method, water and phases.
func (r *Recipe) Equal(other *Recipe) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.method != other.method || r.totalWater != other.totalWater || len(r.phases) != len(other.phases) {
		return false
	}
	for i := range r.phases {
		if r.phases[i] != other.phases[i] {
			return false
		}
	}
	return true
}

// Validate checks the schedule invariants: non-empty, starting at zero,
// contiguous, positive-length phases, non-decreasing weights, and a final
// weight equal to the declared total.
func (r *Recipe) Validate() error {
	if r.Len() == 0 {
		return ErrEmptyRecipe
	}
	if r.phases[0].Start != 0 {
		return fmt.Errorf("first phase starts at %v, want 0", r.phases[0].Start)
	}
	prevWeight := 0.0
	for i, p := range r.phases {
		if p.End <= p.Start {
			return fmt.Errorf("phase %d (%s) has non-positive duration", i, p.Label)
		}
		if i > 0 && p.Start != r.phases[i-1].End {
			return fmt.Errorf("phase %d starts at %v, previous ends at %v", i, p.Start, r.phases[i-1].End)
		}
		if p.TargetWeight < prevWeight {
			return fmt.Errorf("phase %d target %v below previous %v", i, p.TargetWeight, prevWeight)
		}
		prevWeight = p.TargetWeight
	}
	if last := r.Last(); last.TargetWeight != r.totalWater {
		return fmt.Errorf("final target %v, want total water %v", last.TargetWeight, r.totalWater)
	}
	return nil
}

// Sample is one point of the planned weight curve used for drawing.
type Sample struct {
	Time       float64 `json:"time"`
	Weight     float64 `json:"weight"`
	Annotation string  `json:"annotation,omitempty"` // label of a wait phase starting at this tick
}
