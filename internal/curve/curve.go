// Package curve maps brew time onto a recipe: which phase is active, how
// much water should be on the scale, and the sampled curve used to draw
// the planned schedule. Everything here is a pure function of the recipe.
package curve

import (
	"fmt"
	"math"

	"github.com/hammamikhairi/pourover/internal/domain"
)

// Padding is how far past the end of the recipe Sample keeps going, so a
// drawn curve visibly flattens after the brew finishes.
const Padding = 10.0

// maxSamples bounds the size of a sampled curve.
const maxSamples = 1 << 20

// ActiveIndex returns the index of the phase containing t, or -1 when t is
// before the start or at/after the end of the recipe.
func ActiveIndex(r *domain.Recipe, t float64) (int, error) {
	if r.Len() == 0 {
		return -1, domain.ErrEmptyRecipe
	}
	for i := 0; i < r.Len(); i++ {
		if r.Phase(i).Contains(t) {
			return i, nil
		}
	}
	return -1, nil
}

// ActivePhase returns the phase containing t. The second result is false
// when no phase is active, including exactly at the final end time.
func ActivePhase(r *domain.Recipe, t float64) (domain.Phase, bool, error) {
	idx, err := ActiveIndex(r, t)
	if err != nil || idx < 0 {
		return domain.Phase{}, false, err
	}
	return r.Phase(idx), true, nil
}

// Weight returns the target water weight at time t. Past the end it stays
// at the recipe total; before the start (or for NaN) it is zero.
func Weight(r *domain.Recipe, t float64) (float64, error) {
	if r.Len() == 0 {
		return 0, domain.ErrEmptyRecipe
	}
	if t >= r.EndTime() {
		return r.TotalWater(), nil
	}
	if !(t >= 0) {
		return 0, nil
	}

	idx, _ := ActiveIndex(r, t)
	if idx < 0 {
		return 0, nil
	}
	return weightIn(r, idx, t), nil
}

// RampStart returns the weight a pour at index i starts from: the target of
// the phase right before it, or zero for the first phase.
func RampStart(r *domain.Recipe, i int) float64 {
	if i <= 0 {
		return 0
	}
	return r.Phase(i - 1).TargetWeight
}

// weightIn applies the ramp/hold rule of phase i at time t.
func weightIn(r *domain.Recipe, i int, t float64) float64 {
	p := r.Phase(i)
	if p.Kind == domain.Wait {
		return p.TargetWeight
	}

	d := p.Duration()
	if d <= 0 {
		return p.TargetWeight
	}
	progress := math.Min(math.Max((t-p.Start)/d, 0), 1)
	from := RampStart(r, i)
	return from + (p.TargetWeight-from)*progress
}

// Sample evaluates the planned curve every resolution seconds from 0 to
// Padding seconds past the end of the recipe. Ticks past the end hold the
// final phase's target. The result is built fresh on every call.
func Sample(r *domain.Recipe, resolution float64) ([]domain.Sample, error) {
	if r.Len() == 0 {
		return nil, domain.ErrEmptyRecipe
	}
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return nil, fmt.Errorf("sampling at %v: %w", resolution, domain.ErrInvalidResolution)
	}

	limit := r.EndTime() + Padding
	steps := math.Floor(limit / resolution)
	if steps >= maxSamples {
		return nil, fmt.Errorf("sampling at %v: too many points: %w", resolution, domain.ErrInvalidResolution)
	}
	n := int(steps) + 1
	out := make([]domain.Sample, 0, n)

	last := r.Len() - 1
	idx := 0
	for k := 0; k < n; k++ {
		t := float64(k) * resolution

		// Ticks are increasing, so the active phase only moves forward.
		for idx < last && t >= r.Phase(idx).End {
			idx++
		}

		s := domain.Sample{Time: t}
		if t >= r.EndTime() {
			s.Weight = r.Last().TargetWeight
		} else {
			s.Weight = weightIn(r, idx, t)
			if p := r.Phase(idx); p.Kind == domain.Wait && t == p.Start {
				s.Annotation = p.Label
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// Progress returns how far through the recipe t is, in [0, 1].
func Progress(r *domain.Recipe, t float64) float64 {
	if r.Len() == 0 || !(t > 0) {
		return 0
	}
	return math.Min(t/r.EndTime(), 1)
}
