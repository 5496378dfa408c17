// Package recipe builds pour schedules for the supported brew methods.
package recipe

import (
	"fmt"
	"math"

	"github.com/hammamikhairi/pourover/internal/domain"
)

// MaxTotalWater is the largest amount Generate accepts. Anything above it
// is a unit mistake rather than a brew.
const MaxTotalWater = 10000.0

// Generate builds the pour schedule for totalWater grams with the given
// method. Each checkpoint becomes a pour ramping to its share of the water
// followed by a wait holding it; the last wait is the draw-down. Phases are
// chained end to start so the schedule has no gaps.
func Generate(totalWater float64, method domain.Method) (*domain.Recipe, error) {
	if math.IsNaN(totalWater) || math.IsInf(totalWater, 0) || totalWater <= 0 || totalWater > MaxTotalWater {
		return nil, fmt.Errorf("generating recipe for %vg: %w", totalWater, domain.ErrInvalidWater)
	}

	profile, err := ProfileFor(method)
	if err != nil {
		return nil, fmt.Errorf("generating recipe for %s: %w", method, err)
	}

	phases := make([]domain.Phase, 0, 2*len(profile.Checkpoints))
	clock := 0.0
	for i, c := range profile.Checkpoints {
		weight := totalWater * c.Fraction
		if i == len(profile.Checkpoints)-1 {
			// Pin the last checkpoint so rounding can never leave the
			// final target short of the declared total.
			weight = totalWater
		}

		phases = append(phases, domain.Phase{
			Start:        clock,
			End:          clock + c.PourFor,
			TargetWeight: weight,
			Kind:         domain.Pour,
			Label:        c.PourLabel,
		})
		clock += c.PourFor

		phases = append(phases, domain.Phase{
			Start:        clock,
			End:          clock + c.WaitFor,
			TargetWeight: weight,
			Kind:         domain.Wait,
			Label:        c.WaitLabel,
		})
		clock += c.WaitFor
	}

	return domain.NewRecipe(method, totalWater, phases), nil
}

// Dose returns the grams of coffee to use for totalWater with the method's
// brew ratio.
func Dose(totalWater float64, method domain.Method) (float64, error) {
	profile, err := ProfileFor(method)
	if err != nil {
		return 0, err
	}
	return totalWater / profile.Ratio, nil
}

// DoseGrams returns Dose rounded to the nearest gram, or 0 for an unknown
// method.
func DoseGrams(totalWater float64, method domain.Method) int {
	d, err := Dose(totalWater, method)
	if err != nil {
		return 0
	}
	return int(math.Round(d))
}
