package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/recipe"
)

const eps = 1e-9

func mustRecipe(t *testing.T, water float64, m domain.Method) *domain.Recipe {
	t.Helper()
	r, err := recipe.Generate(water, m)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return r
}

func mustWeight(t *testing.T, r *domain.Recipe, at float64) float64 {
	t.Helper()
	w, err := Weight(r, at)
	if err != nil {
		t.Fatalf("weight at %v: %v", at, err)
	}
	return w
}

func TestWeightAtStartAndEnd(t *testing.T) {
	for _, m := range domain.Methods {
		r := mustRecipe(t, 300, m)
		if w := mustWeight(t, r, 0); w != 0 {
			t.Fatalf("%s: weight at 0 = %v, want 0", m, w)
		}
		end := r.EndTime()
		for _, at := range []float64{end, end + 0.001, end + 60, math.Inf(1)} {
			if w := mustWeight(t, r, at); w != 300 {
				t.Fatalf("%s: weight at %v = %v, want 300", m, at, w)
			}
		}
	}
}

func TestWeightBeforeStart(t *testing.T) {
	r := mustRecipe(t, 300, domain.MethodFourSix)
	for _, at := range []float64{-1, -0.0001, math.Inf(-1), math.NaN()} {
		if w := mustWeight(t, r, at); w != 0 {
			t.Fatalf("weight at %v = %v, want 0", at, w)
		}
	}
}

func TestWeightMidPour(t *testing.T) {
	r := mustRecipe(t, 300, domain.MethodFourSix)

	tests := []struct {
		at   float64
		want float64
	}{
		{5, 30},      // halfway through the bloom pour
		{2.5, 15},    // quarter of the bloom pour
		{10, 60},     // bloom wait holds
		{30, 60},     // still holding
		{50, 90},     // halfway from 60 to 120
		{55, 120},    // wait after the 2nd pour
		{185, 270},   // halfway through the final pour
		{209.9, 300}, // draw down
	}

	for _, tt := range tests {
		if got := mustWeight(t, r, tt.at); math.Abs(got-tt.want) > eps {
			t.Fatalf("weight at %v = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestWeightMonotonic(t *testing.T) {
	for _, m := range domain.Methods {
		for _, water := range []float64{150, 250, 333.3, 600} {
			r := mustRecipe(t, water, m)
			prev := -1.0
			for at := -5.0; at <= r.EndTime()+20; at += 0.25 {
				w := mustWeight(t, r, at)
				if w < prev {
					t.Fatalf("%s/%v: weight dropped from %v to %v at t=%v", m, water, prev, w, at)
				}
				prev = w
			}
		}
	}
}

func TestActivePhaseBoundaries(t *testing.T) {
	r := mustRecipe(t, 300, domain.MethodFourSix)

	tests := []struct {
		at      float64
		wantIdx int
	}{
		{-0.5, -1},
		{0, 0},
		{9.999, 0},
		{10, 1}, // end of phase 0 belongs to phase 1
		{45, 2},
		{189.9, 8},
		{190, 9},
		{209.999, 9},
		{210, -1}, // finished, not in the last phase
		{500, -1},
	}

	for _, tt := range tests {
		idx, err := ActiveIndex(r, tt.at)
		if err != nil {
			t.Fatalf("active index: %v", err)
		}
		if idx != tt.wantIdx {
			t.Fatalf("active index at %v = %d, want %d", tt.at, idx, tt.wantIdx)
		}

		p, ok, err := ActivePhase(r, tt.at)
		if err != nil {
			t.Fatalf("active phase: %v", err)
		}
		if ok != (tt.wantIdx >= 0) {
			t.Fatalf("active phase at %v: ok=%v, want %v", tt.at, ok, tt.wantIdx >= 0)
		}
		if ok && p != r.Phase(tt.wantIdx) {
			t.Fatalf("active phase at %v: got %+v", tt.at, p)
		}
	}
}

func TestEmptyRecipe(t *testing.T) {
	var empty domain.Recipe
	recipes := []*domain.Recipe{nil, &empty, domain.NewRecipe(domain.MethodFourSix, 300, nil)}

	for _, r := range recipes {
		if _, err := ActiveIndex(r, 1); !errors.Is(err, domain.ErrEmptyRecipe) {
			t.Fatalf("ActiveIndex: expected ErrEmptyRecipe, got %v", err)
		}
		if _, _, err := ActivePhase(r, 1); !errors.Is(err, domain.ErrEmptyRecipe) {
			t.Fatalf("ActivePhase: expected ErrEmptyRecipe, got %v", err)
		}
		if _, err := Weight(r, 1); !errors.Is(err, domain.ErrEmptyRecipe) {
			t.Fatalf("Weight: expected ErrEmptyRecipe, got %v", err)
		}
		if _, err := Sample(r, 1); !errors.Is(err, domain.ErrEmptyRecipe) {
			t.Fatalf("Sample: expected ErrEmptyRecipe, got %v", err)
		}
	}
}

func TestDegeneratePhase(t *testing.T) {
	r := domain.NewRecipe(domain.MethodFourSix, 100, []domain.Phase{
		{Start: 0, End: 5, TargetWeight: 50, Kind: domain.Pour, Label: "first"},
		{Start: 5, End: 5, TargetWeight: 80, Kind: domain.Pour, Label: "instant"},
		{Start: 5, End: 10, TargetWeight: 100, Kind: domain.Pour, Label: "last"},
	})

	// A zero-length phase is never active; the weight math must not
	// divide by its duration.
	if got := weightIn(r, 1, 5); got != 80 {
		t.Fatalf("degenerate phase weight = %v, want 80", got)
	}
	if got := mustWeight(t, r, 5); got != 80 {
		t.Fatalf("weight at 5 = %v, want 80 (ramp start of the next pour)", got)
	}
	if got := mustWeight(t, r, 7.5); math.Abs(got-90) > eps {
		t.Fatalf("weight at 7.5 = %v, want 90", got)
	}
}

func TestSample(t *testing.T) {
	r := mustRecipe(t, 300, domain.MethodFourSix)

	samples, err := Sample(r, 1)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(samples) != 221 {
		t.Fatalf("expected 221 samples (0..220), got %d", len(samples))
	}
	if samples[0].Time != 0 || samples[0].Weight != 0 {
		t.Fatalf("first sample = %+v", samples[0])
	}
	if s := samples[len(samples)-1]; s.Time != 220 || s.Weight != 300 {
		t.Fatalf("last sample = %+v", s)
	}

	// Samples agree with the general weight function.
	for _, s := range samples {
		if w := mustWeight(t, r, s.Time); math.Abs(w-s.Weight) > eps {
			t.Fatalf("sample at %v = %v, Weight = %v", s.Time, s.Weight, w)
		}
	}

	annotations := map[float64]string{}
	for _, s := range samples {
		if s.Annotation != "" {
			annotations[s.Time] = s.Annotation
		}
	}
	if annotations[10] != "Bloom Wait" || annotations[190] != "Draw Down" {
		t.Fatalf("unexpected annotations: %v", annotations)
	}
	if len(annotations) != 5 {
		t.Fatalf("expected one annotation per wait, got %d", len(annotations))
	}
}

func TestSampleRestartable(t *testing.T) {
	r := mustRecipe(t, 250, domain.MethodHoffmann1Cup)

	a, err := Sample(r, 0.5)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	b, err := Sample(r, 0.5)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
	a[0].Weight = 999
	if b[0].Weight == 999 {
		t.Fatal("samples share backing storage")
	}
}

func TestSampleRejectsBadResolution(t *testing.T) {
	r := mustRecipe(t, 300, domain.MethodFourSix)
	for _, res := range []float64{0, -1, math.NaN(), math.Inf(1), 1e-12} {
		if _, err := Sample(r, res); !errors.Is(err, domain.ErrInvalidResolution) {
			t.Fatalf("resolution %v: expected ErrInvalidResolution, got %v", res, err)
		}
	}
}

func TestSingleCupScenario(t *testing.T) {
	r := mustRecipe(t, 250, domain.MethodHoffmann1Cup)
	if r.Len() != 10 || r.EndTime() != 180 {
		t.Fatalf("got %d phases ending at %v", r.Len(), r.EndTime())
	}
	if w := mustWeight(t, r, 180); w != 250 {
		t.Fatalf("weight at 180 = %v, want 250", w)
	}
	if got := recipe.DoseGrams(250, domain.MethodHoffmann1Cup); got != 15 {
		t.Fatalf("dose = %d, want 15", got)
	}
}

func TestProgress(t *testing.T) {
	r := mustRecipe(t, 300, domain.MethodFourSix)
	tests := []struct{ at, want float64 }{
		{-3, 0}, {0, 0}, {105, 0.5}, {210, 1}, {400, 1},
	}
	for _, tt := range tests {
		if got := Progress(r, tt.at); math.Abs(got-tt.want) > eps {
			t.Fatalf("progress at %v = %v, want %v", tt.at, got, tt.want)
		}
	}
}
