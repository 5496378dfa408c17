package display

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/engine"
	"github.com/hammamikhairi/pourover/internal/logger"
	"github.com/hammamikhairi/pourover/internal/recipe"
)

// Compile-time interface check.
var _ domain.Notifier = (*Console)(nil)

// Console prints recipes, curves and brew cues as coloured text. Safe for
// concurrent use.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	log *logger.Logger

	title  *color.Color
	pour   *color.Color
	wait   *color.Color
	muted  *color.Color
	urgent *color.Color
}

// NewConsole creates a console printer. If out is nil, os.Stdout is used.
func NewConsole(out io.Writer, log *logger.Logger, noColor bool) *Console {
	if out == nil {
		out = os.Stdout
	}
	c := &Console{
		out:    out,
		log:    log,
		title:  color.New(color.FgHiWhite, color.Bold),
		pour:   color.New(color.FgCyan),
		wait:   color.New(color.FgYellow),
		muted:  color.New(color.FgHiBlack),
		urgent: color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, col := range []*color.Color{c.title, c.pour, c.wait, c.muted, c.urgent} {
			col.DisableColor()
		}
	}
	return c
}

func (c *Console) kindColor(k domain.PhaseKind) *color.Color {
	if k == domain.Pour {
		return c.pour
	}
	return c.wait
}

// PrintRecipe prints the phase table of r.
func (c *Console) PrintRecipe(r *domain.Recipe, p *recipe.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dose, _ := recipe.Dose(r.TotalWater(), r.Method())
	c.title.Fprintf(c.out, "%s\n", p.Title)
	c.muted.Fprintf(c.out, "%.0fg water · %.0fg coffee · 1:%g · %s\n\n", r.TotalWater(), dose, p.Ratio, fmtClock(r.EndTime()))

	fmt.Fprintf(c.out, "  %-3s %-13s %-5s %11s %8s\n", "#", "phase", "kind", "time", "target")
	for i, ph := range r.Phases() {
		span := fmt.Sprintf("%s-%s", fmtClock(ph.Start), fmtClock(ph.End))
		c.kindColor(ph.Kind).Fprintf(c.out, "  %-3d %-13s %-5s %11s %7.0fg\n", i+1, ph.Label, ph.Kind, span, ph.TargetWeight)
	}
	if p.Footnote != "" {
		c.muted.Fprintf(c.out, "\n%s\n", p.Footnote)
	}
}

// PrintCurve prints sampled points, one per line, marking where each wait
// begins.
func (c *Console) PrintCurve(samples []domain.Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range samples {
		fmt.Fprintf(c.out, "%8.2f %8.2f", s.Time, s.Weight)
		if s.Annotation != "" {
			c.wait.Fprintf(c.out, "  %s", s.Annotation)
		}
		fmt.Fprintln(c.out)
	}
}

// PrintMethods prints the method catalog.
func (c *Console) PrintMethods(methods []recipe.MethodSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range methods {
		c.title.Fprintf(c.out, "%-15s", m.Method)
		fmt.Fprintf(c.out, " %s (1:%g, %s)\n", m.Title, m.Ratio, fmtClock(m.Seconds))
		c.muted.Fprintf(c.out, "%-15s %s\n", "", m.Tagline)
	}
}

// PrintProgress prints a one-line status of a running brew.
func (c *Console) PrintProgress(s engine.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.muted.Fprintf(c.out, "  %s  %6.1fg  %s\n", fmtClock(s.Elapsed), s.Weight, phaseLine(s))
}

// Notify prints a brew cue.
func (c *Console) Notify(ctx context.Context, ev domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Debug("console cue: %s", ev.Kind)
	at := fmtClock(ev.At)

	switch ev.Kind {
	case domain.EventStarted, domain.EventPhaseChanged:
		c.kindColor(ev.Phase.Kind).Fprintf(c.out, "[%s] %s: %s to %.0fg\n", at, ev.Phase.Label, verb(ev.Phase.Kind), ev.Phase.TargetWeight)
	case domain.EventCountdown:
		c.muted.Fprintf(c.out, "[%s] %s in %d...\n", at, ev.Phase.Label, ev.Count)
	case domain.EventFinished:
		c.urgent.Fprintf(c.out, "[%s] Done. Enjoy!\n", at)
	}
	return nil
}

func verb(k domain.PhaseKind) string {
	if k == domain.Pour {
		return "pour"
	}
	return "hold"
}
