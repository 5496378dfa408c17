// Package display renders brews to the terminal: an interactive Bubble
// Tea screen for guided brewing and a colour console printer for the
// non-interactive commands.
package display

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/engine"
	"github.com/hammamikhairi/pourover/internal/logger"
	"github.com/hammamikhairi/pourover/internal/recipe"
)

const (
	chartHeight = 12
	chartMargin = 10
)

// UIOption configures the UI.
type UIOption func(*UI)

// WithTickInterval sets how often the screen advances the brew clock.
func WithTickInterval(d time.Duration) UIOption {
	return func(u *UI) {
		u.interval = d
	}
}

// WithTheme sets the starting theme.
func WithTheme(t domain.Theme) UIOption {
	return func(u *UI) {
		u.theme = t
	}
}

// UI is the interactive brew screen. It owns the terminal while Run is
// active and drives the engine clock from Bubble Tea ticks.
type UI struct {
	eng      *engine.Engine
	store    domain.SettingsStore
	log      *logger.Logger
	interval time.Duration
	theme    domain.Theme
}

// NewUI creates the brew screen. Call Run to start it.
func NewUI(eng *engine.Engine, store domain.SettingsStore, log *logger.Logger, opts ...UIOption) *UI {
	u := &UI{
		eng:      eng,
		store:    store,
		log:      log,
		interval: 100 * time.Millisecond,
		theme:    domain.ThemeDark,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run starts the Bubble Tea event loop. Blocks until the user quits or
// ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	m := newModel(ctx, u.eng, u.store, u.log, u.interval, u.theme)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type tickMsg time.Time

type model struct {
	ctx      context.Context
	eng      *engine.Engine
	store    domain.SettingsStore
	log      *logger.Logger
	keys     keyMap
	help     help.Model
	interval time.Duration
	theme    domain.Theme

	last   time.Time
	snap   engine.Snapshot
	width  int
	status string
}

func newModel(ctx context.Context, eng *engine.Engine, store domain.SettingsStore, log *logger.Logger, interval time.Duration, theme domain.Theme) model {
	return model{
		ctx:      ctx,
		eng:      eng,
		store:    store,
		log:      log,
		keys:     defaultKeys(),
		help:     help.New(),
		interval: interval,
		theme:    theme,
		last:     time.Now(),
		snap:     eng.Snapshot(),
		width:    TermWidth(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), tea.SetWindowTitle("pourover"))
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		m.snap, _ = m.eng.Tick(m.ctx, now.Sub(m.last))
		m.last = now
		return m, tickCmd(m.interval)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	settings := m.eng.Settings()
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.eng.Toggle()

	case key.Matches(msg, m.keys.Reset):
		m.eng.Reset()

	case key.Matches(msg, m.keys.Method):
		m.apply(m.eng.SetMethod(settings.Method.Next()))

	case key.Matches(msg, m.keys.More):
		if w := domain.ClampWater(settings.TotalWater + domain.WaterStep); w != settings.TotalWater {
			m.apply(m.eng.SetWater(w))
		}

	case key.Matches(msg, m.keys.Less):
		if w := domain.ClampWater(settings.TotalWater - domain.WaterStep); w != settings.TotalWater {
			m.apply(m.eng.SetWater(w))
		}

	case key.Matches(msg, m.keys.Faster):
		if s := domain.ClampSpeed(settings.Speed + 1); s != settings.Speed {
			m.apply(m.eng.SetSpeed(s))
		}

	case key.Matches(msg, m.keys.Slower):
		if s := domain.ClampSpeed(settings.Speed - 1); s != settings.Speed {
			m.apply(m.eng.SetSpeed(s))
		}

	case key.Matches(msg, m.keys.Theme):
		m.theme = m.theme.Toggle()
		m.apply(nil)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.snap = m.eng.Snapshot()
	return m, nil
}

// apply records the outcome of a settings change and persists the new
// settings when it succeeded.
func (m *model) apply(err error) {
	if err != nil {
		m.log.Error("changing settings: %v", err)
		m.status = err.Error()
		return
	}

	settings := m.eng.Settings()
	settings.Theme = m.theme
	if err := m.store.Save(m.ctx, settings); err != nil {
		m.log.Error("saving settings: %v", err)
		m.status = "settings not saved"
	}
}

func (m model) View() string {
	st := newStyles(PaletteFor(m.theme))
	snap := m.snap
	width := max(m.width, 40)

	profile, err := recipe.ProfileFor(snap.Method)
	if err != nil {
		return st.marker.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(st.title.Render(profile.Title))
	b.WriteByte('\n')
	b.WriteString(st.muted.Render(fmt.Sprintf("Dose %.0fg · Water %.0fg · 1:%g · %gx",
		snap.Dose, snap.TotalWater, profile.Ratio, snap.Speed)))
	b.WriteString("\n\n")

	clock := st.clock.Render(fmtClock(snap.Elapsed))
	b.WriteString(clock + st.muted.Render("/ "+fmtClock(snap.EndTime)))
	b.WriteString("  " + st.phase.Render(phaseLine(snap)))
	b.WriteByte('\n')
	b.WriteString(st.text.Render(detailLine(snap)))
	b.WriteString("\n\n")

	if r := m.eng.Recipe(); r.Len() > 0 {
		chart, err := NewChart(r, snap.Elapsed, width-chartMargin, chartHeight)
		if err != nil {
			b.WriteString(st.marker.Render(err.Error()))
		} else {
			b.WriteString(chart.render(st))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Width(width).Render(st.muted.Render(profile.Footnote)))
	b.WriteByte('\n')
	if m.status != "" {
		b.WriteString(st.marker.Render(m.status))
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// phaseLine is the headline under the clock.
func phaseLine(s engine.Snapshot) string {
	switch {
	case s.Status == domain.BrewFinished:
		return "Enjoy!"
	case s.Status == domain.BrewIdle || !s.Active():
		return "Get Ready"
	}
	line := s.Phase.Label
	if s.Status == domain.BrewPaused {
		line += " (paused)"
	}
	return line
}

// detailLine shows what to do right now and what comes next.
func detailLine(s engine.Snapshot) string {
	switch {
	case s.Status == domain.BrewFinished:
		return fmt.Sprintf("%.0fg poured. Press r to brew again.", s.Weight)
	case s.Status == domain.BrewIdle && s.Active():
		return fmt.Sprintf("Press space to start. First: %s to %.0fg", s.Phase.Label, s.Phase.TargetWeight)
	case !s.Active():
		return "Press space to start."
	}

	var parts []string
	if s.Phase.Kind == domain.Pour {
		parts = append(parts, fmt.Sprintf("Pour to %.0fg", s.Phase.TargetWeight))
	} else {
		parts = append(parts, fmt.Sprintf("Hold at %.0fg", s.Phase.TargetWeight))
	}
	parts = append(parts, fmt.Sprintf("scale %.0fg", s.Weight), fmt.Sprintf("%.0fs left", s.PhaseLeft))
	if s.HasNext {
		parts = append(parts, "next: "+s.Next.Label)
	}
	return strings.Join(parts, " · ")
}
