package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/pourover/internal/domain"
)

// Palette is the set of colours for one theme.
type Palette struct {
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Past   lipgloss.Color
	Future lipgloss.Color
	Marker lipgloss.Color
	Axis   lipgloss.Color
}

var (
	darkPalette = Palette{
		Text:   lipgloss.Color("#d4d4d8"),
		Muted:  lipgloss.Color("#71717a"),
		Accent: lipgloss.Color("#fde68a"),
		Past:   lipgloss.Color("#bae6fd"),
		Future: lipgloss.Color("#52525b"),
		Marker: lipgloss.Color("#f87171"),
		Axis:   lipgloss.Color("#a1a1aa"),
	}

	lightPalette = Palette{
		Text:   lipgloss.Color("#27272a"),
		Muted:  lipgloss.Color("#71717a"),
		Accent: lipgloss.Color("#b45309"),
		Past:   lipgloss.Color("#0369a1"),
		Future: lipgloss.Color("#a1a1aa"),
		Marker: lipgloss.Color("#dc2626"),
		Axis:   lipgloss.Color("#52525b"),
	}
)

// PaletteFor returns the colours of a theme.
func PaletteFor(t domain.Theme) Palette {
	if t == domain.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// styles are the lipgloss styles derived from a palette.
type styles struct {
	title  lipgloss.Style
	text   lipgloss.Style
	muted  lipgloss.Style
	clock  lipgloss.Style
	phase  lipgloss.Style
	past   lipgloss.Style
	future lipgloss.Style
	marker lipgloss.Style
	axis   lipgloss.Style
}

func newStyles(p Palette) styles {
	return styles{
		title:  lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		text:   lipgloss.NewStyle().Foreground(p.Text),
		muted:  lipgloss.NewStyle().Foreground(p.Muted),
		clock:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Padding(0, 1),
		phase:  lipgloss.NewStyle().Foreground(p.Accent),
		past:   lipgloss.NewStyle().Foreground(p.Past),
		future: lipgloss.NewStyle().Foreground(p.Future),
		marker: lipgloss.NewStyle().Foreground(p.Marker).Bold(true),
		axis:   lipgloss.NewStyle().Foreground(p.Axis),
	}
}

// BannerStyle is the muted slate used for the startup banner.
var BannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
