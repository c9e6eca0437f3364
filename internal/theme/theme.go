// Package theme provides the Lip Gloss palettes and reusable styles for the
// portfolio TUI. It is a leaf package with no internal imports to avoid
// import cycles.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the light/dark appearance.
type Mode int

const (
	Dark Mode = iota
	Light
)

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// ParseMode accepts "dark" or "light", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark", "":
		return Dark, nil
	case "light":
		return Light, nil
	default:
		return Dark, fmt.Errorf("unknown theme mode %q", s)
	}
}

// Palette is the set of colors for one mode.
type Palette struct {
	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Text      lipgloss.Color
	Heading   lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Badge     lipgloss.Color
	BadgeText lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
}

// Palettes follow the page's cyan/blue gradient on slate.
var (
	DarkPalette = Palette{
		Accent:    lipgloss.Color("#22d3ee"),
		AccentAlt: lipgloss.Color("#60a5fa"),
		Text:      lipgloss.Color("#cbd5e1"),
		Heading:   lipgloss.Color("#f1f5f9"),
		Muted:     lipgloss.Color("#94a3b8"),
		Border:    lipgloss.Color("#334155"),
		Badge:     lipgloss.Color("#083344"),
		BadgeText: lipgloss.Color("#67e8f9"),
		Success:   lipgloss.Color("#4ade80"),
		Warning:   lipgloss.Color("#fbbf24"),
		Danger:    lipgloss.Color("#f87171"),
	}

	LightPalette = Palette{
		Accent:    lipgloss.Color("#0891b2"),
		AccentAlt: lipgloss.Color("#2563eb"),
		Text:      lipgloss.Color("#475569"),
		Heading:   lipgloss.Color("#0f172a"),
		Muted:     lipgloss.Color("#64748b"),
		Border:    lipgloss.Color("#cbd5e1"),
		Badge:     lipgloss.Color("#cffafe"),
		BadgeText: lipgloss.Color("#0e7490"),
		Success:   lipgloss.Color("#15803d"),
		Warning:   lipgloss.Color("#b45309"),
		Danger:    lipgloss.Color("#dc2626"),
	}
)

// Theme is the current mode plus the styles derived from its palette.
type Theme struct {
	Mode    Mode
	Palette Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Heading  lipgloss.Style
	Body     lipgloss.Style
	Dimmed   lipgloss.Style
	Accent   lipgloss.Style
	Badge    lipgloss.Style
	Outline  lipgloss.Style
	Card     lipgloss.Style
	Panel    lipgloss.Style
	Success  lipgloss.Style
	Danger   lipgloss.Style
}

// New builds the theme for mode.
func New(mode Mode) Theme {
	p := DarkPalette
	if mode == Light {
		p = LightPalette
	}
	return Theme{
		Mode:     mode,
		Palette:  p,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.AccentAlt),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(p.Heading),
		Body:     lipgloss.NewStyle().Foreground(p.Text),
		Dimmed:   lipgloss.NewStyle().Foreground(p.Muted),
		Accent:   lipgloss.NewStyle().Foreground(p.Accent),
		Badge: lipgloss.NewStyle().
			Foreground(p.BadgeText).
			Background(p.Badge).
			Padding(0, 1),
		Outline: lipgloss.NewStyle().Foreground(p.Muted),
		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(p.Border),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Danger:  lipgloss.NewStyle().Foreground(p.Danger),
	}
}

// Toggle flips between light and dark and rebuilds the styles.
func (t *Theme) Toggle() {
	next := Light
	if t.Mode == Light {
		next = Dark
	}
	*t = New(next)
}

// IsDark reports whether the dark palette is active.
func (t Theme) IsDark() bool {
	return t.Mode == Dark
}

// ToggleIcon names the icon shown on the toggle: the mode it switches to.
func (t Theme) ToggleIcon() string {
	if t.Mode == Light {
		return "Moon"
	}
	return "Sun"
}

// KindColor returns the color used for an event log kind.
func (t Theme) KindColor(kind string) lipgloss.Color {
	switch kind {
	case "ws":
		return t.Palette.AccentAlt
	case "err":
		return t.Palette.Danger
	case "nav":
		return t.Palette.Accent
	case "msg":
		return t.Palette.Success
	case "cfg":
		return t.Palette.Warning
	case "anim":
		return t.Palette.Accent
	default:
		return t.Palette.Muted
	}
}
