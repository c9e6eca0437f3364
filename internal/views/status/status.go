// Package status renders the header bar above the document.
package status

import (
	"fmt"
	"strings"

	"github.com/adityajain1310/folio/internal/icon"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Source says where the page content comes from.
type Source int

const (
	// Local content is embedded or read from disk.
	Local Source = iota
	// Connecting is waiting for a remote server.
	Connecting
	// Live content streams from a server.
	Live
)

// Model holds the header bar state.
type Model struct {
	Name    string
	Source  Source
	Percent float64
	Width   int
}

// New creates a header bar for name.
func New(name string) Model {
	return Model{Name: name}
}

func (m Model) source(th theme.Theme) string {
	switch m.Source {
	case Live:
		return th.Success.Render("● Live")
	case Connecting:
		return th.Danger.Render("○ Connecting...")
	default:
		return th.Dimmed.Render("◌ Local")
	}
}

// View renders the bar.
func (m Model) View(th theme.Theme) string {
	width := max(m.Width, 40)

	sep := th.Dimmed.Render(" | ")
	left := th.Title.Render(icon.Prefix("Code2") + m.Name)
	right := m.source(th) + sep +
		th.Accent.Render(icon.Glyph(th.ToggleIcon())+" [t]") + sep +
		th.Dimmed.Render(fmt.Sprintf("%3.0f%%", m.Percent*100))

	// Border and padding take four cells.
	gap := max(width-4-lipgloss.Width(left)-lipgloss.Width(right), 1)
	content := left + strings.Repeat(" ", gap) + right

	return lipgloss.NewStyle().
		Width(width-2).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(th.Palette.Border).
		Render(content)
}
