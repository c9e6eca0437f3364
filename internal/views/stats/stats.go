// Package stats renders one cell of the animated stats grid.
package stats

import (
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// ValueRow is the row of a cell that holds the animated number.
const ValueRow = 0

// Cell renders value over label, centered in width.
func Cell(th theme.Theme, value, label string, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Left,
		center.Inherit(th.Title).Render(value),
		center.Inherit(th.Dimmed).Render(label),
	)
}
