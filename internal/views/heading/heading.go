// Package heading renders the centered title block that opens each section.
package heading

import (
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// View renders title over subtitle, centered in width, followed by a blank
// spacer line.
func View(th theme.Theme, title, subtitle string, width int) string {
	textW := min(width, 72)
	lines := []string{th.Title.Render(title)}
	if subtitle != "" {
		lines = append(lines, th.Dimmed.Width(textW).Align(lipgloss.Center).Render(subtitle))
	}
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block) + "\n"
}
