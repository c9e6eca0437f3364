// Package contact renders the contact grid and the compose form.
package contact

import (
	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/icon"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/adityajain1310/folio/internal/views/cards"
	"github.com/charmbracelet/lipgloss"
)

// Card renders one contact channel.
func Card(th theme.Theme, c content.Contact, width int) string {
	w := cards.Inner(width)
	center := lipgloss.NewStyle().Width(w).Align(lipgloss.Center)
	lines := []string{
		center.Inherit(th.Accent).Render(icon.Glyph(c.Icon)),
		center.Inherit(th.Heading).Render(c.Type),
		center.Inherit(th.Body).Render(c.Value),
	}
	if c.Link != "" && c.Link != c.Value {
		lines = append(lines, center.Inherit(th.Dimmed).Render(c.Link))
	}
	return cards.Frame(th, lipgloss.JoinVertical(lipgloss.Left, lines...), width)
}

// QuickChat renders the quick chat call to action centered in width.
func QuickChat(th theme.Theme, link string, width int) string {
	button := th.Badge.Render(icon.Prefix("MessageCircle") + "Quick Chat")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(width, lipgloss.Center, button),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, th.Dimmed.Render(link)),
	)
}
