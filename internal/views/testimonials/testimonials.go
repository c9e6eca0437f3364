// Package testimonials renders client quote cards.
package testimonials

import (
	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/adityajain1310/folio/internal/views/cards"
	"github.com/charmbracelet/lipgloss"
)

func Card(th theme.Theme, t content.Testimonial, width int) string {
	w := cards.Inner(width)
	body := lipgloss.JoinVertical(lipgloss.Left,
		th.Heading.Render(t.Name),
		th.Accent.Render(t.Role),
		"",
		th.Body.Italic(true).Width(w).Render("“"+t.Content+"”"),
	)
	return cards.Frame(th, body, width)
}
