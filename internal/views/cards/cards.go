// Package cards renders the bordered project and service cards.
package cards

import (
	"strings"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/icon"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/adityajain1310/folio/internal/views/hero"
	"github.com/charmbracelet/lipgloss"
)

// Frame wraps body in the card border so the result is exactly width cells
// wide.
func Frame(th theme.Theme, body string, width int) string {
	return th.Card.Width(max(width-2, 1)).Render(body)
}

// Inner is the text width available inside a card of width cells.
func Inner(width int) int {
	return max(width-4, 1)
}

func Project(th theme.Theme, p content.Project, width int) string {
	w := Inner(width)
	lines := []string{
		th.Heading.Render(icon.Prefix(p.Icon) + p.Title),
	}
	if p.Category != "" {
		lines = append(lines, th.Badge.Render(p.Category))
	}
	lines = append(lines, "", th.Body.Width(w).Render(p.Description), "")
	if len(p.Tech) > 0 {
		lines = append(lines, th.Dimmed.Width(w).Render(strings.Join(p.Tech, " · ")))
	}
	if p.Impact != "" {
		lines = append(lines, th.Accent.Width(w).Render(icon.Prefix("TrendingUp")+p.Impact))
	}
	return Frame(th, lipgloss.JoinVertical(lipgloss.Left, lines...), width)
}

func Service(th theme.Theme, s content.Service, width int) string {
	w := Inner(width)
	lines := []string{
		th.Accent.Render(icon.Glyph(s.Icon)),
		th.Heading.Render(s.Title),
		"",
		th.Body.Width(w).Render(s.Description),
		"",
	}
	lines = append(lines, hero.Badges(th, s.Features, w)...)
	return Frame(th, lipgloss.JoinVertical(lipgloss.Left, lines...), width)
}
