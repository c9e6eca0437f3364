// Package hero renders the banner at the top of the page.
package hero

import (
	"strings"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/icon"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

const cursor = "▌"

// Model is the state the banner needs besides the portfolio data.
type Model struct {
	Personal content.Personal
	// Typed is the greeting prefix revealed so far.
	Typed string
	// Typing shows a cursor after Typed.
	Typing bool
}

// View renders the banner centered in width.
func (m Model) View(th theme.Theme, width int) string {
	textW := max(min(width-4, 80), 10)
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}
	wrap := func(st lipgloss.Style, s string) string {
		return center(st.Width(textW).Align(lipgloss.Center).Render(s))
	}

	greeting := m.Typed
	if m.Typing {
		greeting += cursor
	}
	// Keep the line occupied while nothing is typed so the layout holds still.
	if greeting == "" {
		greeting = " "
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(th.Title.Render(greeting)) + "\n")
	if m.Personal.Title != "" {
		b.WriteString(wrap(th.Subtitle, m.Personal.Title) + "\n")
	}
	b.WriteString("\n")
	if m.Personal.Headline != "" {
		b.WriteString(wrap(th.Heading, m.Personal.Headline) + "\n\n")
	}
	if m.Personal.Tagline != "" {
		b.WriteString(wrap(th.Body, m.Personal.Tagline) + "\n\n")
	}
	for _, row := range Badges(th, m.Personal.TechStack, textW) {
		b.WriteString(center(row) + "\n")
	}
	b.WriteString("\n")

	work := th.Badge.Render(icon.Prefix("Briefcase") + "View My Work [p]")
	hire := th.Outline.Render("[ " + icon.Prefix("MessageSquare") + "Hire Me [c] ]")
	b.WriteString(center(work+"   "+hire) + "\n\n")

	if m.Personal.Availability != "" {
		b.WriteString(center(th.Success.Render(icon.Prefix("CheckCircle2")+m.Personal.Availability)) + "\n\n")
	}
	b.WriteString(center(th.Accent.Render(icon.Glyph("ChevronDown"))))
	return b.String()
}

// Badges lays labels out as badge rows no wider than width.
func Badges(th theme.Theme, labels []string, width int) []string {
	var rows []string
	var row []string
	rowW := 0
	for _, l := range labels {
		badge := th.Badge.Render(l)
		w := lipgloss.Width(badge)
		if len(row) > 0 && rowW+1+w > width {
			rows = append(rows, strings.Join(row, " "))
			row, rowW = nil, 0
		}
		if len(row) > 0 {
			rowW++
		}
		row = append(row, badge)
		rowW += w
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return rows
}
