// Package about renders the about text and the experience timeline.
package about

import (
	"strings"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/icon"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/adityajain1310/folio/internal/views/cards"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Renderer turns the about markdown into terminal text. Output is cached per
// source, width and mode because the page re-renders every animation frame.
type Renderer struct {
	plain bool

	key    cacheKey
	cached string
	ok     bool
}

type cacheKey struct {
	md    string
	width int
	mode  theme.Mode
}

// NewRenderer renders markdown through glamour.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// NewPlainRenderer skips markdown styling and only wraps the text.
func NewPlainRenderer() *Renderer {
	return &Renderer{plain: true}
}

// Render returns md rendered for width. Glamour failures fall back to plain
// wrapped text.
func (r *Renderer) Render(th theme.Theme, md string, width int) string {
	k := cacheKey{md: md, width: width, mode: th.Mode}
	if r.ok && r.key == k {
		return r.cached
	}
	out := ""
	if !r.plain {
		out = r.glamour(th, md, width)
	}
	if out == "" {
		out = th.Body.Width(width).Render(stripEmphasis(md))
	}
	r.key, r.cached, r.ok = k, out, true
	return out
}

func (r *Renderer) glamour(th theme.Theme, md string, width int) string {
	style := "light"
	if th.IsDark() {
		style = "dark"
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return ""
	}
	out, err := tr.Render(md)
	if err != nil {
		return ""
	}
	return strings.Trim(out, "\n")
}

func stripEmphasis(md string) string {
	return strings.NewReplacer("**", "", "__", "", "*", "", "_", "").Replace(md)
}

// Experience renders one timeline entry as a card.
func Experience(th theme.Theme, e content.Experience, width int) string {
	w := cards.Inner(width)
	head := th.Heading.Render(icon.Prefix("Building2") + e.Company)
	if e.Period != "" {
		period := th.Badge.Render(e.Period)
		gap := w - lipgloss.Width(head) - lipgloss.Width(period)
		if gap >= 1 {
			head += strings.Repeat(" ", gap) + period
		} else {
			head = lipgloss.JoinVertical(lipgloss.Left, head, period)
		}
	}
	lines := []string{head, th.Subtitle.Render(e.Role)}
	if e.Description != "" {
		lines = append(lines, th.Body.Width(w).Render(e.Description))
	}
	if len(e.Achievements) > 0 {
		lines = append(lines, "")
		check := th.Accent.Render(icon.Glyph("CheckCircle2"))
		for _, a := range e.Achievements {
			item := th.Body.Width(max(w-2, 1)).Render(a)
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, check+" ", item))
		}
	}
	return cards.Frame(th, lipgloss.JoinVertical(lipgloss.Left, lines...), width)
}
