package page

import (
	"math"
	"strings"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/motion"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/adityajain1310/folio/internal/views/about"
	"github.com/adityajain1310/folio/internal/views/cards"
	"github.com/adityajain1310/folio/internal/views/contact"
	"github.com/adityajain1310/folio/internal/views/heading"
	"github.com/adityajain1310/folio/internal/views/hero"
	"github.com/adityajain1310/folio/internal/views/stats"
	"github.com/adityajain1310/folio/internal/views/testimonials"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func (p *Page) heading(d *doc, th theme.Theme, section, title, subtitle string) {
	d.block(p.revealFor(HeadingReveal(section)), heading.View(th, title, subtitle, d.inner))
}

func (p *Page) renderHero(d *doc, th theme.Theme) {
	p.mark(d, SectionHero)
	m := hero.Model{Personal: p.data.Personal, Typed: p.data.Personal.Greeting}
	if tw := p.typewriter; tw != nil {
		m.Typed = tw.Text()
		m.Typing = !tw.Done()
	}
	d.add(m.View(th, d.width))
	d.blank(2)
}

func (p *Page) renderStats(d *doc, th theme.Theme) {
	if len(p.data.Stats) == 0 {
		return
	}
	p.mark(d, SectionStats)
	n := 2
	if d.width >= 100 {
		n = 4
	}
	colW := d.columns(n)
	cells := make([]cell, len(p.data.Stats))
	for i, st := range p.data.Stats {
		value := p.staticValue(st)
		var el *Block
		if i < len(p.counters) {
			value = p.counters[i].String()
			el = p.counterEls[i]
		}
		cells[i] = cell{
			body: stats.Cell(th, value, st.Label, colW),
			rb:   p.revealFor(ItemReveal(SectionStats, i)),
			after: func(r motion.Rect) {
				if el != nil {
					el.place(motion.Rect{X: r.X, Y: r.Y + stats.ValueRow, W: r.W, H: 1})
				}
			},
		}
	}
	d.grid(cells, n)
	d.blank(1)
}

// staticValue formats a stat at its final value, for pages that are not
// mounted.
func (p *Page) staticValue(st content.Stat) string {
	pr := p.opts.Printer
	if pr == nil {
		pr = message.NewPrinter(language.English)
	}
	return pr.Sprintf("%d", int64(math.Floor(st.Value))) + st.Suffix
}

func (p *Page) cardColumns(d *doc) int {
	if d.width >= 100 {
		return 2
	}
	return 1
}

func (p *Page) renderProjects(d *doc, th theme.Theme) {
	if len(p.data.Projects) == 0 {
		return
	}
	p.mark(d, SectionProjects)
	p.heading(d, th, SectionProjects, "Featured Projects", "Real solutions delivering measurable business impact")
	n := p.cardColumns(d)
	colW := d.columns(n)
	cells := make([]cell, len(p.data.Projects))
	for i, pr := range p.data.Projects {
		cells[i] = cell{body: cards.Project(th, pr, colW), rb: p.revealFor(ItemReveal(SectionProjects, i))}
	}
	d.grid(cells, n)
	d.blank(1)
}

func (p *Page) renderServices(d *doc, th theme.Theme) {
	if len(p.data.Services) == 0 {
		return
	}
	p.mark(d, SectionServices)
	p.heading(d, th, SectionServices, "Services", "How I can help your business")
	n := p.cardColumns(d)
	colW := d.columns(n)
	cells := make([]cell, len(p.data.Services))
	for i, s := range p.data.Services {
		cells[i] = cell{body: cards.Service(th, s, colW), rb: p.revealFor(ItemReveal(SectionServices, i))}
	}
	d.grid(cells, n)
	d.blank(1)
}

func (p *Page) renderAbout(d *doc, th theme.Theme) {
	p.mark(d, SectionAbout)
	p.heading(d, th, SectionAbout, "About Me", "")
	if p.data.Personal.About != "" {
		textW := min(d.inner, 100)
		text := p.about.Render(th, p.data.Personal.About, textW)
		text = lipgloss.PlaceHorizontal(d.inner, lipgloss.Center, text)
		d.block(p.revealFor(RevealAboutText), text)
		d.blank(1)
	}
	if len(p.data.Experience) > 0 {
		entries := make([]string, len(p.data.Experience))
		for i, e := range p.data.Experience {
			entries[i] = about.Experience(th, e, d.inner)
		}
		d.block(p.revealFor(RevealExperience), strings.Join(entries, "\n"))
		d.blank(1)
	}
	d.blank(1)
}

func (p *Page) renderTestimonials(d *doc, th theme.Theme) {
	if len(p.data.Testimonials) == 0 {
		return
	}
	p.mark(d, SectionTestimonials)
	p.heading(d, th, SectionTestimonials, "Client Testimonials", "What people say about working with me")
	n := 1
	if d.width >= 120 {
		n = 3
	}
	colW := d.columns(n)
	cells := make([]cell, len(p.data.Testimonials))
	for i, t := range p.data.Testimonials {
		cells[i] = cell{body: testimonials.Card(th, t, colW), rb: p.revealFor(ItemReveal(SectionTestimonials, i))}
	}
	d.grid(cells, n)
	d.blank(1)
}

func (p *Page) renderContact(d *doc, th theme.Theme) {
	p.mark(d, SectionContact)
	p.heading(d, th, SectionContact, "Let's Work Together", "Ready to automate your business? Get in touch. Press m to send a message.")
	if len(p.data.Contact) > 0 {
		n := 1
		switch {
		case d.width >= 100:
			n = 4
		case d.width >= 60:
			n = 2
		}
		colW := d.columns(n)
		var rows []string
		for start := 0; start < len(p.data.Contact); start += n {
			var parts []string
			for i, c := range p.data.Contact[start:min(start+n, len(p.data.Contact))] {
				if i > 0 {
					parts = append(parts, strings.Repeat(" ", colGap))
				}
				parts = append(parts, contact.Card(th, c, colW))
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		}
		d.block(p.revealFor(RevealContact), lipgloss.JoinVertical(lipgloss.Left, rows...))
		d.blank(1)
	}
	if link := p.data.Personal.QuickChat; link != "" {
		d.block(p.revealFor(RevealQuickChat), contact.QuickChat(th, link, d.inner))
		d.blank(1)
	}
	d.blank(1)
}

func (p *Page) renderFooter(d *doc, th theme.Theme) {
	p.mark(d, SectionFooter)
	footer := p.data.Footer
	if footer == "" {
		footer = p.data.Personal.Name
	}
	rule := th.Dimmed.Render(strings.Repeat("─", d.inner))
	d.indent(rule)
	d.add(lipgloss.PlaceHorizontal(d.width, lipgloss.Center, th.Dimmed.Render(footer)))
}
