// Package page lays the portfolio out as one scrollable document and owns the
// motion primitives that animate it.
package page

import (
	"fmt"
	"strings"
	"time"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/motion"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/adityajain1310/folio/internal/views/about"
	"golang.org/x/text/message"
)

// Section names accepted by Page.Section.
const (
	SectionHero         = "hero"
	SectionStats        = "stats"
	SectionProjects     = "projects"
	SectionServices     = "services"
	SectionAbout        = "about"
	SectionTestimonials = "testimonials"
	SectionContact      = "contact"
	SectionFooter       = "footer"
)

// Reveal ids for blocks that are not part of a grid.
const (
	RevealAboutText  = "about/text"
	RevealExperience = "experience"
	RevealContact    = "contact/grid"
	RevealQuickChat  = "contact/quickchat"
)

// HeadingReveal returns the reveal id of a section heading.
func HeadingReveal(section string) string {
	return "heading/" + section
}

// ItemReveal returns the reveal id of the i-th card of a grid section.
func ItemReveal(section string, i int) string {
	return fmt.Sprintf("%s/%d", section, i)
}

// Options tune the primitives the page creates on Mount.
type Options struct {
	TypewriterDelay  time.Duration
	CounterDuration  time.Duration
	CounterThreshold float64
	RevealThreshold  float64
	RevealStagger    time.Duration
	// EntryDistance is how many rows revealed blocks slide up from. Zero
	// disables the entry transition.
	EntryDistance float64
	FrameRate     int
	Printer       *message.Printer
	// About renders the about text; defaults to a glamour renderer.
	About *about.Renderer
}

// DefaultOptions mirrors the motion package defaults.
func DefaultOptions() Options {
	return Options{
		TypewriterDelay:  motion.DefaultTypewriterDelay,
		CounterDuration:  motion.DefaultCounterDuration,
		CounterThreshold: motion.DefaultCounterThreshold,
		RevealThreshold:  motion.DefaultRevealThreshold,
		RevealStagger:    100 * time.Millisecond,
		EntryDistance:    2,
		FrameRate:        60,
	}
}

// Block is a laid out region of the document. It satisfies motion.Element.
type Block struct {
	rect   motion.Rect
	placed bool
}

// Bounds returns the block's last laid out position.
func (b *Block) Bounds() (motion.Rect, bool) {
	return b.rect, b.placed
}

func (b *Block) place(r motion.Rect) {
	b.rect, b.placed = r, true
}

type revealBlock struct {
	id     string
	block  *Block
	reveal *motion.Reveal
}

// Page is the portfolio document.
type Page struct {
	data  content.Portfolio
	opts  Options
	about *about.Renderer

	mounted    bool
	typewriter *motion.Typewriter
	counters   []*motion.Counter
	counterEls []*Block
	reveals    []*revealBlock
	byID       map[string]*revealBlock

	sections map[string]int
	height   int
	width    int
}

// New creates an unmounted page for data.
func New(data content.Portfolio, opts Options) *Page {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	r := opts.About
	if r == nil {
		r = about.NewRenderer()
	}
	return &Page{
		data:     data,
		opts:     opts,
		about:    r,
		byID:     make(map[string]*revealBlock),
		sections: make(map[string]int),
	}
}

// Content returns the data the page renders.
func (p *Page) Content() content.Portfolio {
	return p.data
}

// Mount creates every primitive, binds it to its block and starts the
// typewriter. Mounting twice is a no-op.
func (p *Page) Mount(s motion.Scheduler, sensor motion.Sensor) {
	if p.mounted {
		return
	}
	p.mounted = true

	p.typewriter = motion.NewTypewriter(s, p.data.Personal.Greeting, p.opts.TypewriterDelay)

	for _, st := range p.data.Stats {
		c := motion.NewCounter(s, sensor, motion.CounterOptions{
			End:       st.Value,
			Duration:  p.opts.CounterDuration,
			Suffix:    st.Suffix,
			Threshold: p.opts.CounterThreshold,
			Printer:   p.opts.Printer,
		})
		el := &Block{}
		c.Bind(el)
		p.counters = append(p.counters, c)
		p.counterEls = append(p.counterEls, el)
	}

	stagger := p.opts.RevealStagger
	add := func(id string, delay time.Duration) {
		opts := motion.RevealOptions{Delay: delay, Threshold: p.opts.RevealThreshold}
		if p.opts.EntryDistance > 0 {
			opts.Entry = motion.NewTransition(p.opts.FrameRate, p.opts.EntryDistance)
		}
		rb := &revealBlock{id: id, block: &Block{}, reveal: motion.NewReveal(s, sensor, opts)}
		rb.reveal.Bind(rb.block)
		p.reveals = append(p.reveals, rb)
		p.byID[id] = rb
	}

	for i := range p.data.Stats {
		add(ItemReveal(SectionStats, i), time.Duration(i)*stagger)
	}
	add(HeadingReveal(SectionProjects), 0)
	for i := range p.data.Projects {
		add(ItemReveal(SectionProjects, i), time.Duration(i)*stagger)
	}
	add(HeadingReveal(SectionServices), 0)
	for i := range p.data.Services {
		add(ItemReveal(SectionServices, i), time.Duration(i)*stagger)
	}
	add(HeadingReveal(SectionAbout), 0)
	add(RevealAboutText, stagger)
	if len(p.data.Experience) > 0 {
		add(RevealExperience, 2*stagger)
	}
	add(HeadingReveal(SectionTestimonials), 0)
	for i := range p.data.Testimonials {
		add(ItemReveal(SectionTestimonials, i), time.Duration(i)*stagger)
	}
	add(HeadingReveal(SectionContact), 0)
	if len(p.data.Contact) > 0 {
		add(RevealContact, 2*stagger)
	}
	if p.data.Personal.QuickChat != "" {
		add(RevealQuickChat, 4*stagger)
	}

	p.typewriter.Start()
}

// Unmount tears down every primitive. No primitive mutates state afterwards.
func (p *Page) Unmount() {
	if !p.mounted {
		return
	}
	p.mounted = false
	p.typewriter.Stop()
	for _, c := range p.counters {
		c.Unmount()
	}
	for _, rb := range p.reveals {
		rb.reveal.Unmount()
	}
}

// Mounted reports whether the primitives are live.
func (p *Page) Mounted() bool {
	return p.mounted
}

// Typewriter returns the hero greeting typewriter, or nil before Mount.
func (p *Page) Typewriter() *motion.Typewriter {
	return p.typewriter
}

// Counters returns one counter per stat.
func (p *Page) Counters() []*motion.Counter {
	return p.counters
}

// Reveal returns the reveal registered under id.
func (p *Page) Reveal(id string) (*motion.Reveal, bool) {
	rb, ok := p.byID[id]
	if !ok {
		return nil, false
	}
	return rb.reveal, true
}

// RevealIDs lists every reveal in document order.
func (p *Page) RevealIDs() []string {
	ids := make([]string, len(p.reveals))
	for i, rb := range p.reveals {
		ids[i] = rb.id
	}
	return ids
}

// Height is the line count of the last render.
func (p *Page) Height() int {
	return p.height
}

// Section returns the first line of a section in the last render.
func (p *Page) Section(id string) (int, bool) {
	y, ok := p.sections[id]
	return y, ok
}

// Render lays the document out for width and places every block.
func (p *Page) Render(th theme.Theme, width int) string {
	width = max(width, 20)
	d := newDoc(width)
	p.width = width
	p.sections = make(map[string]int)

	p.renderHero(d, th)
	p.renderStats(d, th)
	p.renderProjects(d, th)
	p.renderServices(d, th)
	p.renderAbout(d, th)
	p.renderTestimonials(d, th)
	p.renderContact(d, th)
	p.renderFooter(d, th)

	p.height = len(d.lines)
	return strings.Join(d.lines, "\n")
}

func (p *Page) mark(d *doc, section string) {
	p.sections[section] = d.y()
}

func (p *Page) revealFor(id string) *revealBlock {
	return p.byID[id]
}
