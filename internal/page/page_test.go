package page

import (
	"strings"
	"testing"
	"time"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/motion"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/adityajain1310/folio/internal/views/about"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func testOptions() Options {
	opts := DefaultOptions()
	opts.TypewriterDelay = 150 * time.Millisecond
	opts.About = about.NewPlainRenderer()
	return opts
}

type harness struct {
	page   *Page
	loop   *motion.Loop
	sensor *motion.ViewportSensor
	th     theme.Theme
	width  int
}

func mounted(t *testing.T, width int) *harness {
	t.Helper()
	h := &harness{
		page:   New(*content.Default(), testOptions()),
		loop:   motion.NewLoop(epoch),
		sensor: motion.NewViewportSensor(),
		th:     theme.New(theme.Dark),
		width:  width,
	}
	h.page.Mount(h.loop, h.sensor)
	t.Cleanup(h.page.Unmount)
	return h
}

func (h *harness) render() string {
	return h.page.Render(h.th, h.width)
}

// show renders and scrolls the window to [y, y+height).
func (h *harness) show(y, height int) string {
	h.render()
	h.sensor.SetViewport(motion.Rect{X: 0, Y: y, W: h.width, H: height})
	return h.render()
}

func (h *harness) settle() string {
	h.loop.RunUntilIdle(frame, 20*time.Second)
	return h.render()
}

func revealOf(t *testing.T, p *Page, id string) *motion.Reveal {
	t.Helper()
	r, ok := p.Reveal(id)
	require.True(t, ok, "no reveal %q", id)
	return r
}

func TestUnmountedPageRendersEverything(t *testing.T) {
	p := New(*content.Default(), testOptions())
	out := p.Render(theme.New(theme.Dark), 110)

	assert.Contains(t, out, "1,500+")
	for _, pr := range content.Default().Projects {
		assert.Contains(t, out, pr.Title)
	}
	assert.Nil(t, p.Typewriter())
	assert.Empty(t, p.Counters())
}

func TestHiddenBlocksKeepLayout(t *testing.T) {
	static := New(*content.Default(), testOptions()).Render(theme.New(theme.Dark), 110)

	h := mounted(t, 110)
	out := h.render()

	assert.Equal(t, strings.Count(static, "\n"), strings.Count(out, "\n"), "hidden blocks must keep their height")
	for _, pr := range content.Default().Projects {
		assert.NotContains(t, out, pr.Title)
	}
}

func TestEverythingSettlesWhenFullyVisible(t *testing.T) {
	h := mounted(t, 110)
	h.render()
	h.show(0, h.page.Height())
	out := h.settle()

	assert.False(t, h.loop.Pending())
	for _, id := range h.page.RevealIDs() {
		r := revealOf(t, h.page, id)
		assert.True(t, r.Visible(), "reveal %s", id)
		assert.Zero(t, r.Offset(), "reveal %s", id)
	}
	assert.Equal(t, "1,500+", h.page.Counters()[2].String())
	assert.True(t, h.page.Typewriter().Done())
	assert.Contains(t, out, "1,500+")
	assert.Contains(t, out, content.Default().Personal.Greeting)
	for _, s := range content.Default().Services {
		assert.Contains(t, out, s.Title)
	}
}

func TestOnlyIntersectingBlocksReveal(t *testing.T) {
	h := mounted(t, 110)
	h.show(0, 5)
	h.settle()

	stat := revealOf(t, h.page, ItemReveal(SectionStats, 0))
	assert.False(t, stat.Visible(), "stats are below a five-line window")
	for _, c := range h.page.Counters() {
		assert.Equal(t, motion.Idle, c.Phase())
	}

	y, ok := h.page.Section(SectionProjects)
	require.True(t, ok)
	h.show(y, 20)

	assert.True(t, revealOf(t, h.page, HeadingReveal(SectionProjects)).Visible(), "zero delay flips at once")
	assert.False(t, revealOf(t, h.page, HeadingReveal(SectionContact)).Visible())
}

func TestStaggeredRevealWaitsForDelay(t *testing.T) {
	h := mounted(t, 110)
	y, ok := h.page.Section(SectionStats)
	require.True(t, ok)
	h.show(y, 10)

	first := revealOf(t, h.page, ItemReveal(SectionStats, 0))
	second := revealOf(t, h.page, ItemReveal(SectionStats, 1))
	assert.True(t, first.Visible())
	assert.False(t, second.Visible())
	assert.Equal(t, testOptions().RevealStagger, second.Delay())

	h.loop.Advance(epoch.Add(testOptions().RevealStagger))
	assert.True(t, second.Visible())
}

func TestRevealStaysAfterScrollingAway(t *testing.T) {
	h := mounted(t, 110)
	y, _ := h.page.Section(SectionServices)
	h.show(y, 15)
	heading := revealOf(t, h.page, HeadingReveal(SectionServices))
	require.True(t, heading.Visible())

	h.show(0, 15)
	h.settle()
	assert.True(t, heading.Visible())
	assert.Equal(t, motion.Settled, heading.Phase())
}

func TestSectionsInDocumentOrder(t *testing.T) {
	h := mounted(t, 110)
	h.render()

	order := []string{
		SectionHero, SectionStats, SectionProjects, SectionServices,
		SectionAbout, SectionTestimonials, SectionContact, SectionFooter,
	}
	prev := -1
	for _, s := range order {
		y, ok := h.page.Section(s)
		require.True(t, ok, s)
		assert.Greater(t, y, prev, s)
		prev = y
	}
	assert.Less(t, prev, h.page.Height())

	_, ok := h.page.Section("nope")
	assert.False(t, ok)
}

func TestStatColumnsFollowWidth(t *testing.T) {
	wide := mounted(t, 110)
	wide.render()
	els := wide.page.counterEls
	r0, ok := els[0].Bounds()
	require.True(t, ok)
	r3, _ := els[3].Bounds()
	assert.Equal(t, r0.Y, r3.Y, "four columns at 110 cells")
	assert.Equal(t, 1, r0.H)

	narrow := mounted(t, 80)
	narrow.render()
	n0, _ := narrow.page.counterEls[0].Bounds()
	n1, _ := narrow.page.counterEls[1].Bounds()
	n2, _ := narrow.page.counterEls[2].Bounds()
	assert.Equal(t, n0.Y, n1.Y)
	assert.Greater(t, n2.Y, n0.Y, "two columns at 80 cells")
}

func TestQuickChatOnlyWithLink(t *testing.T) {
	data := content.Default()
	data.Personal.QuickChat = ""
	p := New(*data, testOptions())
	p.Mount(motion.NewLoop(epoch), motion.AlwaysVisible)
	defer p.Unmount()

	_, ok := p.Reveal(RevealQuickChat)
	assert.False(t, ok)
	_, ok = p.Reveal(RevealContact)
	assert.True(t, ok)
}

func TestUnmountStopsEveryPrimitive(t *testing.T) {
	h := mounted(t, 110)
	h.render()
	h.show(0, h.page.Height())
	h.loop.Advance(epoch.Add(300 * time.Millisecond))

	typed := h.page.Typewriter().Text()
	value := h.page.Counters()[2].Value()
	h.page.Unmount()
	assert.False(t, h.page.Mounted())
	assert.Zero(t, h.sensor.Active())
	assert.False(t, h.loop.Pending())

	h.loop.RunUntilIdle(frame, 5*time.Second)
	assert.Equal(t, typed, h.page.Typewriter().Text())
	assert.Equal(t, value, h.page.Counters()[2].Value())

	h.page.Unmount()
}

func TestMountIsIdempotent(t *testing.T) {
	h := mounted(t, 110)
	tw := h.page.Typewriter()
	h.page.Mount(h.loop, h.sensor)
	assert.Same(t, tw, h.page.Typewriter())
	assert.Len(t, h.page.Counters(), len(content.Default().Stats))
}

func TestStaticModeRunsToCompletion(t *testing.T) {
	loop := motion.NewLoop(epoch)
	p := New(*content.Default(), testOptions())
	p.Mount(loop, motion.AlwaysVisible)
	defer p.Unmount()

	loop.RunUntilIdle(frame, 20*time.Second)
	out := p.Render(theme.New(theme.Light), 100)
	assert.Contains(t, out, "1,500+")
	assert.Contains(t, out, content.Default().Personal.Greeting)
	assert.False(t, loop.Pending())
}

func TestStaticStatMatchesSettledCounter(t *testing.T) {
	data := *content.Default()
	data.Stats = []content.Stat{{Value: 1234.9, Suffix: "+", Label: "Fractional"}}

	static := New(data, testOptions()).Render(theme.New(theme.Dark), 110)
	assert.Contains(t, static, "1,234+")
	assert.NotContains(t, static, "1,235+")

	loop := motion.NewLoop(epoch)
	p := New(data, testOptions())
	p.Mount(loop, motion.AlwaysVisible)
	defer p.Unmount()
	loop.RunUntilIdle(frame, 20*time.Second)
	require.Len(t, p.Counters(), 1)
	assert.Equal(t, "1,234+", p.Counters()[0].String())
}
