// Package app is the root Bubble Tea model: a scrollable portfolio document
// with animated sections, a compose overlay and optional live content.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adityajain1310/folio/internal/client"
	"github.com/adityajain1310/folio/internal/config"
	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/inbox"
	"github.com/adityajain1310/folio/internal/motion"
	"github.com/adityajain1310/folio/internal/page"
	"github.com/adityajain1310/folio/internal/prefs"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/adityajain1310/folio/internal/views/about"
	"github.com/adityajain1310/folio/internal/views/contact"
	"github.com/adityajain1310/folio/internal/views/debug"
	"github.com/adityajain1310/folio/internal/views/status"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Overlay identifies which modal is active.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayCompose
	OverlayDebug
	OverlayHelp
)

const (
	headerHeight = 3
	footerHeight = 1
	formWidth    = 72
)

// Sender delivers contact messages and reports back with
// client.ContactSentMsg.
type Sender interface {
	SendContactCmd(m inbox.Message) tea.Cmd
}

// Options wire the model to its collaborators. Every field is optional.
type Options struct {
	// WS streams content from a server. Nil shows the initial content only.
	WS     *client.WSClient
	Sender Sender
	Prefs  *prefs.Store
	Log    *zap.Logger
	// Now seeds the animation clock. Frame ticks carry wall time, so tests
	// that inject frames use the same base.
	Now   func() time.Time
	About *about.Renderer
}

type frameMsg time.Time

type prefsSavedMsg struct{ err error }

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *config.Config
	ws     *client.WSClient
	sender Sender
	prefs  *prefs.Store
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc

	keys    KeyMap
	help    help.Model
	width   int
	height  int
	overlay Overlay

	theme    theme.Theme
	pageOpts page.Options
	loop     *motion.Loop
	sensor   *motion.ViewportSensor
	page     *page.Page
	vp       viewport.Model
	scroll   scroller
	ticking  bool

	// Sub-views.
	statusBar status.Model
	debugLog  debug.Model
	form      contact.Form

	connected bool
}

// New creates the root model for data and mounts its page.
func New(cfg *config.Config, data content.Portfolio, opts Options) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	mode, err := theme.ParseMode(cfg.Client.Theme)
	if err != nil {
		log.Warn("theme", zap.Error(err))
	}
	if opts.Prefs != nil {
		if p, err := opts.Prefs.Load(); err != nil {
			log.Warn("load prefs", zap.Error(err))
		} else if saved, err := theme.ParseMode(p.Theme); err == nil && p.Theme != "" {
			mode = saved
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		cfg:       cfg,
		ws:        opts.WS,
		sender:    opts.Sender,
		prefs:     opts.Prefs,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     theme.New(mode),
		pageOpts:  PageOptions(cfg, opts.About),
		loop:      motion.NewLoop(now()),
		sensor:    motion.NewViewportSensor(),
		vp:        viewport.New(0, 0),
		scroll:    newScroller(cfg.Motion.FrameRate),
		statusBar: status.New(data.Personal.Name),
		debugLog:  debug.New(),
		form:      contact.NewForm(),
	}
	if m.ws != nil {
		m.statusBar.Source = status.Connecting
	}
	m.page = page.New(data, m.pageOpts)
	m.page.Mount(m.loop, motion.Fallback(m.sensor))
	m.debugLog.Add("cfg", fmt.Sprintf("theme %s, %d fps", mode, cfg.Motion.FrameRate))
	return m
}

// PageOptions maps the motion settings onto page options.
func PageOptions(cfg *config.Config, r *about.Renderer) page.Options {
	mc := cfg.Motion
	return page.Options{
		TypewriterDelay:  mc.TypewriterDelay,
		CounterDuration:  mc.CounterDuration,
		CounterThreshold: mc.CounterThreshold,
		RevealThreshold:  mc.RevealThreshold,
		RevealStagger:    mc.RevealStagger,
		EntryDistance:    float64(mc.EntryDistance),
		FrameRate:        mc.FrameRate,
		About:            r,
	}
}

// RenderStatic lays data out with every block visible and every animation
// finished, for output that is not an interactive terminal.
func RenderStatic(cfg *config.Config, data content.Portfolio, th theme.Theme, width int, r *about.Renderer) string {
	if cfg == nil {
		cfg = config.Default()
	}
	loop := motion.NewLoop(time.Now())
	p := page.New(data, PageOptions(cfg, r))
	p.Mount(loop, motion.AlwaysVisible)
	defer p.Unmount()
	loop.RunUntilIdle(cfg.FrameInterval(), 10*time.Minute)
	return p.Render(th, width)
}

// Init starts the WebSocket connection when there is one.
func (m Model) Init() tea.Cmd {
	if m.ws == nil {
		return nil
	}
	return m.ws.Listen(m.ctx)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.help.Width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.refresh()
		if r, ok := m.sensor.Viewport(); ok {
			m.debugLog.Add("cfg", fmt.Sprintf("viewport %dx%d", r.W, r.H))
		}
		return m, m.schedule()

	case frameMsg:
		m.ticking = false
		m.loop.Advance(time.Time(msg))
		if m.scroll.active {
			m.vp.SetYOffset(m.scroll.step())
		}
		m.refresh()
		return m, m.schedule()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.overlay != OverlayNone {
			return m, nil
		}
		m.scroll.stop()
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		m.refresh()
		return m, tea.Batch(cmd, m.schedule())

	case client.ConnectedMsg:
		m.connected = true
		m.statusBar.Source = status.Live
		m.debugLog.Add("ws", "connected")
		return m, m.readNext()

	case client.DisconnectedMsg:
		m.connected = false
		m.statusBar.Source = status.Connecting
		text := "disconnected"
		if msg.Err != nil {
			text += ": " + msg.Err.Error()
		}
		m.debugLog.Add("ws", text)
		if m.ws == nil || m.ctx.Err() != nil {
			return m, nil
		}
		return m, m.ws.Listen(m.ctx)

	case client.ContentMsg:
		m.debugLog.Add("ws", fmt.Sprintf("content #%d for %s", msg.Seq, msg.Portfolio.Personal.Name))
		m.replaceContent(msg.Portfolio)
		return m, tea.Batch(m.readNext(), m.schedule())

	case client.ErrorMsg:
		m.debugLog.Add("err", msg.Err.Error())
		m.log.Warn("server error", zap.Error(msg.Err))
		return m, m.readNext()

	case client.ContactSentMsg:
		m.form.Sending = false
		if msg.Err != nil {
			m.form.Status, m.form.Failed = "Could not send: "+msg.Err.Error(), true
			m.debugLog.Add("err", "contact: "+msg.Err.Error())
			m.log.Warn("send contact message", zap.Error(msg.Err))
			return m, nil
		}
		m.form.Reset()
		m.form.Status = "Thanks! Your message is on its way."
		m.debugLog.Add("msg", "contact message "+msg.ID)
		m.log.Info("contact message sent", zap.String("id", msg.ID))
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.debugLog.Add("err", "prefs: "+msg.err.Error())
			m.log.Warn("save prefs", zap.Error(msg.err))
		}
		return m, nil
	}

	// Cursor blinks and similar messages belong to the form.
	if m.overlay == OverlayCompose {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// An open overlay captures input and closes only on esc.
	switch m.overlay {
	case OverlayCompose:
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.overlay = OverlayNone
			m.form.Blur()
			return m, nil
		case key.Matches(msg, m.keys.Send):
			return m.send()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case OverlayDebug:
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Debug):
			m.overlay = OverlayNone
		case key.Matches(msg, m.keys.Up):
			m.debugLog.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.debugLog.ScrollDown(1)
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil

	case OverlayHelp:
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help):
			m.overlay = OverlayNone
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		return m.scrollBy(-1)

	case key.Matches(msg, m.keys.Down):
		return m.scrollBy(1)

	case key.Matches(msg, m.keys.PageUp):
		return m.scrollBy(-m.vp.Height)

	case key.Matches(msg, m.keys.PageDown):
		return m.scrollBy(m.vp.Height)

	case key.Matches(msg, m.keys.Top):
		return m.jumpTo(page.SectionHero)

	case key.Matches(msg, m.keys.Bottom):
		return m.jumpTo(page.SectionFooter)

	case key.Matches(msg, m.keys.Projects):
		return m.jumpTo(page.SectionProjects)

	case key.Matches(msg, m.keys.Contact):
		return m.jumpTo(page.SectionContact)

	case key.Matches(msg, m.keys.Services):
		return m.jumpTo(page.SectionServices)

	case key.Matches(msg, m.keys.About):
		return m.jumpTo(page.SectionAbout)

	case key.Matches(msg, m.keys.Theme):
		m.theme.Toggle()
		m.debugLog.Add("cfg", "theme "+m.theme.Mode.String())
		m.refresh()
		return m, tea.Batch(m.savePrefs(), m.schedule())

	case key.Matches(msg, m.keys.Compose):
		m.overlay = OverlayCompose
		return m, m.form.Focus()

	case key.Matches(msg, m.keys.Debug):
		m.overlay = OverlayDebug
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.overlay = OverlayHelp
		return m, nil

	case key.Matches(msg, m.keys.Resync):
		m.resync()
		return m, nil
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	m.page.Unmount()
	if m.ws != nil {
		m.ws.Close()
	}
	return m, tea.Quit
}

func (m Model) scrollBy(n int) (tea.Model, tea.Cmd) {
	m.scroll.stop()
	if n < 0 {
		m.vp.ScrollUp(-n)
	} else {
		m.vp.ScrollDown(n)
	}
	m.refresh()
	return m, m.schedule()
}

// jumpTo eases the viewport to a section. The target is clamped to the
// last full screen.
func (m Model) jumpTo(section string) (tea.Model, tea.Cmd) {
	y, ok := m.page.Section(section)
	if !ok {
		return m, nil
	}
	target := min(y, max(m.page.Height()-m.vp.Height, 0))
	m.debugLog.Add("nav", fmt.Sprintf("%s at line %d", section, target))
	m.scroll.jump(m.vp.YOffset, target)
	return m, m.schedule()
}

func (m *Model) resync() {
	if m.ws == nil {
		m.debugLog.Add("ws", "local content, nothing to resync")
		return
	}
	if err := m.ws.Resync(); err != nil {
		if errors.Is(err, client.ErrNotConnected) {
			m.debugLog.Add("ws", "not connected, still retrying")
			return
		}
		m.debugLog.Add("err", "resync: "+err.Error())
		return
	}
	m.debugLog.Add("ws", "resync requested")
}

func (m Model) send() (tea.Model, tea.Cmd) {
	if m.form.Sending {
		return m, nil
	}
	sub := m.form.Submission()
	if err := sub.Validate(); err != nil {
		m.form.Status = strings.TrimPrefix(err.Error(), inbox.ErrInvalid.Error()+": ")
		m.form.Failed = true
		return m, nil
	}
	if m.sender == nil {
		m.form.Status, m.form.Failed = "Messages cannot be sent from this session.", true
		return m, nil
	}
	m.form.Sending = true
	m.form.Status, m.form.Failed = "", false
	return m, m.sender.SendContactCmd(sub)
}

// replaceContent swaps in a new page. The old page's primitives are torn
// down before the new ones are created.
func (m *Model) replaceContent(data content.Portfolio) {
	if prev := m.page.Content().Personal.Name; prev != data.Personal.Name {
		m.debugLog.Add("cfg", fmt.Sprintf("content for %s replaces %s", data.Personal.Name, prev))
	}
	m.page.Unmount()
	m.debugLog.Forget()
	m.page = page.New(data, m.pageOpts)
	m.page.Mount(m.loop, motion.Fallback(m.sensor))
	m.statusBar.Name = data.Personal.Name
	m.refresh()
}

// refresh lays the page out, pushes the visible window to the sensor and
// lays out again so blocks revealed by that push show in the same frame.
func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.vp.SetContent(m.page.Render(m.theme, m.vp.Width))
	m.sensor.SetViewport(motion.Rect{X: 0, Y: m.vp.YOffset, W: m.vp.Width, H: m.vp.Height})
	m.vp.SetContent(m.page.Render(m.theme, m.vp.Width))
	m.statusBar.Percent = m.vp.ScrollPercent()
	m.logMilestones()
}

// schedule requests the next frame while anything is still moving.
func (m *Model) schedule() tea.Cmd {
	if m.ticking || !(m.loop.Pending() || m.scroll.active) {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.nextTick(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// nextTick is one frame while anything animates per frame, otherwise the
// time until the next timer is due.
func (m *Model) nextTick() time.Duration {
	interval := m.cfg.FrameInterval()
	if m.scroll.active || m.loop.FramePending() {
		return interval
	}
	if at, ok := m.loop.NextDeadline(); ok {
		return max(at.Sub(m.loop.Now()), interval)
	}
	return interval
}

func (m Model) readNext() tea.Cmd {
	if m.ws == nil {
		return nil
	}
	return m.ws.ReadLoop(m.ctx)
}

func (m Model) savePrefs() tea.Cmd {
	if m.prefs == nil {
		return nil
	}
	store, mode := m.prefs, m.theme.Mode.String()
	return func() tea.Msg {
		p, err := store.Load()
		if err != nil {
			p = &prefs.Prefs{}
		}
		p.Theme = mode
		return prefsSavedMsg{err: store.Save(p)}
	}
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	body := m.vp.View()
	switch m.overlay {
	case OverlayCompose:
		body = m.centered(m.form.View(m.theme, min(m.width-4, formWidth)))
	case OverlayDebug:
		body = m.centered(m.debugLog.View(m.theme, m.width, m.vp.Height))
	case OverlayHelp:
		h := m.help
		h.ShowAll = true
		body = m.centered(m.theme.Panel.Render(h.View(m.keys)))
	}

	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	return lipgloss.JoinVertical(lipgloss.Left, m.statusBar.View(m.theme), body, footer)
}

func (m Model) centered(s string) string {
	return lipgloss.Place(m.width, m.vp.Height, lipgloss.Center, lipgloss.Center, s)
}
