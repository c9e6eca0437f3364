package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// DefaultRevealThreshold is the visible fraction that triggers a reveal.
const DefaultRevealThreshold = 0.1

// RevealOptions configure a Reveal.
type RevealOptions struct {
	Delay time.Duration
	// Threshold is the visible fraction that reveals the element; zero fires
	// on any overlap. Callers usually pass DefaultRevealThreshold.
	Threshold float64
	// Entry animates the block into place once it becomes visible.
	Entry *Transition
}

// Reveal flips a visibility flag once, Delay after its element first
// intersects the viewport. Scrolling away afterwards changes nothing.
type Reveal struct {
	sched  Scheduler
	sensor Sensor
	opts   RevealOptions

	session Session
	visible bool

	el          Element
	sub         Subscription
	cancelFlip  CancelFunc
	cancelFrame CancelFunc
}

// NewReveal creates a hidden reveal. Call Bind to attach it to an element.
func NewReveal(s Scheduler, sensor Sensor, opts RevealOptions) *Reveal {
	opts.Delay = max(opts.Delay, 0)
	return &Reveal{sched: s, sensor: sensor, opts: opts}
}

// Bind observes el, following the same rules as Counter.Bind.
func (r *Reveal) Bind(el Element) {
	if !r.session.Live() || el == r.el {
		return
	}
	r.release()
	r.el = el
	if el == nil || r.session.Phase() != Idle {
		return
	}
	sub := r.sensor.Observe(el, r.opts.Threshold, r.onEntry)
	if r.session.Phase() != Idle {
		sub.Release()
		return
	}
	r.sub = sub
}

// Unmount cancels a pending flip, the entry animation and the subscription.
func (r *Reveal) Unmount() {
	r.session.Teardown()
	if r.cancelFlip != nil {
		r.cancelFlip()
		r.cancelFlip = nil
	}
	if r.cancelFrame != nil {
		r.cancelFrame()
		r.cancelFrame = nil
	}
	r.release()
}

// Visible reports whether the block has been revealed.
func (r *Reveal) Visible() bool {
	return r.visible
}

// Phase returns the reveal's lifecycle phase.
func (r *Reveal) Phase() Phase {
	return r.session.Phase()
}

// Delay returns the configured flip delay.
func (r *Reveal) Delay() time.Duration {
	return r.opts.Delay
}

// Offset returns how many rows the block is still displaced by its entry
// transition.
func (r *Reveal) Offset() int {
	t := r.opts.Entry
	if t == nil {
		return 0
	}
	if !r.visible {
		return int(math.Round(t.Distance))
	}
	return t.Offset()
}

// Progress returns the entry transition progress in [0, 1].
func (r *Reveal) Progress() float64 {
	if !r.visible {
		return 0
	}
	if r.opts.Entry == nil {
		return 1
	}
	return r.opts.Entry.Progress()
}

func (r *Reveal) onEntry(e Entry) {
	if !e.IsIntersecting || !r.session.Trigger() {
		return
	}
	r.release()
	if r.opts.Delay == 0 {
		r.flip()
		return
	}
	r.cancelFlip = r.sched.After(r.opts.Delay, r.flip)
}

func (r *Reveal) flip() {
	r.cancelFlip = nil
	if !r.session.Live() {
		return
	}
	r.visible = true
	r.session.Settle()
	if r.opts.Entry != nil && !r.opts.Entry.Settled() {
		r.cancelFrame = r.sched.RequestFrame(r.step)
	}
}

func (r *Reveal) step(time.Time) {
	r.cancelFrame = nil
	if !r.session.Live() {
		return
	}
	if r.opts.Entry.Step() {
		r.cancelFrame = r.sched.RequestFrame(r.step)
	}
}

func (r *Reveal) release() {
	if r.sub != nil {
		r.sub.Release()
		r.sub = nil
	}
}

// Transition is a critically damped spring that slides a block from
// Distance rows below its resting place to zero, one frame per Step.
type Transition struct {
	Distance float64

	spring harmonica.Spring
	pos    float64
	vel    float64
	done   bool
}

// NewTransition creates a transition stepped at fps frames per second.
func NewTransition(fps int, distance float64) *Transition {
	if fps <= 0 {
		fps = 60
	}
	return &Transition{
		Distance: distance,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
		pos:      distance,
		done:     distance == 0,
	}
}

// Step advances the spring by one frame and reports whether it is still
// moving.
func (t *Transition) Step() bool {
	if t.done {
		return false
	}
	t.pos, t.vel = t.spring.Update(t.pos, t.vel, 0)
	if math.Abs(t.pos) < 0.01 && math.Abs(t.vel) < 0.01 {
		t.pos, t.vel = 0, 0
		t.done = true
		return false
	}
	return true
}

// Offset returns the current displacement rounded to whole rows.
func (t *Transition) Offset() int {
	return int(math.Round(t.pos))
}

// Progress returns 0 at the start and 1 at rest.
func (t *Transition) Progress() float64 {
	if t.Distance == 0 || t.done {
		return 1
	}
	return min(max(1-t.pos/t.Distance, 0), 1)
}

// Settled reports whether the spring is at rest.
func (t *Transition) Settled() bool {
	return t.done
}
