package motion

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultCounterThreshold is the visible fraction that starts a counter.
	DefaultCounterThreshold = 0.5
	// DefaultCounterDuration is how long a counter takes to reach its end.
	DefaultCounterDuration = 2 * time.Second
)

// CounterOptions configure a Counter.
type CounterOptions struct {
	End      float64
	Duration time.Duration
	Suffix   string
	// Threshold is the visible fraction that starts the counter; zero fires
	// on any overlap. Callers usually pass DefaultCounterThreshold.
	Threshold float64
	// Printer formats the integer part; defaults to English grouping.
	Printer *message.Printer
}

// Counter animates a displayed integer from 0 to End once its element is
// sufficiently visible. It fires at most once per mounted instance.
type Counter struct {
	sched   Scheduler
	sensor  Sensor
	opts    CounterOptions
	printer *message.Printer

	session Session
	value   int64
	frames  int

	el     Element
	sub    Subscription
	cancel CancelFunc
}

// NewCounter creates an idle counter. Call Bind to attach it to an element.
func NewCounter(s Scheduler, sensor Sensor, opts CounterOptions) *Counter {
	p := opts.Printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	return &Counter{sched: s, sensor: sensor, opts: opts, printer: p}
}

// Bind observes el. A nil element is a no-op until a real one is supplied;
// binding a different element releases the previous subscription.
func (c *Counter) Bind(el Element) {
	if !c.session.Live() || el == c.el {
		return
	}
	c.release()
	c.el = el
	if el == nil || c.session.Phase() != Idle {
		return
	}
	sub := c.sensor.Observe(el, c.opts.Threshold, c.onEntry)
	if c.session.Phase() != Idle {
		// Triggered synchronously during Observe.
		sub.Release()
		return
	}
	c.sub = sub
}

// Unmount cancels the pending frame and the subscription.
func (c *Counter) Unmount() {
	c.session.Teardown()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.release()
}

// Value returns the displayed integer.
func (c *Counter) Value() int64 {
	return c.value
}

// Phase returns the counter's lifecycle phase.
func (c *Counter) Phase() Phase {
	return c.session.Phase()
}

// Frames returns the number of animation frames processed.
func (c *Counter) Frames() int {
	return c.frames
}

// Suffix returns the text appended after the number.
func (c *Counter) Suffix() string {
	return c.opts.Suffix
}

// String renders the value with locale grouping followed by the suffix.
func (c *Counter) String() string {
	return c.printer.Sprintf("%d", c.value) + c.opts.Suffix
}

func (c *Counter) onEntry(e Entry) {
	if !e.IsIntersecting || !c.session.Trigger() {
		return
	}
	c.release()

	switch {
	case c.opts.End <= 0:
		c.value = 0
		c.session.Settle()
	case c.opts.Duration <= 0:
		c.value = c.target()
		c.session.Settle()
	default:
		c.cancel = c.sched.RequestFrame(c.step)
	}
}

func (c *Counter) step(now time.Time) {
	c.cancel = nil
	if !c.session.Live() {
		return
	}
	c.frames++
	start := c.session.Stamp(now)

	fraction := float64(now.Sub(start)) / float64(c.opts.Duration)
	fraction = min(max(fraction, 0), 1)
	if v := int64(math.Floor(fraction * c.opts.End)); v > c.value {
		c.value = v
	}

	if fraction >= 1 {
		c.value = c.target()
		c.session.Settle()
		return
	}
	c.cancel = c.sched.RequestFrame(c.step)
}

func (c *Counter) target() int64 {
	return int64(math.Floor(c.opts.End))
}

func (c *Counter) release() {
	if c.sub != nil {
		c.sub.Release()
		c.sub = nil
	}
}
