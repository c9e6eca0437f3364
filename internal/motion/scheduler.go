// Package motion implements the presentation-timing primitives of the
// portfolio page: a typewriter, a threshold counter and a scroll reveal.
// All of them run on a cooperative Scheduler and observe element visibility
// through a Sensor. Nothing in this package starts goroutines; the host
// drives time forward by calling Loop.Advance from its event loop.
package motion

import (
	"sort"
	"time"
)

// CancelFunc cancels a scheduled timer or frame callback. Calling it after the
// callback has run, or more than once, is a no-op.
type CancelFunc func()

// Scheduler is the host's display-refresh and timer facility.
type Scheduler interface {
	// Now returns the scheduler clock.
	Now() time.Time
	// RequestFrame runs fn on the next display frame.
	RequestFrame(fn func(now time.Time)) CancelFunc
	// After runs fn once d has elapsed on the scheduler clock.
	After(d time.Duration, fn func()) CancelFunc
}

type timer struct {
	at        time.Time
	fn        func()
	cancelled bool
}

type frame struct {
	fn        func(time.Time)
	cancelled bool
}

// Loop is a single-threaded Scheduler advanced explicitly by its owner.
// The terminal program advances it on every frame tick; tests advance it
// with synthetic timestamps.
type Loop struct {
	now    time.Time
	timers []*timer // ordered by deadline, FIFO among equal deadlines
	frames []*frame
}

// NewLoop creates a loop whose clock starts at start.
func NewLoop(start time.Time) *Loop {
	return &Loop{now: start}
}

// Now returns the loop clock.
func (l *Loop) Now() time.Time {
	return l.now
}

// RequestFrame queues fn for the next Advance.
func (l *Loop) RequestFrame(fn func(now time.Time)) CancelFunc {
	f := &frame{fn: fn}
	l.frames = append(l.frames, f)
	return func() { f.cancelled = true }
}

// After schedules fn to run once the loop clock reaches now+d.
func (l *Loop) After(d time.Duration, fn func()) CancelFunc {
	if d < 0 {
		d = 0
	}
	t := &timer{at: l.now.Add(d), fn: fn}
	i := sort.Search(len(l.timers), func(i int) bool {
		return l.timers[i].at.After(t.at)
	})
	l.timers = append(l.timers, nil)
	copy(l.timers[i+1:], l.timers[i:])
	l.timers[i] = t
	return func() { t.cancelled = true }
}

// Advance moves the clock to now. Due timers fire first, in deadline order,
// with the clock set to each timer's own deadline so chained timers catch up
// deterministically. Frame callbacks queued before this call then run with
// now; frames they request run on the next Advance.
func (l *Loop) Advance(now time.Time) {
	if now.Before(l.now) {
		now = l.now
	}
	for len(l.timers) > 0 && !l.timers[0].at.After(now) {
		t := l.timers[0]
		l.timers = l.timers[1:]
		if t.cancelled {
			continue
		}
		l.now = t.at
		t.cancelled = true
		t.fn()
	}
	l.now = now

	frames := l.frames
	l.frames = nil
	for _, f := range frames {
		if f.cancelled {
			continue
		}
		f.cancelled = true
		f.fn(now)
	}
}

// Pending reports whether any timer or frame callback is still scheduled.
func (l *Loop) Pending() bool {
	l.prune()
	return len(l.timers) > 0 || len(l.frames) > 0
}

// FramePending reports whether a frame callback is queued for the next
// Advance.
func (l *Loop) FramePending() bool {
	l.prune()
	return len(l.frames) > 0
}

// NextDeadline returns the earliest live timer deadline.
func (l *Loop) NextDeadline() (time.Time, bool) {
	l.prune()
	if len(l.timers) == 0 {
		return time.Time{}, false
	}
	return l.timers[0].at, true
}

// RunUntilIdle advances the loop in fixed steps until nothing is pending or
// limit has elapsed. It returns the number of steps taken.
func (l *Loop) RunUntilIdle(step, limit time.Duration) int {
	if step <= 0 {
		step = time.Millisecond
	}
	end := l.now.Add(limit)
	steps := 0
	for l.Pending() && l.now.Before(end) {
		l.Advance(l.now.Add(step))
		steps++
	}
	return steps
}

func (l *Loop) prune() {
	live := l.timers[:0]
	for _, t := range l.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(l.timers); i++ {
		l.timers[i] = nil
	}
	l.timers = live

	frames := l.frames[:0]
	for _, f := range l.frames {
		if !f.cancelled {
			frames = append(frames, f)
		}
	}
	for i := len(frames); i < len(l.frames); i++ {
		l.frames[i] = nil
	}
	l.frames = frames
}
