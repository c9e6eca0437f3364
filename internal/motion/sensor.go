package motion

import "slices"

// Rect is an axis-aligned area of the rendered document, in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the number of cells covered by r.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Element is a rendered region that can be observed. Bounds returns false
// while the element has not been laid out yet. Implementations must be
// comparable (pointer types), since the sensor keys subscriptions by element.
type Element interface {
	Bounds() (Rect, bool)
}

// Entry is one visibility observation.
type Entry struct {
	IsIntersecting bool
	// Ratio is the fraction of the element's area inside the viewport.
	Ratio float64
}

// Subscription binds one element to one callback.
type Subscription interface {
	// Release stops delivery. Calling it more than once is a no-op.
	Release()
}

// Sensor observes element visibility.
type Sensor interface {
	// Observe delivers entries for el to fn. A nil element yields an inert
	// subscription.
	Observe(el Element, threshold float64, fn func(Entry)) Subscription
}

type noopSubscription struct{}

func (noopSubscription) Release() {}

type alwaysVisible struct{}

func (alwaysVisible) Observe(el Element, _ float64, fn func(Entry)) Subscription {
	if el != nil && fn != nil {
		fn(Entry{IsIntersecting: true, Ratio: 1})
	}
	return noopSubscription{}
}

// AlwaysVisible is the degraded sensor used when the host has no viewport.
// It reports every observed element as fully visible, synchronously.
var AlwaysVisible Sensor = alwaysVisible{}

// Fallback returns s, or AlwaysVisible when s is nil.
func Fallback(s *ViewportSensor) Sensor {
	if s == nil {
		return AlwaysVisible
	}
	return s
}

// ViewportSensor reports intersections between elements and the visible
// window of the document. The host pushes the window with SetViewport and
// calls Refresh after relayout.
type ViewportSensor struct {
	view   Rect
	ready  bool
	subs   []*viewportSubscription
	byElem map[Element]*viewportSubscription
}

type viewportSubscription struct {
	sensor    *ViewportSensor
	el        Element
	threshold float64
	fn        func(Entry)
	last      Entry
	reported  bool
	released  bool
}

// NewViewportSensor creates a sensor with no viewport yet. Observations stay
// pending until the first SetViewport.
func NewViewportSensor() *ViewportSensor {
	return &ViewportSensor{byElem: make(map[Element]*viewportSubscription)}
}

// Observe registers fn for el. Observing an element that already has a
// subscription releases the earlier one. threshold is clamped to [0, 1];
// zero means any overlap counts.
func (s *ViewportSensor) Observe(el Element, threshold float64, fn func(Entry)) Subscription {
	if el == nil || fn == nil {
		return noopSubscription{}
	}
	if old, ok := s.byElem[el]; ok {
		old.Release()
	}
	sub := &viewportSubscription{
		sensor:    s,
		el:        el,
		threshold: min(max(threshold, 0), 1),
		fn:        fn,
	}
	s.byElem[el] = sub
	s.subs = append(s.subs, sub)
	s.evaluate(sub)
	return sub
}

// SetViewport updates the visible window and re-evaluates every subscription.
func (s *ViewportSensor) SetViewport(r Rect) {
	s.view = r
	s.ready = true
	s.Refresh()
}

// Viewport returns the last window pushed by the host.
func (s *ViewportSensor) Viewport() (Rect, bool) {
	return s.view, s.ready
}

// Refresh re-evaluates every subscription against the current window.
// Callbacks may release subscriptions, including their own.
func (s *ViewportSensor) Refresh() {
	for _, sub := range slices.Clone(s.subs) {
		if !sub.released {
			s.evaluate(sub)
		}
	}
}

// Active returns the number of live subscriptions.
func (s *ViewportSensor) Active() int {
	return len(s.subs)
}

func (s *ViewportSensor) evaluate(sub *viewportSubscription) {
	if !s.ready {
		return
	}
	bounds, ok := sub.el.Bounds()
	if !ok || bounds.Empty() {
		return
	}
	ratio := float64(bounds.Intersect(s.view).Area()) / float64(bounds.Area())
	e := Entry{IsIntersecting: intersects(ratio, sub.threshold), Ratio: ratio}
	if sub.reported && sub.last.IsIntersecting == e.IsIntersecting {
		sub.last.Ratio = ratio
		return
	}
	sub.reported = true
	sub.last = e
	sub.fn(e)
}

func intersects(ratio, threshold float64) bool {
	if threshold == 0 {
		return ratio > 0
	}
	return ratio >= threshold
}

func (sub *viewportSubscription) Release() {
	if sub.released {
		return
	}
	sub.released = true
	s := sub.sensor
	if s.byElem[sub.el] == sub {
		delete(s.byElem, sub.el)
	}
	if i := slices.Index(s.subs, sub); i >= 0 {
		s.subs = slices.Delete(s.subs, i, i+1)
	}
}
