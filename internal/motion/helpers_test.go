package motion

import "time"

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time {
	return epoch.Add(d)
}

type box struct {
	rect Rect
	laid bool
}

func laidOut(x, y, w, h int) *box {
	return &box{rect: Rect{X: x, Y: y, W: w, H: h}, laid: true}
}

func (b *box) Bounds() (Rect, bool) {
	return b.rect, b.laid
}

// scriptedSensor is a synthetic event source: tests push entries by hand.
type scriptedSensor struct {
	subs     map[Element]*scriptedSub
	observed int
	released int
}

type scriptedSub struct {
	sensor *scriptedSensor
	el     Element
	fn     func(Entry)
	gone   bool
}

func newScriptedSensor() *scriptedSensor {
	return &scriptedSensor{subs: make(map[Element]*scriptedSub)}
}

func (s *scriptedSensor) Observe(el Element, _ float64, fn func(Entry)) Subscription {
	if el == nil {
		return noopSubscription{}
	}
	s.observed++
	sub := &scriptedSub{sensor: s, el: el, fn: fn}
	s.subs[el] = sub
	return sub
}

func (s *scriptedSensor) emit(el Element, visible bool) {
	if sub, ok := s.subs[el]; ok && !sub.gone {
		ratio := 0.0
		if visible {
			ratio = 1
		}
		sub.fn(Entry{IsIntersecting: visible, Ratio: ratio})
	}
}

func (s *scriptedSensor) live() int {
	n := 0
	for _, sub := range s.subs {
		if !sub.gone {
			n++
		}
	}
	return n
}

func (sub *scriptedSub) Release() {
	if sub.gone {
		return
	}
	sub.gone = true
	sub.sensor.released++
}
