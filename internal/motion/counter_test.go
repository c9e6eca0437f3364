package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestCounterScenario(t *testing.T) {
	l := NewLoop(epoch)
	s := NewViewportSensor()
	el := laidOut(0, 10, 20, 2)
	c := NewCounter(l, s, CounterOptions{
		End: 1500, Duration: 2 * time.Second, Suffix: "+", Threshold: DefaultCounterThreshold,
	})
	c.Bind(el)

	assert.Equal(t, "0+", c.String())

	s.SetViewport(Rect{X: 0, Y: 0, W: 80, H: 24})
	require.Equal(t, Triggered, c.Phase())

	l.Advance(at(0))
	assert.Equal(t, int64(0), c.Value())

	l.Advance(at(time.Second))
	assert.Equal(t, int64(750), c.Value())
	assert.Equal(t, "750+", c.String())

	l.Advance(at(2 * time.Second))
	assert.Equal(t, int64(1500), c.Value())
	assert.Equal(t, "1,500+", c.String())
	assert.Equal(t, Settled, c.Phase())
	assert.False(t, l.Pending())

	l.Advance(at(5 * time.Second))
	assert.Equal(t, int64(1500), c.Value())
}

func TestCounterMonotonicAndExactEnd(t *testing.T) {
	cases := []struct {
		name     string
		end      float64
		duration time.Duration
		step     time.Duration
	}{
		{"small end", 7, time.Second, 16 * time.Millisecond},
		{"large end", 250000, 2 * time.Second, 16 * time.Millisecond},
		{"uneven frames", 99, 700 * time.Millisecond, 33 * time.Millisecond},
		{"frames longer than duration", 40, 10 * time.Millisecond, 50 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLoop(epoch)
			s := newScriptedSensor()
			el := laidOut(0, 0, 1, 1)
			c := NewCounter(l, s, CounterOptions{End: tc.end, Duration: tc.duration})
			c.Bind(el)
			s.emit(el, true)

			prev := int64(0)
			for now := time.Duration(0); now <= tc.duration+tc.step; now += tc.step {
				l.Advance(at(now))
				require.GreaterOrEqual(t, c.Value(), prev)
				prev = c.Value()
			}
			assert.Equal(t, int64(tc.end), c.Value())
			assert.Equal(t, Settled, c.Phase())
		})
	}
}

func TestCounterFiresOnce(t *testing.T) {
	l := NewLoop(epoch)
	s := newScriptedSensor()
	el := laidOut(0, 0, 1, 1)
	c := NewCounter(l, s, CounterOptions{End: 100, Duration: time.Second})
	c.Bind(el)

	s.emit(el, true)
	l.Advance(at(0))
	l.Advance(at(500 * time.Millisecond))
	mid := c.Value()

	s.emit(el, false)
	s.emit(el, true)
	l.Advance(at(600 * time.Millisecond))

	assert.GreaterOrEqual(t, c.Value(), mid, "re-entering must not restart the run")
	start, ok := c.session.Start()
	require.True(t, ok)
	assert.Equal(t, epoch, start)
	assert.Equal(t, 1, s.released, "subscription is released on trigger")
}

func TestCounterIgnoresNonIntersectingEntries(t *testing.T) {
	l := NewLoop(epoch)
	s := newScriptedSensor()
	el := laidOut(0, 0, 1, 1)
	c := NewCounter(l, s, CounterOptions{End: 10, Duration: time.Second})
	c.Bind(el)

	s.emit(el, false)
	assert.Equal(t, Idle, c.Phase())
	assert.False(t, l.Pending())
}

func TestCounterEdgeCases(t *testing.T) {
	t.Run("zero end settles at zero", func(t *testing.T) {
		l := NewLoop(epoch)
		s := newScriptedSensor()
		el := laidOut(0, 0, 1, 1)
		c := NewCounter(l, s, CounterOptions{End: 0, Duration: time.Second, Suffix: "%"})
		c.Bind(el)
		s.emit(el, true)

		assert.Equal(t, Settled, c.Phase())
		assert.Equal(t, "0%", c.String())
		assert.False(t, l.Pending())
	})

	t.Run("zero duration jumps to end", func(t *testing.T) {
		l := NewLoop(epoch)
		s := newScriptedSensor()
		el := laidOut(0, 0, 1, 1)
		c := NewCounter(l, s, CounterOptions{End: 42, Duration: 0})
		c.Bind(el)
		s.emit(el, true)

		assert.Equal(t, Settled, c.Phase())
		assert.Equal(t, int64(42), c.Value())
		assert.False(t, l.Pending())
	})
}

func TestCounterThresholdIsHalf(t *testing.T) {
	l := NewLoop(epoch)
	s := NewViewportSensor()
	el := laidOut(0, 20, 10, 4)
	c := NewCounter(l, s, CounterOptions{End: 10, Duration: time.Second, Threshold: DefaultCounterThreshold})
	c.Bind(el)

	// One of four rows visible.
	s.SetViewport(Rect{X: 0, Y: 0, W: 80, H: 21})
	assert.Equal(t, Idle, c.Phase())

	// Two of four rows visible.
	s.SetViewport(Rect{X: 0, Y: 2, W: 80, H: 20})
	assert.Equal(t, Triggered, c.Phase())
	assert.Equal(t, 0, s.Active())
}

func TestCounterZeroThresholdFiresOnAnyOverlap(t *testing.T) {
	l := NewLoop(epoch)
	s := NewViewportSensor()
	el := laidOut(0, 0, 10, 100)
	c := NewCounter(l, s, CounterOptions{End: 10, Duration: time.Second, Threshold: 0})
	c.Bind(el)

	// Five of a hundred rows visible.
	s.SetViewport(Rect{X: 0, Y: 95, W: 10, H: 100})
	require.Equal(t, Triggered, c.Phase())

	l.Advance(at(0))
	l.Advance(at(time.Second))
	assert.Equal(t, int64(10), c.Value())
	assert.Equal(t, Settled, c.Phase())
}

func TestCounterUnmountStopsUpdates(t *testing.T) {
	l := NewLoop(epoch)
	s := newScriptedSensor()
	el := laidOut(0, 0, 1, 1)
	c := NewCounter(l, s, CounterOptions{End: 1000, Duration: time.Second})
	c.Bind(el)
	s.emit(el, true)
	l.Advance(at(0))
	l.Advance(at(250 * time.Millisecond))
	before := c.Value()

	c.Unmount()
	assert.False(t, l.Pending())

	l.Advance(at(2 * time.Second))
	s.emit(el, true)
	assert.Equal(t, before, c.Value())
}

func TestCounterUnmountBeforeTrigger(t *testing.T) {
	l := NewLoop(epoch)
	s := newScriptedSensor()
	el := laidOut(0, 0, 1, 1)
	c := NewCounter(l, s, CounterOptions{End: 5, Duration: time.Second})
	c.Bind(el)

	c.Unmount()
	assert.Equal(t, 0, s.live())
	assert.Equal(t, Idle, c.Phase())
}

func TestCounterBind(t *testing.T) {
	l := NewLoop(epoch)
	s := newScriptedSensor()
	c := NewCounter(l, s, CounterOptions{End: 5, Duration: time.Second})

	c.Bind(nil)
	assert.Equal(t, 0, s.observed, "nil element is a no-op")

	first := laidOut(0, 0, 1, 1)
	second := laidOut(0, 5, 1, 1)
	c.Bind(first)
	c.Bind(first)
	assert.Equal(t, 1, s.observed, "rebinding the same element keeps the subscription")

	c.Bind(second)
	assert.Equal(t, 2, s.observed)
	assert.Equal(t, 1, s.live(), "changing element releases the old subscription")

	s.emit(first, true)
	assert.Equal(t, Idle, c.Phase())
	s.emit(second, true)
	assert.Equal(t, Triggered, c.Phase())
}

func TestCounterWithAlwaysVisible(t *testing.T) {
	l := NewLoop(epoch)
	c := NewCounter(l, AlwaysVisible, CounterOptions{End: 30, Duration: 100 * time.Millisecond, Suffix: "+"})
	c.Bind(laidOut(0, 0, 1, 1))

	assert.Equal(t, Triggered, c.Phase())
	l.RunUntilIdle(16*time.Millisecond, time.Second)
	assert.Equal(t, "30+", c.String())
}

func TestCounterPrinterLocale(t *testing.T) {
	l := NewLoop(epoch)
	c := NewCounter(l, AlwaysVisible, CounterOptions{
		End:     1234567,
		Printer: message.NewPrinter(language.German),
	})
	c.Bind(laidOut(0, 0, 1, 1))

	assert.Equal(t, "1.234.567", c.String())
}
