package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealFlipsOnceAndStays(t *testing.T) {
	l := NewLoop(epoch)
	s := newScriptedSensor()
	el := laidOut(0, 0, 1, 1)
	r := NewReveal(l, s, RevealOptions{})
	r.Bind(el)
	require.False(t, r.Visible())

	s.emit(el, true)
	assert.True(t, r.Visible())
	assert.Equal(t, Settled, r.Phase())

	for i := 0; i < 5; i++ {
		s.emit(el, false)
		s.emit(el, true)
		assert.True(t, r.Visible())
	}
	assert.Equal(t, 1, s.observed)
}

func TestRevealWaitsForDelay(t *testing.T) {
	l := NewLoop(epoch)
	s := newScriptedSensor()
	el := laidOut(0, 0, 1, 1)
	r := NewReveal(l, s, RevealOptions{Delay: 200 * time.Millisecond})
	r.Bind(el)

	s.emit(el, true)
	assert.Equal(t, Triggered, r.Phase())
	assert.False(t, r.Visible())

	s.emit(el, false)
	l.Advance(at(199 * time.Millisecond))
	assert.False(t, r.Visible())

	l.Advance(at(200 * time.Millisecond))
	assert.True(t, r.Visible(), "leaving the viewport does not cancel a triggered reveal")
	assert.Equal(t, Settled, r.Phase())
}

func TestRevealUnmountCancelsPendingFlip(t *testing.T) {
	l := NewLoop(epoch)
	s := newScriptedSensor()
	el := laidOut(0, 0, 1, 1)
	r := NewReveal(l, s, RevealOptions{Delay: 100 * time.Millisecond})
	r.Bind(el)
	s.emit(el, true)

	r.Unmount()
	assert.False(t, l.Pending())

	l.Advance(at(time.Second))
	assert.False(t, r.Visible())
	assert.Equal(t, Triggered, r.Phase())
}

func TestRevealThresholdIsTenPercent(t *testing.T) {
	l := NewLoop(epoch)
	s := NewViewportSensor()
	el := laidOut(0, 30, 40, 20)
	r := NewReveal(l, s, RevealOptions{Threshold: DefaultRevealThreshold})
	r.Bind(el)

	// One of twenty rows: 5%.
	s.SetViewport(Rect{X: 0, Y: 0, W: 80, H: 31})
	assert.False(t, r.Visible())

	// Two of twenty rows: 10%.
	s.SetViewport(Rect{X: 0, Y: 1, W: 80, H: 31})
	assert.True(t, r.Visible())
}

func TestRevealZeroThresholdFiresOnAnyOverlap(t *testing.T) {
	l := NewLoop(epoch)
	s := NewViewportSensor()
	el := laidOut(0, 0, 10, 100)
	r := NewReveal(l, s, RevealOptions{Threshold: 0})
	r.Bind(el)

	s.SetViewport(Rect{X: 0, Y: 95, W: 10, H: 100})
	l.Advance(at(time.Second))
	assert.True(t, r.Visible())
	assert.Equal(t, Settled, r.Phase())
}

func TestRevealEntryTransitionSettles(t *testing.T) {
	l := NewLoop(epoch)
	r := NewReveal(l, AlwaysVisible, RevealOptions{Entry: NewTransition(60, 2)})
	assert.Equal(t, 2, r.Offset(), "hidden blocks sit at the full distance")

	r.Bind(laidOut(0, 0, 1, 1))
	require.True(t, r.Visible())
	assert.True(t, l.Pending())

	prev := r.Progress()
	for l.Pending() {
		l.Advance(l.Now().Add(16 * time.Millisecond))
		require.GreaterOrEqual(t, r.Progress(), prev)
		prev = r.Progress()
		require.Less(t, l.Now(), at(5*time.Second), "spring never settled")
	}
	assert.Equal(t, 0, r.Offset())
	assert.Equal(t, 1.0, r.Progress())
}

func TestRevealUnmountStopsEntryTransition(t *testing.T) {
	l := NewLoop(epoch)
	tr := NewTransition(60, 3)
	r := NewReveal(l, AlwaysVisible, RevealOptions{Entry: tr})
	r.Bind(laidOut(0, 0, 1, 1))
	l.Advance(at(16 * time.Millisecond))
	offset := r.Offset()

	r.Unmount()
	assert.False(t, l.Pending())
	l.Advance(at(time.Second))
	assert.Equal(t, offset, r.Offset())
}

func TestRevealWithoutTransition(t *testing.T) {
	l := NewLoop(epoch)
	r := NewReveal(l, AlwaysVisible, RevealOptions{})
	assert.Equal(t, 0.0, r.Progress())
	r.Bind(laidOut(0, 0, 1, 1))
	assert.Equal(t, 0, r.Offset())
	assert.Equal(t, 1.0, r.Progress())
	assert.False(t, l.Pending())
}

func TestTransitionZeroDistance(t *testing.T) {
	tr := NewTransition(60, 0)
	assert.True(t, tr.Settled())
	assert.False(t, tr.Step())
	assert.Equal(t, 1.0, tr.Progress())
}
