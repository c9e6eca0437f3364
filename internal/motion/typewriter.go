package motion

import "time"

// DefaultTypewriterDelay is the pause between revealed characters.
const DefaultTypewriterDelay = 100 * time.Millisecond

// Typewriter reveals a string one rune per tick. It does not depend on
// visibility; it starts typing as soon as Start is called.
type Typewriter struct {
	sched   Scheduler
	source  string
	text    []rune
	delay   time.Duration
	emitted int
	ticks   int
	cancel  CancelFunc
	started bool
	stopped bool
}

// NewTypewriter creates a stopped typewriter for text.
func NewTypewriter(s Scheduler, text string, delay time.Duration) *Typewriter {
	return &Typewriter{
		sched:  s,
		source: text,
		text:   []rune(text),
		delay:  max(delay, 0),
	}
}

// Start schedules the first tick. Later calls are no-ops.
func (t *Typewriter) Start() {
	if t.started || t.stopped {
		return
	}
	t.started = true
	t.schedule()
}

// SetText replaces the source text. A different text resets the prefix to
// empty and restarts typing; the same text changes nothing.
func (t *Typewriter) SetText(text string) {
	if text == t.source || t.stopped {
		return
	}
	t.source = text
	t.text = []rune(text)
	t.emitted = 0
	t.ticks = 0
	if t.started {
		t.schedule()
	}
}

// SetDelay changes the inter-character delay. Progress is kept; the pending
// tick is rescheduled with the new delay.
func (t *Typewriter) SetDelay(d time.Duration) {
	d = max(d, 0)
	if d == t.delay || t.stopped {
		return
	}
	t.delay = d
	if t.started {
		t.schedule()
	}
}

// Stop cancels the pending tick. No state changes after Stop.
func (t *Typewriter) Stop() {
	t.stopped = true
	t.clear()
}

// Text returns the revealed prefix.
func (t *Typewriter) Text() string {
	return string(t.text[:t.emitted])
}

// Source returns the full text being typed.
func (t *Typewriter) Source() string {
	return t.source
}

// Emitted returns the number of revealed runes.
func (t *Typewriter) Emitted() int {
	return t.emitted
}

// Ticks returns the number of ticks run for the current text.
func (t *Typewriter) Ticks() int {
	return t.ticks
}

// Done reports whether the whole text is revealed.
func (t *Typewriter) Done() bool {
	return t.emitted >= len(t.text)
}

func (t *Typewriter) schedule() {
	t.clear()
	if t.Done() {
		return
	}
	t.cancel = t.sched.After(t.delay, t.tick)
}

func (t *Typewriter) tick() {
	t.cancel = nil
	if t.stopped || t.Done() {
		return
	}
	t.emitted++
	t.ticks++
	t.schedule()
}

func (t *Typewriter) clear() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
