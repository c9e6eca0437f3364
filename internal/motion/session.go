package motion

import "time"

// Phase is the lifecycle stage of a one-shot animation.
type Phase int

const (
	// Idle waits for the first qualifying visibility entry.
	Idle Phase = iota
	// Triggered is running its delay or animation.
	Triggered
	// Settled has reached its final state for the life of the instance.
	Settled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Triggered:
		return "triggered"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Session is the per-instance record of one counter or reveal run.
// Phases only move forward. After Teardown every mutation is ignored, so a
// callback that slips past cancellation cannot change unmounted state.
type Session struct {
	phase   Phase
	start   time.Time
	stamped bool
	torn    bool
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Live reports whether the owning instance is still mounted.
func (s *Session) Live() bool {
	return !s.torn
}

// Trigger moves Idle to Triggered. It returns false if the session already
// fired or has been torn down.
func (s *Session) Trigger() bool {
	if s.torn || s.phase != Idle {
		return false
	}
	s.phase = Triggered
	return true
}

// Stamp records now as the start timestamp on first call and returns the
// recorded start.
func (s *Session) Stamp(now time.Time) time.Time {
	if !s.stamped && !s.torn {
		s.start = now
		s.stamped = true
	}
	return s.start
}

// Start returns the start timestamp, if one was recorded.
func (s *Session) Start() (time.Time, bool) {
	return s.start, s.stamped
}

// Settle moves Triggered to Settled.
func (s *Session) Settle() {
	if s.torn || s.phase != Triggered {
		return
	}
	s.phase = Settled
}

// Teardown marks the session as unmounted.
func (s *Session) Teardown() {
	s.torn = true
}
