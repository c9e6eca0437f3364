package app

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// scroller eases the viewport offset toward a jump target.
type scroller struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	active bool
}

func newScroller(fps int) scroller {
	if fps <= 0 {
		fps = 60
	}
	return scroller{spring: harmonica.NewSpring(harmonica.FPS(fps), 7.0, 1.0)}
}

// jump starts a move from the current offset to target.
func (s *scroller) jump(from, to int) {
	if from == to {
		s.stop()
		return
	}
	if !s.active {
		s.pos, s.vel = float64(from), 0
	}
	s.target = float64(to)
	s.active = true
}

// step advances one frame and returns the offset to show.
func (s *scroller) step() int {
	if !s.active {
		return int(math.Round(s.pos))
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < 0.5 && math.Abs(s.vel) < 0.5 {
		s.pos, s.vel = s.target, 0
		s.active = false
	}
	return int(math.Round(s.pos))
}

func (s *scroller) stop() {
	s.active = false
	s.vel = 0
}
