package calendar

import "math"

const (
	claimDX   = 30
	claimDY   = 50
	releaseDX = 50
)

// IsPagingGesture reports whether a drag is horizontal enough to page months
// rather than scroll.
func IsPagingGesture(dx, dy float64) bool {
	return math.Abs(dx) > claimDX && math.Abs(dy) < claimDY
}

// Swipe tracks one drag. Move is called with the accumulated offset while the
// pointer moves; Release decides whether the drag pages.
type Swipe struct {
	claimed bool
}

func (s *Swipe) Move(dx, dy float64) {
	if !s.claimed && IsPagingGesture(dx, dy) {
		s.claimed = true
	}
}

func (s *Swipe) Claimed() bool { return s.claimed }

func (s *Swipe) Release(dx float64) (Direction, bool) {
	claimed := s.claimed
	s.claimed = false
	if !claimed {
		return 0, false
	}
	switch {
	case dx < -releaseDX:
		return Next, true
	case dx > releaseDX:
		return Previous, true
	}
	return 0, false
}
