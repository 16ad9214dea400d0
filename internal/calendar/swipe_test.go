package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func swipe(e *Engine, dx, dy float64) bool {
	var s Swipe
	s.Move(dx, dy)
	_, ok := e.EndSwipe(&s, dx)
	return ok
}

func TestSwipePagesMonths(t *testing.T) {
	e := New(date(2024, time.March, 12))

	assert.True(t, swipe(e, -60, 5))
	assert.Equal(t, time.April, e.CurrentMonth().Month())

	assert.False(t, swipe(e, -20, 0))
	assert.Equal(t, time.April, e.CurrentMonth().Month())

	assert.True(t, swipe(e, 80, -10))
	assert.Equal(t, time.March, e.CurrentMonth().Month())
}

func TestSwipeIgnoresVerticalDrag(t *testing.T) {
	e := New(date(2024, time.March, 12))
	assert.False(t, swipe(e, -90, 60))
	assert.Equal(t, time.March, e.CurrentMonth().Month())
}

func TestSwipeClaimedButShortReleaseIsIgnored(t *testing.T) {
	e := New(date(2024, time.March, 12))
	assert.False(t, swipe(e, -40, 0))
	assert.Equal(t, time.March, e.CurrentMonth().Month())
}

func TestSwipeTracker(t *testing.T) {
	var s Swipe
	s.Move(-10, 0)
	assert.False(t, s.Claimed())
	s.Move(-35, 4)
	assert.True(t, s.Claimed())
	s.Move(-70, 70)
	assert.True(t, s.Claimed())

	dir, ok := s.Release(-70)
	assert.True(t, ok)
	assert.Equal(t, Next, dir)
	assert.False(t, s.Claimed())

	_, ok = s.Release(-70)
	assert.False(t, ok)
}

func TestIsPagingGesture(t *testing.T) {
	assert.True(t, IsPagingGesture(31, 0))
	assert.True(t, IsPagingGesture(-31, 49))
	assert.False(t, IsPagingGesture(30, 0))
	assert.False(t, IsPagingGesture(40, 50))
}

func TestEndSwipeNavigatesOnce(t *testing.T) {
	e := New(date(2024, time.March, 12))
	var s Swipe
	s.Move(70, 0)

	dir, ok := e.EndSwipe(&s, 70)
	assert.True(t, ok)
	assert.Equal(t, Previous, dir)
	assert.Equal(t, time.February, e.CurrentMonth().Month())

	_, ok = e.EndSwipe(&s, 70)
	assert.False(t, ok)
	assert.Equal(t, time.February, e.CurrentMonth().Month())
}
