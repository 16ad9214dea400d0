// Package calendar places scheduled tasks on a 24-hour day timeline and
// tracks which month and day the user is looking at.
//
// The displayed month and the selected date are independent: paging months
// never moves the selection, and selecting a date never pages the month.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"dayplan/internal/task"
)

// SlotHeight is the height of one hourly slot in points.
const SlotHeight = 68.0

const HoursPerDay = 24

type Direction int

const (
	Previous Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

type Day struct {
	Label  string
	Number int
	Date   time.Time
}

type Slot struct {
	Hour  int
	Label string
	Task  *task.Task
}

type State struct {
	CurrentMonth  time.Time
	SelectedDate  time.Time
	Days          []Day
	Slots         []Slot
	ShowNowMarker bool
	NowOffset     float64
}

type Engine struct {
	currentMonth time.Time
	selectedDate time.Time
	days         []Day
}

func New(now time.Time) *Engine {
	today := startOfDay(now)
	return &Engine{
		currentMonth: today,
		selectedDate: today,
		days:         DaysInMonth(today),
	}
}

func (e *Engine) CurrentMonth() time.Time { return e.currentMonth }
func (e *Engine) SelectedDate() time.Time { return e.selectedDate }

func (e *Engine) Days() []Day {
	out := make([]Day, len(e.days))
	copy(out, e.days)
	return out
}

// NavigateMonth moves the displayed month by one. The day of month is clamped
// so Jan 31 becomes the last day of February.
func (e *Engine) NavigateMonth(dir Direction) {
	step := 1
	if dir == Previous {
		step = -1
	}
	e.currentMonth = addMonths(e.currentMonth, step)
	e.days = DaysInMonth(e.currentMonth)
}

func (e *Engine) SelectDate(d time.Time) {
	if d.IsZero() {
		return
	}
	e.selectedDate = startOfDay(d)
}

// ShowsNowMarker reports whether the current-time line belongs on the
// selected day.
func (e *Engine) ShowsNowMarker(now time.Time) bool {
	return SameDay(e.selectedDate, now)
}

// EndSwipe releases s at dx and pages the month when the drag qualifies.
func (e *Engine) EndSwipe(s *Swipe, dx float64) (Direction, bool) {
	dir, ok := s.Release(dx)
	if ok {
		e.NavigateMonth(dir)
	}
	return dir, ok
}

func (e *Engine) State(tasks []task.Task, now time.Time) State {
	st := State{
		CurrentMonth:  e.currentMonth,
		SelectedDate:  e.selectedDate,
		Days:          e.Days(),
		Slots:         SlotsForDay(tasks, e.selectedDate),
		ShowNowMarker: e.ShowsNowMarker(now),
	}
	if st.ShowNowMarker {
		st.NowOffset = CurrentTimeOffset(now)
	}
	return st
}

// DaysInMonth lists every day of month's calendar month in order.
func DaysInMonth(month time.Time) []Day {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	n := daysIn(month.Year(), month.Month(), month.Location())
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		d := first.AddDate(0, 0, i)
		days = append(days, Day{
			Label:  strings.ToUpper(d.Format("Mon")),
			Number: d.Day(),
			Date:   d,
		})
	}
	return days
}

// SlotsForDay returns one slot per hour. A task lands in a slot only when its
// time is exactly "HH:00"; "10:30" is never shown. When several tasks share
// an hour the first one wins. Tasks pinned to another date are skipped.
func SlotsForDay(tasks []task.Task, day time.Time) []Slot {
	slots := make([]Slot, HoursPerDay)
	for h := range slots {
		slots[h] = Slot{Hour: h, Label: HourLabel(h)}
	}
	for i := range tasks {
		t := tasks[i]
		if !t.Scheduled() {
			continue
		}
		if !t.Date.IsZero() && !SameDay(t.Date, day) {
			continue
		}
		for h := range slots {
			if slots[h].Task == nil && t.Time == slots[h].Label {
				slots[h].Task = &t
				break
			}
		}
	}
	return slots
}

func HourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// CurrentTimeOffset is the vertical position of now on the timeline.
func CurrentTimeOffset(now time.Time) float64 {
	return float64(now.Hour())*SlotHeight + float64(now.Minute())/60*SlotHeight
}

// WeekDays returns the Monday-start week containing date.
func WeekDays(date time.Time) []time.Time {
	d := startOfDay(date)
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	week := make([]time.Time, 7)
	for i := range week {
		week[i] = start.AddDate(0, 0, i)
	}
	return week
}

// FormatDay renders a date as "2 Jan".
func FormatDay(d time.Time) string {
	return d.Format("2 Jan")
}

// TodayIndex is the position of now in days, or -1.
func TodayIndex(days []Day, now time.Time) int {
	for i, d := range days {
		if SameDay(d.Date, now) {
			return i
		}
	}
	return -1
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	day := min(t.Day(), daysIn(first.Year(), first.Month(), first.Location()))
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
}
