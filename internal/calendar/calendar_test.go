package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayplan/internal/task"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDaysInMonth(t *testing.T) {
	jan := DaysInMonth(date(2024, time.January, 17))
	require.Len(t, jan, 31)
	assert.Equal(t, 1, jan[0].Date.Day())
	assert.Equal(t, 31, jan[30].Date.Day())
	assert.Equal(t, "MON", jan[0].Label)
	assert.Equal(t, 1, jan[0].Number)

	assert.Len(t, DaysInMonth(date(2024, time.February, 1)), 29)
	assert.Len(t, DaysInMonth(date(2023, time.February, 1)), 28)
	assert.Len(t, DaysInMonth(date(2024, time.April, 30)), 30)
}

func TestNavigateMonthWrapsYear(t *testing.T) {
	e := New(date(2024, time.November, 10))
	e.NavigateMonth(Next)
	assert.Equal(t, time.December, e.CurrentMonth().Month())
	assert.Equal(t, 2024, e.CurrentMonth().Year())

	e.NavigateMonth(Next)
	assert.Equal(t, time.January, e.CurrentMonth().Month())
	assert.Equal(t, 2025, e.CurrentMonth().Year())
	assert.Len(t, e.Days(), 31)

	e.NavigateMonth(Previous)
	e.NavigateMonth(Previous)
	assert.Equal(t, time.November, e.CurrentMonth().Month())
	assert.Equal(t, 2024, e.CurrentMonth().Year())
}

func TestNavigateMonthClampsDay(t *testing.T) {
	e := New(date(2024, time.January, 31))
	e.NavigateMonth(Next)
	assert.Equal(t, date(2024, time.February, 29), e.CurrentMonth())
	assert.Len(t, e.Days(), 29)

	e = New(date(2023, time.March, 31))
	e.NavigateMonth(Previous)
	assert.Equal(t, date(2023, time.February, 28), e.CurrentMonth())
}

func TestMonthAndSelectionAreIndependent(t *testing.T) {
	e := New(date(2024, time.March, 5))
	e.SelectDate(date(2024, time.March, 20))
	e.NavigateMonth(Next)

	assert.Equal(t, date(2024, time.March, 20), e.SelectedDate())
	assert.Equal(t, time.April, e.CurrentMonth().Month())

	e.SelectDate(date(2025, time.July, 1))
	assert.Equal(t, time.April, e.CurrentMonth().Month())
}

func TestSelectDateTruncatesToDay(t *testing.T) {
	e := New(date(2024, time.March, 5))
	e.SelectDate(time.Date(2024, time.March, 9, 14, 30, 0, 0, time.Local))
	assert.Equal(t, date(2024, time.March, 9), e.SelectedDate())

	e.SelectDate(time.Time{})
	assert.Equal(t, date(2024, time.March, 9), e.SelectedDate())
}

func TestSlotsForDayFirstTaskWins(t *testing.T) {
	tasks := []task.Task{
		{ID: "1", Time: "06:00"},
		{ID: "2", Time: "06:00"},
		{ID: "3", Time: "10:30"},
		{ID: "4"},
		{ID: "5", Time: "23:00"},
	}
	slots := SlotsForDay(tasks, date(2024, time.March, 5))

	require.Len(t, slots, 24)
	assert.Equal(t, "00:00", slots[0].Label)
	assert.Equal(t, "23:00", slots[23].Label)
	require.NotNil(t, slots[6].Task)
	assert.Equal(t, "1", slots[6].Task.ID)
	require.NotNil(t, slots[23].Task)
	assert.Equal(t, "5", slots[23].Task.ID)

	placed := 0
	for _, s := range slots {
		if s.Task != nil {
			placed++
		}
	}
	assert.Equal(t, 2, placed)
}

func TestSlotsForDayHonoursPinnedDate(t *testing.T) {
	day := date(2024, time.March, 5)
	tasks := []task.Task{
		{ID: "other", Time: "08:00", Date: date(2024, time.March, 6)},
		{ID: "pinned", Time: "08:00", Date: time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)},
		{ID: "any", Time: "09:00"},
	}
	slots := SlotsForDay(tasks, day)
	require.NotNil(t, slots[8].Task)
	assert.Equal(t, "pinned", slots[8].Task.ID)
	require.NotNil(t, slots[9].Task)
	assert.Equal(t, "any", slots[9].Task.ID)
}

func TestCurrentTimeOffset(t *testing.T) {
	assert.Equal(t, 0.0, CurrentTimeOffset(date(2024, time.March, 5)))
	now := time.Date(2024, time.March, 5, 10, 30, 0, 0, time.Local)
	assert.InDelta(t, 10*SlotHeight+SlotHeight/2, CurrentTimeOffset(now), 1e-9)
}

func TestStateShowsMarkerOnlyForToday(t *testing.T) {
	now := time.Date(2024, time.March, 5, 6, 15, 0, 0, time.Local)
	e := New(now)

	st := e.State(task.Demo(), now)
	assert.True(t, st.ShowNowMarker)
	assert.InDelta(t, 6*SlotHeight+SlotHeight/4, st.NowOffset, 1e-9)
	assert.Len(t, st.Slots, 24)
	assert.Len(t, st.Days, 31)
	require.NotNil(t, st.Slots[6].Task)
	assert.Equal(t, "1", st.Slots[6].Task.ID)

	e.SelectDate(date(2024, time.March, 6))
	st = e.State(task.Demo(), now)
	assert.False(t, st.ShowNowMarker)
	assert.Zero(t, st.NowOffset)
}

func TestWeekDaysStartMonday(t *testing.T) {
	week := WeekDays(time.Date(2024, time.March, 10, 15, 0, 0, 0, time.Local))
	require.Len(t, week, 7)
	assert.Equal(t, date(2024, time.March, 4), week[0])
	assert.Equal(t, time.Monday, week[0].Weekday())
	assert.Equal(t, date(2024, time.March, 10), week[6])
}

func TestFormatDayAndTodayIndex(t *testing.T) {
	assert.Equal(t, "5 Mar", FormatDay(date(2024, time.March, 5)))

	days := DaysInMonth(date(2024, time.March, 1))
	assert.Equal(t, 4, TodayIndex(days, time.Date(2024, time.March, 5, 9, 0, 0, 0, time.Local)))
	assert.Equal(t, -1, TodayIndex(days, date(2024, time.April, 5)))
}
