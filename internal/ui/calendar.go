package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/calendar"
)

const (
	nowRefresh   = time.Minute
	visibleHours = 12
)

// nowTickMsg refreshes the current-time marker. gen ties the tick to one
// activation of the calendar screen.
type nowTickMsg struct {
	gen int
	at  time.Time
}

type calendarView struct {
	engine  *calendar.Engine
	now     time.Time
	tickGen int
	hour    int
	scroll  int

	dragging bool
	dragX    int
	dragY    int
	swipe    calendar.Swipe
}

func newCalendarView(now time.Time) *calendarView {
	return &calendarView{engine: calendar.New(now), now: now}
}

func tickNow(gen int) tea.Cmd {
	return tea.Tick(nowRefresh, func(t time.Time) tea.Msg {
		return nowTickMsg{gen: gen, at: t}
	})
}

func (m Model) enterCalendar() (tea.Model, tea.Cmd) {
	m.mode = modeCalendar
	m.cal.tickGen++
	m.cal.now = m.now()
	m.cal.hour = m.cal.now.Hour()
	m.cal.scroll = clampScroll(m.cal.hour - 2)
	m.status = "Calendar: [/] month • h/l day • j/k hour • enter open • esc back"
	return m, tickNow(m.cal.tickGen)
}

// leaveCalendar invalidates any tick still in flight.
func (m *Model) leaveCalendar() {
	m.cal.tickGen++
	m.cal.dragging = false
	m.mode = modeList
}

func (m Model) updateNowTick(msg nowTickMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeCalendar || msg.gen != m.cal.tickGen {
		return m, nil
	}
	m.cal.now = msg.at
	return m, tickNow(msg.gen)
}

func (m Model) updateCalendarMode(key string) (tea.Model, tea.Cmd) {
	c := m.cal
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Cancel, m.cfg.Keys.Calendar:
		m.leaveCalendar()
		m.status = "Back to list"
	case m.cfg.Keys.PrevMonth:
		c.engine.NavigateMonth(calendar.Previous)
	case m.cfg.Keys.NextMonth:
		c.engine.NavigateMonth(calendar.Next)
	case m.cfg.Keys.PrevDay, "left":
		c.engine.SelectDate(c.engine.SelectedDate().AddDate(0, 0, -1))
	case m.cfg.Keys.NextDay, "right":
		c.engine.SelectDate(c.engine.SelectedDate().AddDate(0, 0, 1))
	case "t":
		c.engine.SelectDate(m.now())
	case m.cfg.Keys.Down, "down":
		c.hour = min(c.hour+1, calendar.HoursPerDay-1)
		if c.hour >= c.scroll+visibleHours {
			c.scroll = clampScroll(c.hour - visibleHours + 1)
		}
	case m.cfg.Keys.Up, "up":
		c.hour = max(c.hour-1, 0)
		if c.hour < c.scroll {
			c.scroll = clampScroll(c.hour)
		}
	case m.cfg.Keys.Open:
		slots := calendar.SlotsForDay(m.store.Tasks(), c.engine.SelectedDate())
		t := slots[c.hour].Task
		if t == nil {
			m.status = "No task at " + slots[c.hour].Label
			return m, nil
		}
		m.leaveCalendar()
		return m.openEditor(editorFor(*t), modeCalendar)
	}
	return m, nil
}

// updateCalendarMouse turns a left-button drag into a month swipe. Cell
// offsets are scaled to points so the gesture thresholds apply.
func (m Model) updateCalendarMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	c := m.cal
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		c.dragging = true
		c.dragX, c.dragY = msg.X, msg.Y
		c.swipe = calendar.Swipe{}
	case tea.MouseActionMotion:
		if c.dragging {
			dx, dy := m.dragDelta(msg)
			c.swipe.Move(dx, dy)
			if c.swipe.Claimed() {
				m.status = "Release to change month"
			}
		}
	case tea.MouseActionRelease:
		if !c.dragging {
			return m, nil
		}
		c.dragging = false
		dx, dy := m.dragDelta(msg)
		c.swipe.Move(dx, dy)
		claimed := c.swipe.Claimed()
		if dir, ok := c.engine.EndSwipe(&c.swipe, dx); ok {
			m.status = fmt.Sprintf("Swiped to %s month", dir)
		} else if claimed {
			m.status = "Swipe too short to change month"
		}
	}
	return m, nil
}

func (m Model) dragDelta(msg tea.MouseMsg) (float64, float64) {
	dx := float64((msg.X - m.cal.dragX) * m.cfg.CellWidth)
	dy := float64((msg.Y - m.cal.dragY) * m.cfg.CellHeight)
	return dx, dy
}

func (m Model) viewCalendar() string {
	c := m.cal
	st := c.engine.State(m.store.Tasks(), c.now)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Calendar"))
	b.WriteString("  ")
	b.WriteString(subtleStyle.Render(st.CurrentMonth.Format("January 2006")))
	b.WriteString("\n\n")
	b.WriteString(renderDayStrip(st, c.now))
	b.WriteString("\n\n")

	markerRow := -1
	if st.ShowNowMarker {
		markerRow = int(st.NowOffset / calendar.SlotHeight)
	}
	for _, slot := range st.Slots[c.scroll:min(c.scroll+visibleHours, len(st.Slots))] {
		cursor := " "
		if slot.Hour == c.hour {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s │ %s\n", cursor, slot.Label, renderSlotTask(slot.Task)))
		if slot.Hour == markerRow {
			b.WriteString(nowLine(m.width, c.now.Format("15:04")))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	return b.String()
}

// stripAnchor picks the day whose week the strip shows: the selected date
// when it lies in the displayed month, then today, then the first of the
// month.
func stripAnchor(st calendar.State, now time.Time) time.Time {
	if i := calendar.TodayIndex(st.Days, st.SelectedDate); i >= 0 {
		return st.Days[i].Date
	}
	if i := calendar.TodayIndex(st.Days, now); i >= 0 {
		return st.Days[i].Date
	}
	return st.Days[0].Date
}

// stripDays returns the Monday-start week around the anchor, limited to days
// of the displayed month.
func stripDays(st calendar.State, now time.Time) []calendar.Day {
	week := calendar.WeekDays(stripAnchor(st, now))
	days := make([]calendar.Day, 0, len(week))
	for _, d := range week {
		if i := calendar.TodayIndex(st.Days, d); i >= 0 {
			days = append(days, st.Days[i])
		}
	}
	return days
}

func renderDayStrip(st calendar.State, now time.Time) string {
	days := stripDays(st, now)
	cells := make([]string, 0, len(days))
	for _, d := range days {
		cell := fmt.Sprintf("%s %2d", d.Label, d.Number)
		switch {
		case calendar.SameDay(d.Date, st.SelectedDate):
			cell = selectedStyle.Render(cell)
		case calendar.SameDay(d.Date, now):
			cell = nowStyle.Render(cell)
		default:
			cell = subtleStyle.Render(cell)
		}
		cells = append(cells, cell)
	}
	return strings.Join(cells, "  ")
}

func clampScroll(s int) int {
	return max(min(s, calendar.HoursPerDay-visibleHours), 0)
}
