package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/calendar"
	"dayplan/internal/category"
	"dayplan/internal/config"
	"dayplan/internal/editor"
	"dayplan/internal/store"
	"dayplan/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeCalendar
	modeEditor
)

type Model struct {
	store      *store.Store
	cfg        config.Config
	log        *slog.Logger
	now        func() time.Time
	tasks      []task.Task
	cursor     int
	mode       mode
	status     string
	confirmDel bool
	pendingDel *task.Task
	width      int

	cal *calendarView
	ed  *editorView
}

// Run blocks until the user quits.
func Run(s *store.Store, cfg config.Config, log *slog.Logger) error {
	m := New(s, cfg, log, time.Now)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}

func New(s *store.Store, cfg config.Config, log *slog.Logger, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tasks := s.Tasks()
	return Model{
		store:  s,
		cfg:    cfg,
		log:    log,
		now:    now,
		tasks:  tasks,
		cursor: clampCursor(0, len(tasks)),
		status: "Press 'a' to add, space to toggle, 'c' for calendar.",
		mode:   modeList,
		cal:    newCalendarView(now()),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.mode == modeCalendar {
			return m.updateCalendarMouse(msg)
		}
	case nowTickMsg:
		return m.updateNowTick(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.ed != nil {
			m.ed.resize(msg.Width)
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeEditor:
		return m.updateEditorMode(key, msg)
	case modeCalendar:
		return m.updateCalendarMode(key)
	}
	return m.updateListMode(key)
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.tasks) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.tasks))
		}
	case m.cfg.Keys.Add:
		return m.openEditor(editor.NewCreate(task.NewID), modeList)
	case m.cfg.Keys.Open:
		if len(m.tasks) == 0 {
			m.status = "No tasks"
			return m, nil
		}
		return m.openEditor(editor.NewEdit(m.tasks[m.cursor], task.NewID), modeList)
	case m.cfg.Keys.Toggle:
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		if !m.store.Toggle(t.ID) {
			m.status = "Task no longer exists"
		} else {
			m.status = "Toggled task"
		}
		m.reload()
	case m.cfg.Keys.Delete:
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Title)
	case m.cfg.Keys.Calendar:
		return m.enterCalendar()
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
	case "y", "Y":
		if m.pendingDel != nil && m.store.Delete(m.pendingDel.ID) {
			m.status = "Deleted task"
		} else {
			m.status = "Nothing to delete"
		}
		m.reload()
	default:
		return m, nil
	}
	m.confirmDel = false
	m.pendingDel = nil
	return m, nil
}

func (m *Model) reload() {
	m.tasks = m.store.Tasks()
	m.cursor = clampCursor(m.cursor, len(m.tasks))
}

// fail reports err on the status line. Validation errors are the user's to
// fix; anything else is also logged.
func (m *Model) fail(action string, err error) {
	m.status = fmt.Sprintf("%s failed: %v", action, err)
	if !errors.Is(err, task.ErrValidation) {
		m.log.Error(action+" failed", "error", err)
	}
}

func (m Model) View() string {
	switch m.mode {
	case modeCalendar:
		return m.viewCalendar()
	case modeEditor:
		return m.viewEditor()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Today"))
	b.WriteString("  ")
	b.WriteString(subtleStyle.Render(calendar.FormatDay(m.now())))
	b.WriteString("\n\n")
	b.WriteString(renderCategories(category.Summarize(m.tasks)))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString("No tasks yet. Press 'a' to add one.")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, t := range m.tasks {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, checkbox, categoryText(t.Category, t.Title)))
		if n := len(t.SubTasks); n > 0 {
			b.WriteString(subtleStyle.Render(fmt.Sprintf(" (%d/%d)", doneCount(t.SubTasks), n)))
		}
		if t.Scheduled() {
			b.WriteString(subtleStyle.Render(" @" + t.Time))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s open • %s toggle • %s delete • %s calendar • %s quit",
		k.Up, k.Down, k.Add, k.Open, keyName(k.Toggle), k.Delete, k.Calendar, k.Quit)
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func doneCount(subs []task.SubTask) int {
	n := 0
	for _, s := range subs {
		if s.Completed {
			n++
		}
	}
	return n
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	return ti
}
