package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/editor"
	"dayplan/internal/task"
)

type editorFocus int

const (
	focusTitle editorFocus = iota
	focusNewSubtask
	focusSubtasks
)

type editorView struct {
	buf      *editor.Editor
	title    textinput.Model
	subtask  textinput.Model
	focus    editorFocus
	cursor   int
	returnTo mode
}

func editorFor(t task.Task) *editor.Editor {
	return editor.NewEdit(t, task.NewID)
}

func (m Model) openEditor(buf *editor.Editor, returnTo mode) (tea.Model, tea.Cmd) {
	ev := &editorView{
		buf:      buf,
		title:    newInput("Task title"),
		subtask:  newInput("Add subtask"),
		returnTo: returnTo,
	}
	ev.title.SetValue(buf.Title())
	if m.width > 0 {
		ev.resize(m.width)
	}
	m.ed = ev
	m.mode = modeEditor
	if buf.Mode() == editor.ModeCreate {
		m.status = "New task: type a title, tab to subtasks, ctrl+s to save"
	} else {
		m.status = "Editing task: tab to move, ctrl+s to save, esc to discard"
	}
	return m, ev.setFocus(focusTitle)
}

func (ev *editorView) resize(width int) {
	ev.title.Width = width - 10
	ev.subtask.Width = width - 10
}

func (ev *editorView) setFocus(f editorFocus) tea.Cmd {
	ev.focus = f
	ev.title.Blur()
	ev.subtask.Blur()
	switch f {
	case focusTitle:
		return ev.title.Focus()
	case focusNewSubtask:
		return ev.subtask.Focus()
	}
	return nil
}

func (m Model) closeEditor(status string) (tea.Model, tea.Cmd) {
	returnTo := m.ed.returnTo
	m.ed = nil
	m.mode = modeList
	m.reload()
	if returnTo == modeCalendar {
		next, cmd := m.enterCalendar()
		nm := next.(Model)
		nm.status = status
		return nm, cmd
	}
	m.status = status
	return m, nil
}

func (m Model) updateEditorMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ev := m.ed
	switch key {
	case m.cfg.Keys.Cancel:
		return m.closeEditor("Edit discarded")
	case m.cfg.Keys.Save:
		ev.buf.SetTitle(ev.title.Value())
		id, err := ev.buf.Save(m.store)
		if err != nil {
			m.fail("save", err)
			return m, nil
		}
		m.log.Info("task saved", "id", id)
		next, cmd := m.closeEditor("Saved task")
		nm := next.(Model)
		for i, t := range nm.tasks {
			if t.ID == id {
				nm.cursor = i
				break
			}
		}
		return nm, cmd
	case "tab":
		return m, ev.setFocus((ev.focus + 1) % 3)
	case "shift+tab":
		return m, ev.setFocus((ev.focus + 2) % 3)
	}

	switch ev.focus {
	case focusTitle:
		if key == m.cfg.Keys.Confirm {
			return m, ev.setFocus(focusNewSubtask)
		}
		var cmd tea.Cmd
		ev.title, cmd = ev.title.Update(msg)
		return m, cmd
	case focusNewSubtask:
		if key == m.cfg.Keys.Confirm {
			if ev.buf.AddSubtask(ev.subtask.Value()) {
				ev.subtask.SetValue("")
			}
			return m, nil
		}
		var cmd tea.Cmd
		ev.subtask, cmd = ev.subtask.Update(msg)
		return m, cmd
	default:
		subs := ev.buf.SubTasks()
		switch key {
		case m.cfg.Keys.Down, "down":
			ev.cursor = clampCursor(ev.cursor+1, len(subs))
		case m.cfg.Keys.Up, "up":
			ev.cursor = clampCursor(ev.cursor-1, len(subs))
		case m.cfg.Keys.Toggle:
			if len(subs) > 0 {
				ev.buf.ToggleSubtask(subs[clampCursor(ev.cursor, len(subs))].ID)
			}
		}
	}
	return m, nil
}

func (m Model) viewEditor() string {
	ev := m.ed
	var b strings.Builder
	heading := "Edit task"
	if ev.buf.Mode() == editor.ModeCreate {
		heading = "New task"
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(ev.title.View())
	b.WriteString("\n\n")

	for i, st := range ev.buf.SubTasks() {
		cursor := " "
		if ev.focus == focusSubtasks && i == ev.cursor {
			cursor = ">"
		}
		checkbox := "[ ]"
		if st.Completed {
			checkbox = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, st.Title))
	}
	b.WriteString("  [ ] ")
	b.WriteString(ev.subtask.View())
	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("tab focus • %s add subtask • %s toggle • %s save • %s discard",
		m.cfg.Keys.Confirm, keyName(m.cfg.Keys.Toggle), m.cfg.Keys.Save, m.cfg.Keys.Cancel)))
	return b.String()
}
