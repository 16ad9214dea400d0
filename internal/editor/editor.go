// Package editor stages edits to a single task. Nothing reaches the store
// until Save.
package editor

import (
	"fmt"
	"slices"
	"strings"

	"dayplan/internal/task"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Writer is the part of the task store the editor commits through.
type Writer interface {
	Add(t task.Task) error
	Update(id string, p task.Patch) bool
}

type Editor struct {
	mode     Mode
	taskID   string
	title    string
	subTasks []task.SubTask
	newID    task.IDFunc
}

func NewCreate(ids task.IDFunc) *Editor {
	if ids == nil {
		ids = task.NewID
	}
	return &Editor{mode: ModeCreate, newID: ids}
}

func NewEdit(t task.Task, ids task.IDFunc) *Editor {
	e := NewCreate(ids)
	e.mode = ModeEdit
	e.taskID = t.ID
	e.title = t.Title
	e.subTasks = task.CloneSubTasks(t.SubTasks)
	return e
}

func (e *Editor) Mode() Mode { return e.mode }

func (e *Editor) TaskID() string { return e.taskID }

func (e *Editor) Title() string { return e.title }

func (e *Editor) SetTitle(s string) { e.title = s }

func (e *Editor) SubTasks() []task.SubTask {
	return task.CloneSubTasks(e.subTasks)
}

// AddSubtask appends a new open subtask. Blank titles are ignored.
func (e *Editor) AddSubtask(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	e.subTasks = append(e.subTasks, task.SubTask{ID: e.newID(), Title: title})
	return true
}

func (e *Editor) ToggleSubtask(id string) bool {
	i := slices.IndexFunc(e.subTasks, func(s task.SubTask) bool { return s.ID == id })
	if i < 0 {
		return false
	}
	e.subTasks[i].Completed = !e.subTasks[i].Completed
	return true
}

// Save commits the buffer and returns the id of the written task. New tasks
// are filed under others. An empty subtask list is written as absent. Saving
// an edit whose task has since been deleted returns task.ErrNotFound.
func (e *Editor) Save(w Writer) (string, error) {
	title := strings.TrimSpace(e.title)
	if title == "" {
		return "", task.Invalid("title", "title required")
	}
	var subs []task.SubTask
	if len(e.subTasks) > 0 {
		subs = task.CloneSubTasks(e.subTasks)
	}

	if e.mode == ModeCreate {
		t := task.Task{
			ID:       e.newID(),
			Title:    title,
			Category: task.Others,
			SubTasks: subs,
		}
		if err := w.Add(t); err != nil {
			return "", err
		}
		return t.ID, nil
	}

	if !w.Update(e.taskID, task.Patch{Title: &title, SubTasks: &subs}) {
		return "", fmt.Errorf("save %s: %w", e.taskID, task.ErrNotFound)
	}
	return e.taskID, nil
}
