package task

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	Health       Category = "health"
	Work         Category = "work"
	MentalHealth Category = "mentalHealth"
	Others       Category = "others"
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{Health, Work, MentalHealth, Others}
}

func (c Category) Valid() bool {
	switch c {
	case Health, Work, MentalHealth, Others:
		return true
	}
	return false
}

type SubTask struct {
	ID        string
	Title     string
	Completed bool
}

// Task is a unit of work. An empty Time means the task is unscheduled; a zero
// Date means the task is not pinned to a calendar day.
type Task struct {
	ID        string
	Title     string
	Category  Category
	Completed bool
	Time      string
	Duration  string
	Date      time.Time
	SubTasks  []SubTask
}

func (t Task) Scheduled() bool {
	return t.Time != ""
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	t.SubTasks = CloneSubTasks(t.SubTasks)
	return t
}

func CloneSubTasks(subs []SubTask) []SubTask {
	if subs == nil {
		return nil
	}
	return slices.Clone(subs)
}

// Patch is a partial update. Nil fields are left untouched. A non-nil
// SubTasks pointing at a nil slice clears the subtasks.
type Patch struct {
	Title     *string
	Category  *Category
	Completed *bool
	Time      *string
	Duration  *string
	Date      *time.Time
	SubTasks  *[]SubTask
}

func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.SubTasks != nil {
		t.SubTasks = CloneSubTasks(*p.SubTasks)
	}
	return t
}

// IDFunc produces fresh identifiers.
type IDFunc func() string

func NewID() string {
	return uuid.NewString()
}
