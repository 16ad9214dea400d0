// Package store holds the session's tasks.
//
// Every mutation publishes a fresh slice, so a snapshot handed to a reader is
// never modified afterwards. Update, Delete and Toggle on an unknown id are
// silent no-ops that report false.
package store

import (
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"dayplan/internal/task"
)

type Store struct {
	mu   sync.Mutex
	seen map[string]struct{}
	snap atomic.Pointer[[]task.Task]
	log  *slog.Logger
}

type Option func(*Store)

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func New(seed []task.Task, opts ...Option) (*Store, error) {
	s := &Store{
		seen: make(map[string]struct{}),
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	empty := []task.Task{}
	s.snap.Store(&empty)
	for _, t := range seed {
		if err := s.Add(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Tasks returns the current tasks in insertion order.
func (s *Store) Tasks() []task.Task {
	cur := *s.snap.Load()
	out := make([]task.Task, len(cur))
	for i, t := range cur {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) Get(id string) (task.Task, bool) {
	cur := *s.snap.Load()
	if i := indexOf(cur, id); i >= 0 {
		return cur[i].Clone(), true
	}
	return task.Task{}, false
}

func (s *Store) Len() int {
	return len(*s.snap.Load())
}

// Add appends t. Ids are unique over the store's lifetime, including ids of
// deleted tasks.
func (s *Store) Add(t task.Task) error {
	if t.ID == "" {
		return task.Invalid("id", "required")
	}
	if !t.Category.Valid() {
		return task.Invalid("category", "unknown category "+string(t.Category))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[t.ID]; ok {
		return task.Invalid("id", "duplicate id "+t.ID)
	}
	cur := *s.snap.Load()
	next := make([]task.Task, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, t.Clone())
	s.seen[t.ID] = struct{}{}
	s.snap.Store(&next)
	s.log.Debug("task added", "id", t.ID, "category", t.Category)
	return nil
}

func (s *Store) Update(id string, p task.Patch) bool {
	return s.replace(id, p.Apply, "task updated")
}

func (s *Store) Toggle(id string) bool {
	return s.replace(id, func(t task.Task) task.Task {
		t.Completed = !t.Completed
		return t
	}, "task toggled")
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.snap.Load()
	i := indexOf(cur, id)
	if i < 0 {
		return false
	}
	next := slices.Delete(slices.Clone(cur), i, i+1)
	s.snap.Store(&next)
	s.log.Debug("task deleted", "id", id)
	return true
}

func (s *Store) replace(id string, fn func(task.Task) task.Task, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.snap.Load()
	i := indexOf(cur, id)
	if i < 0 {
		return false
	}
	next := slices.Clone(cur)
	updated := fn(cur[i].Clone())
	updated.ID = id
	next[i] = updated
	s.snap.Store(&next)
	s.log.Debug(msg, "id", id)
	return true
}

func indexOf(tasks []task.Task, id string) int {
	return slices.IndexFunc(tasks, func(t task.Task) bool { return t.ID == id })
}
