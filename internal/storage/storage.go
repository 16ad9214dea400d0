// Package storage writes a session's tasks to a SQLite archive. The app never
// reads the archive back at startup.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"dayplan/internal/task"
)

const dateLayout = "2006-01-02"

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	category TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	time TEXT NOT NULL DEFAULT '',
	duration TEXT NOT NULL DEFAULT '',
	day TEXT DEFAULT NULL,
	exported_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS subtasks (
	task_id TEXT NOT NULL,
	id TEXT NOT NULL,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (task_id, id)
);`
	_, err := s.db.Exec(ddl)
	return err
}

// SaveSnapshot replaces the archive contents with tasks.
func (s *Store) SaveSnapshot(tasks []task.Task) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM subtasks;`); err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM tasks;`); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for i, t := range tasks {
		day := sql.NullString{}
		if !t.Date.IsZero() {
			day = sql.NullString{String: t.Date.Format(dateLayout), Valid: true}
		}
		_, err = tx.Exec(`INSERT INTO tasks (id, position, title, category, completed, time, duration, day, exported_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			t.ID, i, t.Title, string(t.Category), boolToInt(t.Completed), t.Time, t.Duration, day, now)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
		for j, st := range t.SubTasks {
			_, err = tx.Exec(`INSERT INTO subtasks (task_id, id, position, title, completed) VALUES (?, ?, ?, ?, ?);`,
				t.ID, st.ID, j, st.Title, boolToInt(st.Completed))
			if err != nil {
				return fmt.Errorf("insert subtask %s/%s: %w", t.ID, st.ID, err)
			}
		}
	}
	return tx.Commit()
}

// FetchTasks reads an archive back for inspection; the app itself never calls it.
func (s *Store) FetchTasks() ([]task.Task, error) {
	rows, err := s.db.Query(`SELECT id, title, category, completed, time, duration, day FROM tasks ORDER BY position;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var category string
		var completed int
		var dayStr sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &category, &completed, &t.Time, &t.Duration, &dayStr); err != nil {
			return nil, err
		}
		t.Category = task.Category(category)
		t.Completed = completed == 1
		if dayStr.Valid {
			if parsed, err := time.ParseInLocation(dateLayout, dayStr.String, time.Local); err == nil {
				t.Date = parsed
			}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range tasks {
		subs, err := s.fetchSubTasks(tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].SubTasks = subs
	}
	return tasks, nil
}

func (s *Store) fetchSubTasks(taskID string) ([]task.SubTask, error) {
	rows, err := s.db.Query(`SELECT id, title, completed FROM subtasks WHERE task_id = ? ORDER BY position;`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []task.SubTask
	for rows.Next() {
		var st task.SubTask
		var completed int
		if err := rows.Scan(&st.ID, &st.Title, &completed); err != nil {
			return nil, err
		}
		st.Completed = completed == 1
		subs = append(subs, st)
	}
	return subs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
