// Package tasklist holds the client's ordered task list and keeps a full
// snapshot of it in a durable store after every mutation.
package tasklist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/yukikurage/listify/internal/storage"
)

const (
	KeyTasks = "tasks"
	KeyDraft = "currentTaskToAdd"
)

var ErrEmptyName = errors.New("task name must not be empty")

type Task struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Manager is safe for concurrent use. Separate Managers sharing a store are
// not coordinated; the last snapshot written wins.
type Manager struct {
	mu     sync.Mutex
	store  storage.Store
	tasks  []Task
	draft  string
	lastID int64
	now    func() time.Time
}

func NewManager(store storage.Store) *Manager {
	return &Manager{
		store: store,
		tasks: []Task{},
		now:   time.Now,
	}
}

// Load replaces the in-memory list and draft with what the store holds.
// A missing key means an empty list or an empty draft.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := []Task{}
	raw, ok, err := m.store.Load(ctx, KeyTasks)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
			return fmt.Errorf("failed to decode tasks: %w", err)
		}
		if tasks == nil {
			tasks = []Task{}
		}
	}

	draft, _, err := m.store.Load(ctx, KeyDraft)
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}

	m.tasks = tasks
	m.draft = draft
	for _, t := range tasks {
		if t.ID > m.lastID {
			m.lastID = t.ID
		}
	}
	return nil
}

// Add appends a task named by the trimmed input and clears the draft.
// Whitespace-only input is ignored and reports false.
func (m *Manager) Add(ctx context.Context, name string) (Task, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Task{}, false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task := Task{ID: m.nextID(), Name: name}
	m.tasks = append(m.tasks, task)
	m.draft = ""

	if err := m.store.Delete(ctx, KeyDraft); err != nil {
		return task, true, fmt.Errorf("failed to clear draft: %w", err)
	}
	if err := m.persist(ctx); err != nil {
		return task, true, err
	}
	return task, true, nil
}

// Remove drops the task with id. Unknown ids are ignored.
func (m *Manager) Remove(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return nil
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return m.persist(ctx)
}

// ToggleCompleted flips the completed flag of the task with id. Unknown ids
// are ignored.
func (m *Manager) ToggleCompleted(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return nil
	}
	m.tasks[i].Completed = !m.tasks[i].Completed
	return m.persist(ctx)
}

// Rename sets the trimmed name of the task with id. Unknown ids are ignored.
func (m *Manager) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return nil
	}
	m.tasks[i].Name = name
	return m.persist(ctx)
}

// SetDraft records the pending, not yet added, task text.
func (m *Manager) SetDraft(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.draft = text
	if err := m.store.Save(ctx, KeyDraft, text); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (m *Manager) Draft() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.draft
}

// Tasks returns a copy of the list in display order.
func (m *Manager) Tasks() []Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

func (m *Manager) Get(id int64) (Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return Task{}, false
	}
	return m.tasks[i], true
}

// nextID returns the current Unix millisecond, bumped past the last issued id
// when the clock has not moved forward.
func (m *Manager) nextID() int64 {
	id := m.now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	return id
}

func (m *Manager) index(id int64) int {
	_, i, _ := lo.FindIndexOf(m.tasks, func(t Task) bool {
		return t.ID == id
	})
	return i
}

func (m *Manager) persist(ctx context.Context) error {
	data, err := json.Marshal(m.tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := m.store.Save(ctx, KeyTasks, string(data)); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}
