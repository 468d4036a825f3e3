package mcp

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// TodoStatus is the lifecycle of one plan item.
type TodoStatus string

const (
	TodoPending    TodoStatus = "pending"
	TodoInProgress TodoStatus = "in_progress"
	TodoCompleted  TodoStatus = "completed"
)

// Todo is one entry in the agent's plan. The agent owns the list; the
// server only stores it.
type Todo struct {
	Content string     `json:"content"`
	Status  TodoStatus `json:"status"`
}

// Event is a single entry on the session event log.
type Event struct {
	Timestamp string            `json:"ts"`
	Name      string            `json:"event"`
	Tool      string            `json:"tool,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// EventBus is a thread-safe, append-only event log for observing what the
// agent did during a session.
type EventBus struct {
	mu     sync.Mutex
	events []Event
}

func (b *EventBus) Emit(name, tool string, meta map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Name:      name,
		Tool:      tool,
		Meta:      meta,
	})
}

// Since returns a copy of the events from index idx onward. A negative
// idx is clamped to 0.
func (b *EventBus) Since(idx int) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if idx < 0 {
		idx = 0
	}
	if idx >= len(b.events) {
		return nil
	}
	out := make([]Event, len(b.events)-idx)
	copy(out, b.events[idx:])
	return out
}

func (b *EventBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// Session holds the deep-agent working state for one stdio connection:
// the todo plan and the virtual file store the agent uses to park
// intermediate notes between tool calls. The diagnosis core never touches
// any of this; it exists purely for the calling agent.
type Session struct {
	Bus *EventBus

	mu    sync.Mutex
	todos []Todo
	files map[string]string
}

func NewSession() *Session {
	return &Session{
		Bus:   &EventBus{},
		files: make(map[string]string),
	}
}

// SetTodos replaces the whole plan, the way deep-agent todo tools work.
// Statuses outside the known set are rejected so a typo by the agent
// surfaces immediately.
func (s *Session) SetTodos(todos []Todo) error {
	for i, td := range todos {
		switch td.Status {
		case TodoPending, TodoInProgress, TodoCompleted:
		default:
			return fmt.Errorf("todo %d: unknown status %q (want pending, in_progress, completed)", i, td.Status)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append([]Todo(nil), todos...)
	return nil
}

// Todos returns a copy of the current plan.
func (s *Session) Todos() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Todo(nil), s.todos...)
}

// WriteFile stores content under name in the virtual file store,
// overwriting any previous content.
func (s *Session) WriteFile(name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = content
}

// ReadFile returns the stored content and whether the file exists.
func (s *Session) ReadFile(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[name]
	return content, ok
}

// ListFiles returns the stored file names, sorted.
func (s *Session) ListFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
