// Package form holds the in-memory state of the daily task form and the
// checks that gate submission.
package form

import (
	"fmt"
	"sync"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

// Store owns the employee context and the task list. Tasks are addressed by
// id; list position never identifies an entry.
//
// The list is never empty. Every method is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	employee domain.EmployeeContext
	tasks    []domain.TaskEntry
}

// NewStore returns a store in its reset state.
func NewStore() *Store {
	s := &Store{}
	s.resetLocked()
	return s
}

// SetEmployeeField updates employeeName or date.
func (s *Store) SetEmployeeField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case domain.FieldEmployeeName:
		s.employee.EmployeeName = value
	case domain.FieldDate:
		s.employee.Date = value
	default:
		return fmt.Errorf("employee %q: %w", field, domain.ErrUnknownField)
	}
	return nil
}

// SetTaskField updates description or hoursWorked of the task with id.
func (s *Store) SetTaskField(id int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("task %d: %w", id, domain.ErrTaskNotFound)
	}
	switch field {
	case domain.FieldDescription:
		s.tasks[i].Description = value
	case domain.FieldHoursWorked:
		s.tasks[i].HoursWorked = value
	default:
		return fmt.Errorf("task %d %q: %w", id, field, domain.ErrUnknownField)
	}
	return nil
}

// AddTask appends an empty task with id max(ids)+1 and returns it.
func (s *Store) AddTask() domain.TaskEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := domain.TaskEntry{ID: nextID(s.tasks)}
	s.tasks = append(s.tasks, t)
	return t
}

// RemoveTask drops the task with id. It is a no-op, reported as false, when
// the list has a single entry or the id is unknown.
func (s *Store) RemoveTask(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) <= 1 {
		return false
	}
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return true
}

// Reset clears the employee context and leaves a single empty task with id 1.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Snapshot returns copies of the current state.
func (s *Store) Snapshot() (domain.EmployeeContext, []domain.TaskEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]domain.TaskEntry, len(s.tasks))
	copy(tasks, s.tasks)
	return s.employee, tasks
}

func (s *Store) resetLocked() {
	s.employee = domain.EmployeeContext{}
	s.tasks = []domain.TaskEntry{{ID: 1}}
}

func (s *Store) indexLocked(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func nextID(tasks []domain.TaskEntry) int {
	max := 0
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}
