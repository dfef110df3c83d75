// Package tasks holds the ordered, in-memory task collection for a session and
// the views derived from it.
package tasks

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/models"
)

// End is the Reorder target meaning "after the last task". Ids start at 1.
const End int64 = 0

var ErrNotFound = errors.New("task not found")

// Filter narrows the task list. Empty or "all" fields do not constrain.
type Filter struct {
	Search   string
	Category string
	Priority string
}

type Stats struct {
	Total          int
	Completed      int
	CompletionRate int // percent, 0-100
}

type Option func(*Store)

// WithClock overrides the timestamp source for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is not safe for concurrent use; intents are handled one at a time.
type Store struct {
	tasks  []models.Task
	nextID int64
	now    func() time.Time
}

func New(opts ...Option) *Store {
	s := &Store{
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new incomplete task. Validation of text is the caller's job.
func (s *Store) Add(text string, priority models.Priority, category models.Category, dueDate string) models.Task {
	task := models.Task{
		ID:        s.nextID,
		Text:      text,
		Priority:  priority,
		Category:  category,
		DueDate:   dueDate,
		CreatedAt: s.now(),
	}
	s.nextID++
	s.tasks = append(s.tasks, task)
	return task
}

func (s *Store) Get(id int64) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return s.tasks[i], nil
}

// ToggleComplete flips the completed flag and returns the new value.
func (s *Store) ToggleComplete(id int64) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i].Completed, nil
}

func (s *Store) Delete(id int64) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Reorder moves task id so that it sits immediately before beforeID, or last
// when beforeID is End. Only position changes.
func (s *Store) Reorder(id, beforeID int64) error {
	from := s.indexOf(id)
	if from < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if beforeID != End && s.indexOf(beforeID) < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, beforeID)
	}
	if id == beforeID {
		return nil
	}

	moved := s.tasks[from]
	rest := make([]models.Task, 0, len(s.tasks))
	rest = append(rest, s.tasks[:from]...)
	rest = append(rest, s.tasks[from+1:]...)

	to := len(rest)
	if beforeID != End {
		for i, t := range rest {
			if t.ID == beforeID {
				to = i
				break
			}
		}
	}

	out := make([]models.Task, 0, len(s.tasks))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	s.tasks = out
	return nil
}

// All returns a copy of the collection in store order.
func (s *Store) All() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// Filtered applies f, preserving store order.
func (s *Store) Filtered(f Filter) []models.Task {
	search := strings.ToLower(f.Search)
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if search != "" && !strings.Contains(strings.ToLower(t.Text), search) {
			continue
		}
		if !matches(f.Category, string(t.Category)) || !matches(f.Priority, string(t.Priority)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matches(want, got string) bool {
	return want == "" || want == constants.FilterAll || want == got
}

// DueToday returns up to TodayTaskLimit tasks whose due date is exactly today.
func (s *Store) DueToday(today string) []models.Task {
	out := make([]models.Task, 0, constants.TodayTaskLimit)
	for _, t := range s.tasks {
		if len(out) == constants.TodayTaskLimit {
			break
		}
		if t.DueDate != "" && t.DueDate == today {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) Completed() []models.Task {
	var out []models.Task
	for _, t := range s.tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Stats rounds the completion rate half-up (1 of 8 done is 13%).
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// Reset replaces the collection. The id counter moves past the highest id so
// later adds never collide.
func (s *Store) Reset(tasks []models.Task) {
	s.tasks = make([]models.Task, len(tasks))
	copy(s.tasks, tasks)
	for _, t := range tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
}

// Clear drops every task. Ids are not reused afterwards.
func (s *Store) Clear() {
	s.tasks = nil
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
