package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tasklit/internal/constants"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Category string

const (
	CategoryWork     Category = "work"
	CategoryLearning Category = "learning"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
)

var (
	ErrEmptyText       = errors.New("task text cannot be empty")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDueDate  = errors.New("invalid due date (expected YYYY-MM-DD)")
)

// CategoryStyle is the fixed presentation attached to a category.
type CategoryStyle struct {
	Icon  string
	Color string
}

// CategoryInfo is a static lookup table, not per-task state.
var CategoryInfo = map[Category]CategoryStyle{
	CategoryWork:     {Icon: "💼", Color: "#4F46E5"},
	CategoryLearning: {Icon: "📚", Color: "#059669"},
	CategoryPersonal: {Icon: "🏠", Color: "#DC2626"},
	CategoryHealth:   {Icon: "💪", Color: "#7C3AED"},
}

// Categories lists categories in display order.
var Categories = []Category{CategoryWork, CategoryLearning, CategoryPersonal, CategoryHealth}

// Priorities lists priorities from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (c Category) Valid() bool {
	_, ok := CategoryInfo[c]
	return ok
}

func (c Category) Icon() string {
	return CategoryInfo[c].Icon
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Emoji returns the priority marker, or a neutral dot for unknown values.
func (p Priority) Emoji() string {
	switch p {
	case PriorityHigh:
		return "🔴"
	case PriorityMedium:
		return "🟡"
	case PriorityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

// ParsePriority accepts a priority name in any case.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Priority  Priority  `json:"priority"`
	Category  Category  `json:"category"`
	DueDate   string    `json:"due_date,omitempty"` // YYYY-MM-DD format
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

// Validate checks the fields a caller controls when creating a task.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if t.DueDate != "" {
		if _, err := time.Parse(constants.DateFormat, t.DueDate); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDueDate, t.DueDate)
		}
	}
	return nil
}
