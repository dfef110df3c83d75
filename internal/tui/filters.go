package tui

import (
	"strings"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/tasks"
)

var (
	categoryCycle = []string{
		constants.FilterAll,
		string(models.CategoryWork),
		string(models.CategoryLearning),
		string(models.CategoryPersonal),
		string(models.CategoryHealth),
	}

	priorityCycle = []string{
		constants.FilterAll,
		string(models.PriorityHigh),
		string(models.PriorityMedium),
		string(models.PriorityLow),
	}
)

// nextOption returns the value after current, wrapping around. An empty or
// unknown current value counts as "all".
func nextOption(options []string, current string) string {
	for i, o := range options {
		if strings.EqualFold(o, current) {
			return options[(i+1)%len(options)]
		}
	}
	return options[1%len(options)]
}

// moveTarget translates a one-step move in the visible list into a Reorder
// target on the full list, so hidden tasks are never the neighbour swapped
// with. The bool is false when the task is already at that edge.
func moveTarget(all, visible []models.Task, id int64, delta int) (int64, bool) {
	idx := indexOf(visible, id)
	switch {
	case idx < 0:
		return 0, false
	case delta < 0:
		if idx == 0 {
			return 0, false
		}
		return visible[idx-1].ID, true
	default:
		if idx >= len(visible)-1 {
			return 0, false
		}
		// land just after the next visible task
		next := indexOf(all, visible[idx+1].ID)
		if next+1 < len(all) {
			return all[next+1].ID, true
		}
		return tasks.End, true
	}
}

func indexOf(list []models.Task, id int64) int {
	for i, t := range list {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func filterLabel(f tasks.Filter) string {
	category := f.Category
	if category == "" {
		category = constants.FilterAll
	}
	priority := f.Priority
	if priority == "" {
		priority = constants.FilterAll
	}
	parts := []string{"category: " + category, "priority: " + priority}
	if f.Search != "" {
		parts = append([]string{"search: " + f.Search}, parts...)
	}
	return strings.Join(parts, " · ")
}
