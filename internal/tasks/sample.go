package tasks

import (
	"time"

	"github.com/julianstephens/tasklit/internal/models"
)

// SampleTasks is the data a fresh session starts with.
func SampleTasks(now time.Time) []models.Task {
	return []models.Task{
		{
			ID:        1,
			Text:      "Complete Java full-stack project",
			Priority:  models.PriorityHigh,
			Category:  models.CategoryWork,
			DueDate:   "2025-10-30",
			CreatedAt: now,
		},
		{
			ID:        2,
			Text:      "Learn Spring Boot framework",
			Priority:  models.PriorityMedium,
			Category:  models.CategoryLearning,
			DueDate:   "2025-11-05",
			CreatedAt: now,
		},
		{
			ID:        3,
			Text:      "Practice database queries",
			Priority:  models.PriorityLow,
			Category:  models.CategoryLearning,
			Completed: true,
			DueDate:   "2025-10-25",
			CreatedAt: now,
		},
	}
}
