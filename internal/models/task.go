package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskFilter selects a view over the task collection
type TaskFilter string

const (
	TaskFilterAll       TaskFilter = "all"
	TaskFilterPending   TaskFilter = "pending"
	TaskFilterCompleted TaskFilter = "completed"
)

// Task represents a persisted task or event
type Task struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Completed       bool       `json:"completed"`
	Notes           *string    `json:"notes,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	LocationDetails *string    `json:"location_details,omitempty"`
}

// Matches reports whether the task is visible under the given filter
func (t Task) Matches(filter TaskFilter) bool {
	switch filter {
	case TaskFilterPending:
		return !t.Completed
	case TaskFilterCompleted:
		return t.Completed
	default:
		return true
	}
}
