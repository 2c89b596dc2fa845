package task

import (
	"time"
)

// Status is the workflow state of a task.
type Status string

// Enumerated task statuses. Any other value is rejected on create
// and ignored on update.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// DefaultStatus is applied when a task is created without a status.
const DefaultStatus = StatusPending

// Valid reports whether the status is a member of the enumerated set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Priority is the urgency level of a task.
type Priority string

// Enumerated task priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied when a task is created without a priority.
const DefaultPriority = PriorityMedium

// Valid reports whether the priority is a member of the enumerated set.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task represents a single task owned by a user.
//
// OwnerID is set once at creation and never reassigned; every read and
// mutation of a task is scoped to its owner. Description is a pointer so
// that "no description" stays distinct from an empty string, both in the
// database and on the wire.
type Task struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	OwnerID     string    `gorm:"index;not null;type:text" json:"owner"`
	Title       string    `gorm:"not null;type:text" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Status      Status    `gorm:"not null;type:text;default:pending" json:"status"`
	Priority    Priority  `gorm:"not null;type:text;default:medium" json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
