package task

import (
	domain "github.com/example/task-dashboard/domain/task"
)

// ListTasksRequest is the request for listing the caller's tasks.
type ListTasksRequest struct {
	CallerID string `json:"caller_id"`
}

// ListTasksResponse is the response containing the caller's tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// CreateTaskRequest is the request for creating a task.
//
// Description is a pointer so that an absent description stays distinct
// from an empty string.
type CreateTaskRequest struct {
	CallerID    string  `json:"caller_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	Priority    string  `json:"priority,omitempty"`
}

// CreateTaskResponse is the response after creating a task.
type CreateTaskResponse struct {
	Task domain.Task `json:"task"`
}

// UpdateTaskRequest is the request for updating a task. Empty fields keep
// their prior value.
type UpdateTaskRequest struct {
	CallerID    string `json:"caller_id"`
	TaskID      string `json:"task_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// UpdateTaskResponse is the response after updating a task.
type UpdateTaskResponse struct {
	Task domain.Task `json:"task"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	CallerID string `json:"caller_id"`
	TaskID   string `json:"task_id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
