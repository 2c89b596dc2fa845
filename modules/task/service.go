package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domain "github.com/example/task-dashboard/domain/task"
	"github.com/example/task-dashboard/modules/cache"
	"github.com/google/uuid"
)

var (
	// ErrTitleRequired is returned when a task is created without a title.
	ErrTitleRequired = errors.New("task title is required")
	// ErrInvalidStatus is returned when a created task carries a status
	// outside the enumerated set.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrInvalidPriority is returned when a created task carries a
	// priority outside the enumerated set.
	ErrInvalidPriority = errors.New("invalid task priority")
	// ErrNotOwner is returned when the caller is not the task's owner.
	ErrNotOwner = errors.New("not authorized to access this task")
)

// TaskService implements ownership-scoped CRUD over tasks.
//
// Every operation takes the resolved caller identifier, never a raw
// credential. Update and Delete compare the caller against the stored
// owner before any field is applied; owners are compared as opaque
// strings, exact match only.
type TaskService struct {
	repo  *TaskRepository
	cache *cache.TaskListCache
}

// NewTaskService creates a new TaskService. The cache may be attached
// later via AttachCache; the service reads through the repository until
// then.
func NewTaskService(repo *TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

// AttachCache wires an optional per-owner list cache. Must be called
// before the service starts handling requests.
func (s *TaskService) AttachCache(c *cache.TaskListCache) {
	s.cache = c
}

// List returns all tasks owned by the caller, in store-native order.
func (s *TaskService) List(ctx context.Context, callerID string) ([]domain.Task, error) {
	if s.cache != nil {
		tasks, hit, err := s.cache.GetList(ctx, callerID)
		if err != nil {
			// A cache failure must not take down reads.
			log.Printf("[task] Cache read failed for owner %s: %v", callerID, err)
		} else if hit {
			return tasks, nil
		}
	}

	tasks, err := s.repo.FindByOwner(callerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, callerID, tasks); err != nil {
			log.Printf("[task] Cache write failed for owner %s: %v", callerID, err)
		}
	}

	return tasks, nil
}

// Create validates the draft, persists a new task owned by the caller and
// returns it with server-assigned fields. Status and priority default when
// omitted; values outside the enumerated sets are rejected.
func (s *TaskService) Create(ctx context.Context, callerID string, req CreateTaskRequest) (*domain.Task, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}

	status := domain.DefaultStatus
	if req.Status != "" {
		status = domain.Status(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	priority := domain.DefaultPriority
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
	}

	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New().String(),
		OwnerID:     callerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, err
	}

	s.invalidate(ctx, callerID)
	return task, nil
}

// Update applies a partial patch to a task owned by the caller.
//
// The ownership check runs before any field change. Provided fields
// overwrite only when non-empty; omitted or empty fields keep their prior
// value, and enum values outside the enumerated sets are ignored rather
// than rejected. UpdatedAt refreshes even for an empty patch.
func (s *TaskService) Update(ctx context.Context, callerID, taskID string, req UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.repo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		desc := req.Description
		task.Description = &desc
	}
	if st := domain.Status(req.Status); req.Status != "" && st.Valid() {
		task.Status = st
	}
	if pr := domain.Priority(req.Priority); req.Priority != "" && pr.Valid() {
		task.Priority = pr
	}

	if err := s.repo.UpdateOwned(task); err != nil {
		return nil, err
	}

	// Reload so the caller sees the refreshed UpdatedAt.
	updated, err := s.repo.FindByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task after update: %w", err)
	}

	s.invalidate(ctx, callerID)
	return updated, nil
}

// Delete permanently removes a task owned by the caller.
func (s *TaskService) Delete(ctx context.Context, callerID, taskID string) error {
	task, err := s.repo.FindByID(taskID)
	if err != nil {
		return err
	}
	if task.OwnerID != callerID {
		return ErrNotOwner
	}

	if err := s.repo.DeleteOwned(callerID, taskID); err != nil {
		return err
	}

	s.invalidate(ctx, callerID)
	return nil
}

// invalidate drops the owner's cached list after a successful mutation.
func (s *TaskService) invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		log.Printf("[task] Cache invalidation failed for owner %s: %v", ownerID, err)
	}
}
