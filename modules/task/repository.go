package task

import (
	"errors"
	"fmt"

	domain "github.com/example/task-dashboard/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when no task exists with the given id.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence using GORM.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create persists a new task.
func (r *TaskRepository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its id regardless of owner. Callers are
// responsible for the ownership check before acting on the result.
func (r *TaskRepository) FindByID(id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindByOwner retrieves all tasks belonging to the given owner, in
// store-native order.
func (r *TaskRepository) FindByOwner(ownerID string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.Find(&tasks, "owner_id = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// UpdateOwned writes the task's mutable fields, conditional on both id and
// owner. The WHERE clause makes the fetch-then-write pair atomic with
// respect to the ownership check: a row is touched only if it still
// belongs to the expected owner.
func (r *TaskRepository) UpdateOwned(task *domain.Task) error {
	result := r.db.Model(&domain.Task{}).
		Where("id = ? AND owner_id = ?", task.ID, task.OwnerID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteOwned permanently removes a task, conditional on both id and
// owner. Tasks carry no soft-delete marker: a deleted id never
// resurfaces in FindByOwner.
func (r *TaskRepository) DeleteOwned(ownerID, id string) error {
	result := r.db.Where("owner_id = ?", ownerID).Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
