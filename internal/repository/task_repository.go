package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/types"
)

const msgTaskNotFound = "Task not found"

// TaskView is a task joined with its assignee and project names.
type TaskView struct {
	models.Task
	AssignedToName *string `json:"assigned_to_name"`
	ProjectName    *string `json:"project_name"`
}

// TaskFilter narrows a task listing. Zero fields are ignored.
type TaskFilter struct {
	ProjectID  uint
	AssignedTo uint
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) withNames(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("tasks.*, users.full_name AS assigned_to_name, projects.name AS project_name").
		Joins("LEFT JOIN users ON users.id = tasks.assigned_to").
		Joins("LEFT JOIN projects ON projects.id = tasks.project_id")
}

// List returns tasks ordered by due date, earliest first.
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]TaskView, error) {
	query := r.withNames(ctx)
	if filter.ProjectID != 0 {
		query = query.Where("tasks.project_id = ?", filter.ProjectID)
	}
	if filter.AssignedTo != 0 {
		query = query.Where("tasks.assigned_to = ?", filter.AssignedTo)
	}

	tasks := make([]TaskView, 0)
	if err := query.Order("tasks.due_date ASC").Order("tasks.id ASC").Scan(&tasks).Error; err != nil {
		return nil, apperr.Internal("Error fetching tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, id uint) (*TaskView, error) {
	var tasks []TaskView
	err := r.withNames(ctx).Where("tasks.id = ?", id).Limit(1).Scan(&tasks).Error
	if err != nil {
		return nil, apperr.Internal("Error fetching task", err)
	}
	if len(tasks) == 0 {
		return nil, apperr.NotFound(msgTaskNotFound)
	}
	return &tasks[0], nil
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.Status == "" {
		task.Status = types.TaskPending
	}
	if task.Priority == "" {
		task.Priority = types.PriorityMedium
	}
	err := r.db.WithContext(ctx).Omit("Project").Create(task).Error
	return translate(err, msgTaskNotFound, "Error creating task")
}

func (r *TaskRepository) Update(ctx context.Context, id uint, patch *models.TaskPatch) error {
	changes := patch.Changes()
	if err := requireChanges(changes); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return translate(result.Error, msgTaskNotFound, "Error updating task")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(msgTaskNotFound)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return apperr.Internal("Error deleting task", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(msgTaskNotFound)
	}
	return nil
}
