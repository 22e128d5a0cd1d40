package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/types"
)

// ProjectView is a project joined with its creator's display name.
type ProjectView struct {
	models.Project
	CreatorName *string `json:"creator_name"`
}

// ProjectStats summarizes the work attached to one project.
type ProjectStats struct {
	TotalTasks     int64 `json:"total_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
	TotalResources int64 `json:"total_resources"`
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) withCreator(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("projects.*, users.full_name AS creator_name").
		Joins("LEFT JOIN users ON users.id = projects.created_by")
}

// List returns every project, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]ProjectView, error) {
	projects := make([]ProjectView, 0)
	err := r.withCreator(ctx).Order("projects.created_at DESC").Order("projects.id DESC").Scan(&projects).Error
	if err != nil {
		return nil, apperr.Internal("Error fetching projects", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id uint) (*ProjectView, error) {
	var projects []ProjectView
	err := r.withCreator(ctx).Where("projects.id = ?", id).Limit(1).Scan(&projects).Error
	if err != nil {
		return nil, apperr.Internal("Error fetching project", err)
	}
	if len(projects) == 0 {
		return nil, apperr.NotFound(msgProjectNotFound)
	}
	return &projects[0], nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.Status == "" {
		project.Status = types.ProjectPlanning
	}
	err := r.db.WithContext(ctx).Create(project).Error
	return translate(err, msgProjectNotFound, "Error creating project")
}

func (r *ProjectRepository) Update(ctx context.Context, id uint, patch *models.ProjectPatch) error {
	changes := patch.Changes()
	if err := requireChanges(changes); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return translate(result.Error, msgProjectNotFound, "Error updating project")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(msgProjectNotFound)
	}
	return nil
}

// Delete removes the project. The schema cascades its tasks and detaches
// its resources in the same statement.
func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return apperr.Internal("Error deleting project", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(msgProjectNotFound)
	}
	return nil
}

func (r *ProjectRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, apperr.Internal("Error fetching project", err)
	}
	return count > 0, nil
}

func (r *ProjectRepository) Stats(ctx context.Context, id uint) (*ProjectStats, error) {
	var stats ProjectStats
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Count(&stats.TotalTasks).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Task{}).
			Where("project_id = ? AND status = ?", id, types.TaskCompleted).
			Count(&stats.CompletedTasks).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.Resource{}).Where("project_id = ?", id).Count(&stats.TotalResources).Error
	})
	if err != nil {
		return nil, translate(err, msgProjectNotFound, "Error fetching project statistics")
	}
	return &stats, nil
}
