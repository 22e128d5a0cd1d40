package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/types"
)

const msgResourceNotFound = "Resource not found"

// ResourceView is a resource joined with the name of its project, if any.
type ResourceView struct {
	models.Resource
	ProjectName *string `json:"project_name"`
}

// ResourceFilter narrows a resource listing. Zero fields are ignored.
type ResourceFilter struct {
	Type      types.ResourceType
	ProjectID uint
}

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) withProject(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Resource{}).
		Select("resources.*, projects.name AS project_name").
		Joins("LEFT JOIN projects ON projects.id = resources.project_id")
}

// List returns resources ordered by name.
func (r *ResourceRepository) List(ctx context.Context, filter ResourceFilter) ([]ResourceView, error) {
	query := r.withProject(ctx)
	if filter.Type != "" {
		query = query.Where("resources.type = ?", filter.Type)
	}
	if filter.ProjectID != 0 {
		query = query.Where("resources.project_id = ?", filter.ProjectID)
	}

	resources := make([]ResourceView, 0)
	if err := query.Order("resources.name ASC").Order("resources.id ASC").Scan(&resources).Error; err != nil {
		return nil, apperr.Internal("Error fetching resources", err)
	}
	return resources, nil
}

func (r *ResourceRepository) Get(ctx context.Context, id uint) (*ResourceView, error) {
	var resources []ResourceView
	err := r.withProject(ctx).Where("resources.id = ?", id).Limit(1).Scan(&resources).Error
	if err != nil {
		return nil, apperr.Internal("Error fetching resource", err)
	}
	if len(resources) == 0 {
		return nil, apperr.NotFound(msgResourceNotFound)
	}
	return &resources[0], nil
}

func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	if resource.Status == "" {
		resource.Status = types.ResourceAvailable
	}
	err := r.db.WithContext(ctx).Omit("Project").Create(resource).Error
	return translate(err, msgResourceNotFound, "Error creating resource")
}

func (r *ResourceRepository) Update(ctx context.Context, id uint, patch *models.ResourcePatch) error {
	changes := patch.Changes()
	if err := requireChanges(changes); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&models.Resource{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return translate(result.Error, msgResourceNotFound, "Error updating resource")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(msgResourceNotFound)
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Resource{}, id)
	if result.Error != nil {
		return apperr.Internal("Error deleting resource", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(msgResourceNotFound)
	}
	return nil
}
