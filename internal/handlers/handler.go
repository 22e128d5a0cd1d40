// Package handlers implements the JSON endpoints. Handlers own their
// repositories and never reach for a package-level connection.
package handlers

import (
	"gorm.io/gorm"

	"github.com/foreman-dev/foreman/internal/auth"
	"github.com/foreman-dev/foreman/internal/repository"
)

type Handler struct {
	db        *gorm.DB
	issuer    *auth.Issuer
	users     *repository.UserRepository
	projects  *repository.ProjectRepository
	tasks     *repository.TaskRepository
	resources *repository.ResourceRepository
}

func New(db *gorm.DB, issuer *auth.Issuer) *Handler {
	RegisterValidators()

	return &Handler{
		db:        db,
		issuer:    issuer,
		users:     repository.NewUserRepository(db),
		projects:  repository.NewProjectRepository(db),
		tasks:     repository.NewTaskRepository(db),
		resources: repository.NewResourceRepository(db),
	}
}
