package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/types"
	"github.com/foreman-dev/foreman/internal/utils"
)

type CreateProjectRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description *string             `json:"description"`
	StartDate   string              `json:"start_date" binding:"required,date"`
	EndDate     string              `json:"end_date" binding:"required,date"`
	Status      types.ProjectStatus `json:"status" binding:"required,enum"`
}

func (r *CreateProjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	projects, err := h.projects.List(ctx.Request.Context())

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(ctx *gin.Context) {
	projectID, err := utils.ParseID(ctx, "id", "Project")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	project, err := h.projects.Get(ctx.Request.Context(), projectID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := bindJSON(ctx, &body); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	project := models.Project{
		Name:        body.Name,
		Description: body.Description,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Status:      body.Status,
		CreatedBy:   &userID,
	}

	if err := h.projects.Create(ctx.Request.Context(), &project); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": project,
	})
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	projectID, err := utils.ParseID(ctx, "id", "Project")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var patch models.ProjectPatch

	if err := bindJSON(ctx, &patch); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.projects.Update(ctx.Request.Context(), projectID, &patch); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project updated successfully"})
}

// DeleteProject removes the project together with its tasks. Resources
// that pointed at it are kept and detached.
func (h *Handler) DeleteProject(ctx *gin.Context) {
	projectID, err := utils.ParseID(ctx, "id", "Project")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.projects.Delete(ctx.Request.Context(), projectID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Logger(ctx).Info("project deleted", "project_id", projectID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (h *Handler) GetProjectStats(ctx *gin.Context) {
	projectID, err := utils.ParseID(ctx, "id", "Project")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	stats, err := h.projects.Stats(ctx.Request.Context(), projectID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
