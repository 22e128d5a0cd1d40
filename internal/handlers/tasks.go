package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/repository"
	"github.com/foreman-dev/foreman/internal/types"
	"github.com/foreman-dev/foreman/internal/utils"
)

type CreateTaskRequest struct {
	ProjectID   types.Nullable[uint] `json:"project_id" binding:"required"`
	Title       string               `json:"title" binding:"required"`
	Description *string              `json:"description"`
	DueDate     string               `json:"due_date" binding:"required,date"`
	AssignedTo  types.Nullable[uint] `json:"assigned_to"`
	Status      types.TaskStatus     `json:"status" binding:"required,enum"`
	Priority    types.TaskPriority   `json:"priority" binding:"omitempty,enum"`
}

func (r *CreateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

func (h *Handler) ListTasks(ctx *gin.Context) {
	projectID, err := utils.ParseOptionalID(ctx, "project_id")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	tasks, err := h.tasks.List(ctx.Request.Context(), repository.TaskFilter{ProjectID: projectID})

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(ctx *gin.Context) {
	taskID, err := utils.ParseID(ctx, "id", "Task")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	task, err := h.tasks.Get(ctx.Request.Context(), taskID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := bindJSON(ctx, &body); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	task := models.Task{
		ProjectID:   *body.ProjectID.Value,
		Title:       body.Title,
		Description: body.Description,
		DueDate:     body.DueDate,
		AssignedTo:  body.AssignedTo.Ptr(),
		Status:      body.Status,
		Priority:    body.Priority,
	}

	if err := h.tasks.Create(ctx.Request.Context(), &task); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    task,
	})
}

func (h *Handler) UpdateTask(ctx *gin.Context) {
	taskID, err := utils.ParseID(ctx, "id", "Task")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var patch models.TaskPatch

	if err := bindJSON(ctx, &patch); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.tasks.Update(ctx.Request.Context(), taskID, &patch); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

func (h *Handler) DeleteTask(ctx *gin.Context) {
	taskID, err := utils.ParseID(ctx, "id", "Task")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.tasks.Delete(ctx.Request.Context(), taskID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
