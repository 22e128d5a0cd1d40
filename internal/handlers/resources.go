package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/repository"
	"github.com/foreman-dev/foreman/internal/types"
	"github.com/foreman-dev/foreman/internal/utils"
)

type CreateResourceRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Type        types.ResourceType      `json:"type" binding:"required,enum"`
	Quantity    types.Nullable[float64] `json:"quantity" binding:"omitempty,gte=0"`
	Unit        *string                 `json:"unit"`
	Status      types.ResourceStatus    `json:"status" binding:"omitempty,enum"`
	ProjectID   types.Nullable[uint]    `json:"project_id"`
	Description *string                 `json:"description"`
}

func (r *CreateResourceRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Unit = optionalString(r.Unit)
}

func (h *Handler) ListResources(ctx *gin.Context) {
	var filter repository.ResourceFilter

	if raw := ctx.Query("type"); raw != "" {
		filter.Type = types.ResourceType(raw)

		if !filter.Type.Valid() {
			utils.RespondError(ctx, apperr.Validation("Invalid type"))
			return
		}
	}

	projectID, err := utils.ParseOptionalID(ctx, "project_id")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	filter.ProjectID = projectID

	resources, err := h.resources.List(ctx.Request.Context(), filter)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resources)
}

func (h *Handler) GetResource(ctx *gin.Context) {
	resourceID, err := utils.ParseID(ctx, "id", "Resource")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	resource, err := h.resources.Get(ctx.Request.Context(), resourceID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resource)
}

func (h *Handler) CreateResource(ctx *gin.Context) {
	var body CreateResourceRequest

	if err := bindJSON(ctx, &body); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	resource := models.Resource{
		Name:        body.Name,
		Type:        body.Type,
		Quantity:    body.Quantity.Ptr(),
		Unit:        body.Unit,
		Status:      body.Status,
		ProjectID:   body.ProjectID.Ptr(),
		Description: body.Description,
	}

	if err := h.resources.Create(ctx.Request.Context(), &resource); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Resource created successfully",
		"resource": resource,
	})
}

func (h *Handler) UpdateResource(ctx *gin.Context) {
	resourceID, err := utils.ParseID(ctx, "id", "Resource")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var patch models.ResourcePatch

	if err := bindJSON(ctx, &patch); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.resources.Update(ctx.Request.Context(), resourceID, &patch); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Resource updated successfully"})
}

func (h *Handler) DeleteResource(ctx *gin.Context) {
	resourceID, err := utils.ParseID(ctx, "id", "Resource")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.resources.Delete(ctx.Request.Context(), resourceID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Resource deleted successfully"})
}
