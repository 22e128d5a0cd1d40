package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/auth"
	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/utils"
)

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (h *Handler) GetProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	user, err := h.users.FindByID(ctx.Request.Context(), userID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user.Response())
}

func (h *Handler) UpdateProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var patch models.ProfilePatch

	if err := bindJSON(ctx, &patch); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.users.UpdateProfile(ctx.Request.Context(), userID, &patch); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

func (h *Handler) ChangePassword(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body ChangePasswordRequest

	if err := bindJSON(ctx, &body); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	user, err := h.users.FindByID(ctx.Request.Context(), userID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, body.CurrentPassword) {
		utils.RespondError(ctx, apperr.Unauthorized("Current password is incorrect"))
		return
	}

	passwordHash, err := auth.HashPassword(body.NewPassword)

	if err != nil {
		utils.RespondError(ctx, apperr.Internal("Error changing password", err))
		return
	}

	if err := h.users.UpdatePassword(ctx.Request.Context(), userID, passwordHash); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Logger(ctx).Info("password changed")

	ctx.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *Handler) ListUsers(ctx *gin.Context) {
	users, err := h.users.Directory(ctx.Request.Context())

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}
