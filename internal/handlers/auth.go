package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/auth"
	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/types"
	"github.com/foreman-dev/foreman/internal/utils"
)

const msgInvalidCredentials = "Invalid credentials"

type RegisterRequest struct {
	Username string     `json:"username" binding:"required,min=3"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=6"`
	Role     types.Role `json:"role" binding:"required,enum"`
	FullName string     `json:"full_name" binding:"required"`
	Phone    *string    `json:"phone"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = optionalString(r.Phone)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

// AuthUser is the account summary returned alongside a fresh token.
type AuthUser struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     types.Role `json:"role"`
	FullName string     `json:"full_name"`
}

func (h *Handler) Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := bindJSON(ctx, &body); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	passwordHash, err := auth.HashPassword(body.Password)

	if err != nil {
		utils.RespondError(ctx, apperr.Internal("Error registering user", err))
		return
	}

	user := models.User{
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: passwordHash,
		Role:         body.Role,
		FullName:     body.FullName,
		Phone:        body.Phone,
	}

	if err := h.users.Create(ctx.Request.Context(), &user); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Username, user.Role)

	if err != nil {
		utils.RespondError(ctx, apperr.Internal("Error registering user", err))
		return
	}

	utils.Logger(ctx).Info("user registered", "user_id", user.ID, "role", user.Role)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user": AuthUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
			FullName: user.FullName,
		},
	})
}

// Login answers unknown usernames and wrong passwords identically.
func (h *Handler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := bindJSON(ctx, &body); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	user, err := h.users.FindByUsername(ctx.Request.Context(), body.Username)

	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			auth.BurnPasswordCheck(body.Password)
			utils.RespondError(ctx, apperr.Unauthorized(msgInvalidCredentials))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, body.Password) {
		utils.RespondError(ctx, apperr.Unauthorized(msgInvalidCredentials))
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Username, user.Role)

	if err != nil {
		utils.RespondError(ctx, apperr.Internal("Error logging in", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user.Response(),
	})
}

// optionalString trims s and maps blank input to nil.
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
