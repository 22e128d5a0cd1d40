package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/auth"
	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/repository"
	"github.com/foreman-dev/foreman/internal/types"
	"github.com/foreman-dev/foreman/internal/utils"
)

type CreateEmployeeRequest struct {
	Username string  `json:"username" binding:"required,min=3"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	FullName string  `json:"full_name" binding:"required"`
	Phone    *string `json:"phone"`
}

func (r *CreateEmployeeRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = optionalString(r.Phone)
}

func (h *Handler) ListEmployees(ctx *gin.Context) {
	employees, err := h.users.ListEmployees(ctx.Request.Context())

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	response := make([]types.UserResponse, 0, len(employees))

	for i := range employees {
		response = append(response, employees[i].Response())
	}

	ctx.JSON(http.StatusOK, response)
}

// GetEmployee returns any user to an admin, and only the caller's own
// record to everyone else.
func (h *Handler) GetEmployee(ctx *gin.Context) {
	employeeID, err := utils.ParseID(ctx, "id", "Employee")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	user, err := h.users.FindByID(ctx.Request.Context(), employeeID)

	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			err = apperr.NotFound("Employee not found")
		}
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user.Response())
}

func (h *Handler) CreateEmployee(ctx *gin.Context) {
	var body CreateEmployeeRequest

	if err := bindJSON(ctx, &body); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	passwordHash, err := auth.HashPassword(body.Password)

	if err != nil {
		utils.RespondError(ctx, apperr.Internal("Error creating employee", err))
		return
	}

	employee := models.User{
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: passwordHash,
		Role:         types.RoleEmployee,
		FullName:     body.FullName,
		Phone:        body.Phone,
	}

	if err := h.users.Create(ctx.Request.Context(), &employee); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Logger(ctx).Info("employee created", "employee_id", employee.ID)

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Employee created successfully",
		"employee": employee.Response(),
	})
}

func (h *Handler) UpdateEmployee(ctx *gin.Context) {
	employeeID, err := utils.ParseID(ctx, "id", "Employee")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var patch models.EmployeePatch

	if err := bindJSON(ctx, &patch); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.users.UpdateEmployee(ctx.Request.Context(), employeeID, &patch); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Employee updated successfully"})
}

func (h *Handler) DeleteEmployee(ctx *gin.Context) {
	employeeID, err := utils.ParseID(ctx, "id", "Employee")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.users.DeleteEmployee(ctx.Request.Context(), employeeID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Logger(ctx).Info("employee deleted", "employee_id", employeeID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

func (h *Handler) GetEmployeeTasks(ctx *gin.Context) {
	employeeID, err := utils.ParseID(ctx, "id", "Employee")

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	tasks, err := h.tasks.List(ctx.Request.Context(), repository.TaskFilter{AssignedTo: employeeID})

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}
