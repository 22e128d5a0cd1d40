package models

import (
	"strings"

	"github.com/foreman-dev/foreman/internal/types"
)

// A patch carries only the fields a client sent. Changes returns the column
// assignments for those fields; an empty map means nothing recognized was
// supplied and the update is rejected.

type ProjectPatch struct {
	Name        *string                `json:"name" binding:"omitnil,min=1"`
	Description types.Nullable[string] `json:"description"`
	StartDate   *string                `json:"start_date" binding:"omitnil,date"`
	EndDate     *string                `json:"end_date" binding:"omitnil,date"`
	Status      *types.ProjectStatus   `json:"status" binding:"omitnil,enum"`
}

func (p *ProjectPatch) Normalize() {
	trimPtr(p.Name)
}

func (p *ProjectPatch) Changes() map[string]any {
	changes := make(map[string]any)
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Description.Set {
		changes["description"] = p.Description.Ptr()
	}
	if p.StartDate != nil {
		changes["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		changes["end_date"] = *p.EndDate
	}
	if p.Status != nil {
		changes["status"] = *p.Status
	}
	return changes
}

type TaskPatch struct {
	Title       *string                `json:"title" binding:"omitnil,min=1"`
	Description types.Nullable[string] `json:"description"`
	DueDate     *string                `json:"due_date" binding:"omitnil,date"`
	AssignedTo  types.Nullable[uint]   `json:"assigned_to"`
	Status      *types.TaskStatus      `json:"status" binding:"omitnil,enum"`
	Priority    *types.TaskPriority    `json:"priority" binding:"omitnil,enum"`
}

func (p *TaskPatch) Normalize() {
	trimPtr(p.Title)
}

func (p *TaskPatch) Changes() map[string]any {
	changes := make(map[string]any)
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Description.Set {
		changes["description"] = p.Description.Ptr()
	}
	if p.DueDate != nil {
		changes["due_date"] = *p.DueDate
	}
	if p.AssignedTo.Set {
		changes["assigned_to"] = p.AssignedTo.Ptr()
	}
	if p.Status != nil {
		changes["status"] = *p.Status
	}
	if p.Priority != nil {
		changes["priority"] = *p.Priority
	}
	return changes
}

type ResourcePatch struct {
	Name        *string                 `json:"name" binding:"omitnil,min=1"`
	Type        *types.ResourceType     `json:"type" binding:"omitnil,enum"`
	Quantity    types.Nullable[float64] `json:"quantity"`
	Unit        types.Nullable[string]  `json:"unit"`
	Status      *types.ResourceStatus   `json:"status" binding:"omitnil,enum"`
	ProjectID   types.Nullable[uint]    `json:"project_id"`
	Description types.Nullable[string]  `json:"description"`
}

func (p *ResourcePatch) Normalize() {
	trimPtr(p.Name)
}

func (p *ResourcePatch) Changes() map[string]any {
	changes := make(map[string]any)
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Type != nil {
		changes["type"] = *p.Type
	}
	if p.Quantity.Set {
		changes["quantity"] = p.Quantity.Ptr()
	}
	if p.Unit.Set {
		changes["unit"] = p.Unit.Ptr()
	}
	if p.Status != nil {
		changes["status"] = *p.Status
	}
	if p.ProjectID.Set {
		changes["project_id"] = p.ProjectID.Ptr()
	}
	if p.Description.Set {
		changes["description"] = p.Description.Ptr()
	}
	return changes
}

// ProfilePatch is what a user may change about their own account.
type ProfilePatch struct {
	Email    *string                `json:"email" binding:"omitnil,email"`
	FullName *string                `json:"full_name" binding:"omitnil,min=1"`
	Phone    types.Nullable[string] `json:"phone"`
}

func (p *ProfilePatch) Normalize() {
	trimPtr(p.Email)
	trimPtr(p.FullName)
}

func (p *ProfilePatch) Changes() map[string]any {
	changes := make(map[string]any)
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	if p.FullName != nil {
		changes["full_name"] = *p.FullName
	}
	if p.Phone.Set {
		changes["phone"] = p.Phone.Ptr()
	}
	return changes
}

// EmployeePatch is what an admin may change about an employee account.
type EmployeePatch struct {
	Username *string                `json:"username" binding:"omitnil,min=3"`
	Email    *string                `json:"email" binding:"omitnil,email"`
	FullName *string                `json:"full_name" binding:"omitnil,min=1"`
	Phone    types.Nullable[string] `json:"phone"`
}

func (p *EmployeePatch) Normalize() {
	trimPtr(p.Username)
	trimPtr(p.Email)
	trimPtr(p.FullName)
}

func (p *EmployeePatch) Changes() map[string]any {
	changes := make(map[string]any)
	if p.Username != nil {
		changes["username"] = *p.Username
	}
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	if p.FullName != nil {
		changes["full_name"] = *p.FullName
	}
	if p.Phone.Set {
		changes["phone"] = p.Phone.Ptr()
	}
	return changes
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
