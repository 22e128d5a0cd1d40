package models

import "github.com/foreman-dev/foreman/internal/types"

type Task struct {
	BaseModel

	ProjectID   uint               `gorm:"not null;index" json:"project_id"`
	Title       string             `gorm:"size:255;not null" json:"title"`
	Description *string            `json:"description"`
	DueDate     string             `gorm:"type:varchar(10);not null;index" json:"due_date"`
	AssignedTo  *uint              `gorm:"index" json:"assigned_to"`
	Status      types.TaskStatus   `gorm:"type:varchar(32);not null" json:"status"`
	Priority    types.TaskPriority `gorm:"type:varchar(16);not null" json:"priority"`

	// Relationships
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
