package models

import "github.com/foreman-dev/foreman/internal/types"

// Resource is a material or a machine that may be allocated to a project.
type Resource struct {
	BaseModel

	Name        string               `gorm:"size:255;not null;index" json:"name"`
	Type        types.ResourceType   `gorm:"type:varchar(16);not null;index" json:"type"`
	Quantity    *float64             `json:"quantity"`
	Unit        *string              `gorm:"size:64" json:"unit"`
	Status      types.ResourceStatus `gorm:"type:varchar(32);not null" json:"status"`
	ProjectID   *uint                `gorm:"index" json:"project_id"`
	Description *string              `json:"description"`

	// Relationships
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}
