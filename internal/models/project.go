package models

import "github.com/foreman-dev/foreman/internal/types"

type Project struct {
	BaseModel

	Name        string              `gorm:"size:255;not null" json:"name"`
	Description *string             `json:"description"`
	StartDate   string              `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate     string              `gorm:"type:varchar(10);not null" json:"end_date"`
	Status      types.ProjectStatus `gorm:"type:varchar(32);not null;index" json:"status"`

	// CreatedBy has no foreign key: removing a user leaves the id in place.
	CreatedBy *uint `gorm:"index" json:"created_by"`
}
