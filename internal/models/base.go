package models

import "time"

// BaseModel is embedded by the mutable domain tables. Deletes are hard, so
// there is no DeletedAt column.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
