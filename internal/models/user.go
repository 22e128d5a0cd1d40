package models

import (
	"time"

	"github.com/foreman-dev/foreman/internal/types"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password;not null" json:"-"`
	Role         types.Role `gorm:"type:varchar(16);not null;index" json:"role"`
	FullName     string     `gorm:"size:255;not null" json:"full_name"`
	Phone        *string    `gorm:"size:32" json:"phone"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (u *User) Response() types.UserResponse {
	return types.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FullName:  u.FullName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}
