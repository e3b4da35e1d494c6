package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Admin routes are gated on RoleAdmin.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a user of the store.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Username  string         `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string         `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name      string         `json:"name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Password  string         `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role      string         `json:"role" gorm:"type:varchar(20);default:USER"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
