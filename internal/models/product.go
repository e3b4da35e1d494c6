package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a product in the store. Price is an integer currency
// unit; orders snapshot it at creation time.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=1,max=100"`
	Description string         `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price       int64          `json:"price" validate:"required,gt=0"`
	Stock       int            `json:"stock" validate:"gte=0"`
	Image       string         `json:"image" gorm:"type:varchar(255)"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
