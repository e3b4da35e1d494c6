package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order.
//
// Main line: PENDING -> PAID -> SHIPPED -> DELIVERED.
// Side branches: CANCELED (customer-requested from PENDING or PAID) and
// RETURN_REQUESTED (customer-requested from DELIVERED). Administrators may
// set any known status; customer transitions go through
// CustomerTransitionAllowed.
type OrderStatus string

const (
	StatusPending         OrderStatus = "PENDING"
	StatusPaid            OrderStatus = "PAID"
	StatusShipped         OrderStatus = "SHIPPED"
	StatusDelivered       OrderStatus = "DELIVERED"
	StatusCanceled        OrderStatus = "CANCELED"
	StatusReturnRequested OrderStatus = "RETURN_REQUESTED"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCanceled, StatusReturnRequested:
		return true
	}
	return false
}

// CustomerTransitionAllowed reports whether a customer may move an order from
// s to target. Customers may only cancel orders that have not entered
// fulfillment, and may only request a return once delivery has completed.
func (s OrderStatus) CustomerTransitionAllowed(target OrderStatus) bool {
	switch target {
	case StatusCanceled:
		return s == StatusPending || s == StatusPaid
	case StatusReturnRequested:
		return s == StatusDelivered
	}
	return false
}

// Order is a customer's purchase request snapshot. TotalPrice is fixed at
// creation from the item price snapshots and never recomputed, even if
// catalog prices change afterward.
type Order struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	RecipientName   string         `json:"recipient_name" gorm:"type:varchar(100);not null"`
	RecipientPhone  string         `json:"recipient_phone" gorm:"type:varchar(30);not null"`
	ZipCode         string         `json:"zip_code" gorm:"type:varchar(10);not null"`
	Address1        string         `json:"address1" gorm:"type:varchar(255);not null"`
	Address2        string         `json:"address2" gorm:"type:varchar(255);not null"`
	GatePassword    string         `json:"gate_password,omitempty" gorm:"type:varchar(50)"`
	DeliveryRequest string         `json:"delivery_request,omitempty" gorm:"type:varchar(255)"`
	TotalPrice      int64          `json:"total_price" gorm:"not null"`
	Status          OrderStatus    `json:"status" gorm:"type:varchar(20);index;not null"`
	TrackingNumber  *string        `json:"tracking_number" gorm:"type:varchar(50)"`
	Carrier         *string        `json:"carrier" gorm:"type:varchar(50)"`
	Items           []OrderItem    `json:"items"`
	Payment         *Payment       `json:"payment,omitempty"`
	User            *User          `json:"user,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// OrderItem is a single line of an order. Price is the per-unit catalog price
// snapshot taken at order-creation time; it is immutable thereafter.
type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"index;not null"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     int64     `json:"price" gorm:"not null"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
