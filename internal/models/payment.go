package models

import "time"

// Payment records the settled transaction for exactly one order. PaymentKey
// is the provider-issued token and doubles as the idempotency key for the
// local commit: a retried confirm with the same key finds the existing row
// instead of double-applying.
type Payment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"uniqueIndex;not null"`
	PaymentKey string    `json:"payment_key" gorm:"uniqueIndex;type:varchar(200);not null"`
	Method     string    `json:"method" gorm:"type:varchar(50);not null"`
	Amount     int64     `json:"amount" gorm:"not null"`
	Status     string    `json:"status" gorm:"type:varchar(20);not null"`
	ApprovedAt time.Time `json:"approved_at"`
	CreatedAt  time.Time `json:"created_at"`
}
