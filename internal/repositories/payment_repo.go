package repositories

import "storefront/internal/models"

// PaymentRepository defines the interface for payment data access.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	// GetByKey looks up a payment by its provider payment key. Used as the
	// idempotency check before contacting the provider again.
	GetByKey(paymentKey string) (*models.Payment, error)
}
