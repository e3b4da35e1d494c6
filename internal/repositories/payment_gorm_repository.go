package repositories

import (
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{
		db: db,
	}
}

// Create inserts a payment. The unique indexes on order_id and payment_key
// make a duplicate insert fail rather than double-record a settlement.
func (r *GORMPaymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByKey retrieves a payment by its provider payment key.
func (r *GORMPaymentRepository) GetByKey(paymentKey string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "payment_key = ?", paymentKey).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("payment with key %s not found", paymentKey)
		}
		return nil, fmt.Errorf("failed to get payment by key: %w", err)
	}
	return &payment, nil
}
