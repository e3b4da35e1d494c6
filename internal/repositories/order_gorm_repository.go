package repositories

import (
	"fmt"
	"strconv"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create persists the order and its items in one insert chain.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID loads an order with its items.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("order with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetDetail loads an order with items, item products, payment, and user.
func (r *GORMOrderRepository) GetDetail(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Items.Product").
		Preload("Payment").
		Preload("User").
		First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("order with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order detail for ID %d: %w", id, err)
	}
	return &order, nil
}

// ListByUser returns one page of the user's orders, newest first.
func (r *GORMOrderRepository) ListByUser(userID uint, page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := r.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders for user %d: %w", userID, err)
	}

	var orders []models.Order
	err := r.db.
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders for user %d: %w", userID, err)
	}
	return orders, total, nil
}

// ListAdmin returns one filtered page over all orders, newest first.
func (r *GORMOrderRepository) ListAdmin(filter AdminOrderFilter, page, limit int) ([]models.Order, int64, error) {
	base := r.db.Model(&models.Order{}).
		Joins("LEFT JOIN users ON users.id = orders.user_id")

	if filter.Status != "" {
		base = base.Where("orders.status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := r.db.
			Where("orders.recipient_name LIKE ?", like).
			Or("users.username LIKE ?", like).
			Or("users.name LIKE ?", like)
		if id, err := strconv.Atoi(filter.Search); err == nil {
			cond = cond.Or("orders.id = ?", id)
		}
		base = base.Where(cond)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count admin orders: %w", err)
	}

	var orders []models.Order
	err := base.
		Preload("Items.Product").
		Preload("User").
		Order("orders.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list admin orders: %w", err)
	}
	return orders, total, nil
}

// UpdateStatus sets the order's status unconditionally.
func (r *GORMOrderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status for order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("order with ID %d not found for status update", id)
	}
	return nil
}

// UpdateFulfillment sets status plus tracking info, keeping existing tracking
// values when the new ones are nil.
func (r *GORMOrderRepository) UpdateFulfillment(id uint, status models.OrderStatus, trackingNumber, carrier *string) error {
	updates := map[string]interface{}{"status": status}
	if trackingNumber != nil {
		updates["tracking_number"] = *trackingNumber
	}
	if carrier != nil {
		updates["carrier"] = *carrier
	}

	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update fulfillment for order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("order with ID %d not found for status update", id)
	}
	return nil
}

// MarkPaid flips PENDING -> PAID in one conditional update. The status guard
// lives inside the same statement, so a concurrent confirm that already
// settled the order makes this report false instead of double-applying.
func (r *GORMOrderRepository) MarkPaid(id uint) (bool, error) {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Update("status", models.StatusPaid)
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark order %d paid: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
