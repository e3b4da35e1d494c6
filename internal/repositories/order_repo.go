package repositories

import (
	"storefront/internal/models"
)

// AdminOrderFilter narrows the admin order listing. Status filters on an
// exact status; Search matches recipient name, purchaser username or real
// name, and (when numeric) the order id.
type AdminOrderFilter struct {
	Status models.OrderStatus
	Search string
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists an order together with its items as one unit.
	Create(order *models.Order) error
	// GetByID loads an order with its items.
	GetByID(id uint) (*models.Order, error)
	// GetDetail loads an order with items (and their products), payment, and user.
	GetDetail(id uint) (*models.Order, error)
	// ListByUser returns a page of the user's orders, newest first, with
	// items and their products, plus the total count.
	ListByUser(userID uint, page, limit int) ([]models.Order, int64, error)
	// ListAdmin returns a filtered page over all orders, newest first, with
	// purchaser info, plus the total count.
	ListAdmin(filter AdminOrderFilter, page, limit int) ([]models.Order, int64, error)
	// UpdateStatus sets the order's status unconditionally.
	UpdateStatus(id uint, status models.OrderStatus) error
	// UpdateFulfillment sets status and, when non-nil, tracking info.
	UpdateFulfillment(id uint, status models.OrderStatus, trackingNumber, carrier *string) error
	// MarkPaid transitions PENDING -> PAID as a single conditional update.
	// Returns false when the order was not PENDING (or does not exist), so
	// callers can fail the losing side of a concurrent confirm.
	MarkPaid(id uint) (bool, error)
}
