package services

import (
	"time"

	"storefront/internal/models"
)

// OrderItemInput is one line of a direct-purchase request.
type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required,min=1"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest creates a PENDING order. A non-empty Items list means
// direct purchase; an absent or empty list means "order my whole cart".
type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items" validate:"omitempty,dive"`
	RecipientName   string           `json:"recipient_name" validate:"required,max=100"`
	RecipientPhone  string           `json:"recipient_phone" validate:"required,max=30"`
	ZipCode         string           `json:"zip_code" validate:"required,max=10"`
	Address1        string           `json:"address1" validate:"required,max=255"`
	Address2        string           `json:"address2" validate:"required,max=255"`
	GatePassword    string           `json:"gate_password" validate:"omitempty,max=50"`
	DeliveryRequest string           `json:"delivery_request" validate:"omitempty,max=255"`
}

// ConfirmPaymentRequest asks the storefront to settle a payment the client
// already authorized with the provider.
type ConfirmPaymentRequest struct {
	PaymentKey string `json:"payment_key" validate:"required"`
	OrderID    uint   `json:"order_id" validate:"required,min=1"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
}

// ConfirmAck acknowledges a settled payment.
type ConfirmAck struct {
	Message string `json:"message"`
	OrderID uint   `json:"order_id"`
}

// UpdateOrderStatusRequest is a customer-initiated status change. Only
// CANCELED and RETURN_REQUESTED are reachable this way.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=CANCELED RETURN_REQUESTED"`
	Reason string             `json:"reason" validate:"omitempty,max=255"`
}

// AdminUpdateOrderRequest sets any known status, optionally attaching
// tracking info when shipping.
type AdminUpdateOrderRequest struct {
	Status         models.OrderStatus `json:"status" validate:"required"`
	TrackingNumber *string            `json:"tracking_number" validate:"omitempty,max=50"`
	Carrier        *string            `json:"carrier" validate:"omitempty,max=50"`
}

// AdminOrderListQuery narrows and pages the admin order listing.
type AdminOrderListQuery struct {
	Page   int
	Limit  int
	Status models.OrderStatus
	Search string
}

// Pagination describes one page of a listing.
type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	Limit       int   `json:"limit"`
}

// OrderSummary is one row of a customer's order listing.
type OrderSummary struct {
	ID                 uint               `json:"id"`
	OrderNo            string             `json:"order_no"`
	TotalPrice         int64              `json:"total_price"`
	Status             models.OrderStatus `json:"status"`
	CreatedAt          time.Time          `json:"created_at"`
	ItemCount          int                `json:"item_count"`
	RepresentativeName string             `json:"representative_product_name"`
}

// PaginatedOrders is a page of customer order summaries.
type PaginatedOrders struct {
	Data       []OrderSummary `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// AdminOrderSummary is one row of the admin order listing.
type AdminOrderSummary struct {
	ID            uint               `json:"id"`
	OrderNo       string             `json:"order_no"`
	TotalPrice    int64              `json:"total_price"`
	Status        models.OrderStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	RecipientName string             `json:"recipient_name"`
	Username      string             `json:"username"`
	ItemsSummary  string             `json:"items_summary"`
}

// PaginatedAdminOrders is a page of admin order summaries.
type PaginatedAdminOrders struct {
	Data       []AdminOrderSummary `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// AddToCartRequest puts a product into the requester's cart.
type AddToCartRequest struct {
	ProductID uint `json:"product_id" validate:"required,min=1"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest changes the quantity of a cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartLine is one priced row of a cart view.
type CartLine struct {
	ID         uint            `json:"id"`
	Quantity   int             `json:"quantity"`
	Product    *models.Product `json:"product"`
	TotalPrice int64           `json:"total_price"`
}

// CartView is the priced contents of a user's cart.
type CartView struct {
	CartID         uint       `json:"cart_id"`
	TotalCartPrice int64      `json:"total_cart_price"`
	Items          []CartLine `json:"items"`
}

// newPagination builds the pagination envelope for a page of total items.
func newPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	}
}
