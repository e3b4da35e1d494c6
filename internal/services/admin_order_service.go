package services

import (
	"fmt"
	"strconv"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// AdminOrderService handles the administrative order surface: filtered
// listings, full detail, and fulfillment status updates.
type AdminOrderService struct {
	orderRepo repositories.OrderRepository
}

// NewAdminOrderService creates a new AdminOrderService.
func NewAdminOrderService(orderRepo repositories.OrderRepository) *AdminOrderService {
	return &AdminOrderService{
		orderRepo: orderRepo,
	}
}

// List returns one filtered page over all orders, with purchaser info.
func (s *AdminOrderService) List(query AdminOrderListQuery) (*PaginatedAdminOrders, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, apperrors.NewInvalidInput("unknown order status %q", query.Status)
	}

	orders, total, err := s.orderRepo.ListAdmin(repositories.AdminOrderFilter{
		Status: query.Status,
		Search: query.Search,
	}, query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]AdminOrderSummary, 0, len(orders))
	for _, order := range orders {
		username := ""
		if order.User != nil {
			username = order.User.Username
		}
		summaries = append(summaries, AdminOrderSummary{
			ID:            order.ID,
			OrderNo:       strconv.FormatUint(uint64(order.ID), 10),
			TotalPrice:    order.TotalPrice,
			Status:        order.Status,
			CreatedAt:     order.CreatedAt,
			RecipientName: order.RecipientName,
			Username:      username,
			ItemsSummary:  itemsSummary(order.Items),
		})
	}

	return &PaginatedAdminOrders{
		Data:       summaries,
		Pagination: newPagination(total, query.Page, query.Limit),
	}, nil
}

// Get returns the full order detail including purchaser, items, and payment.
func (s *AdminOrderService) Get(orderID uint) (*models.Order, error) {
	return s.orderRepo.GetDetail(orderID)
}

// UpdateStatus sets any known status on an order, updating tracking info when
// supplied. No transition guard applies on the admin path; an administrator
// may move an order anywhere in the lifecycle.
func (s *AdminOrderService) UpdateStatus(orderID uint, req AdminUpdateOrderRequest) (*models.Order, error) {
	if !req.Status.Valid() {
		return nil, apperrors.NewInvalidInput("unknown order status %q", req.Status)
	}

	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateFulfillment(orderID, req.Status, req.TrackingNumber, req.Carrier); err != nil {
		return nil, err
	}
	return s.orderRepo.GetDetail(orderID)
}

// itemsSummary condenses an order's items for the admin listing, labelling
// orders whose first product has since been removed from the catalog.
func itemsSummary(items []models.OrderItem) string {
	if len(items) == 0 {
		return "no items"
	}
	first := "deleted product"
	if items[0].Product != nil {
		first = items[0].Product.Name
	}
	if other := len(items) - 1; other > 0 {
		return fmt.Sprintf("%s and %d more", first, other)
	}
	return first
}
