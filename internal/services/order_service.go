package services

import (
	"fmt"
	"log"
	"strconv"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderService handles order creation, queries, and customer-initiated
// status changes.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	cartRepo    repositories.CartRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, cartRepo repositories.CartRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
	}
}

// Create builds a PENDING order for the user. A non-empty item list is a
// direct purchase; otherwise the user's cart supplies the lines. Unit prices
// are snapshotted from the catalog at this moment and the total is fixed from
// those snapshots. The cart is not touched here; it is only pruned after the
// payment settles, so one cart can back several pending orders.
func (s *OrderService) Create(userID uint, req CreateOrderRequest) (*models.Order, error) {
	var items []models.OrderItem
	var totalPrice int64

	if len(req.Items) > 0 {
		// Direct purchase: resolve every referenced product in one batch.
		// All-or-nothing; a single unknown id rejects the whole request.
		productIDs := make([]uint, 0, len(req.Items))
		for _, item := range req.Items {
			productIDs = append(productIDs, item.ProductID)
		}

		products, err := s.productRepo.GetByIDs(productIDs)
		if err != nil {
			return nil, err
		}
		if len(products) != len(req.Items) {
			return nil, apperrors.NewInvalidInput("order request contains unknown products")
		}

		productMap := make(map[uint]models.Product, len(products))
		for _, p := range products {
			productMap[p.ID] = p
		}

		for _, item := range req.Items {
			product := productMap[item.ProductID]
			totalPrice += product.Price * int64(item.Quantity)
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
		}
	} else {
		// Cart purchase: every line currently in the cart becomes an order item.
		cart, err := s.cartRepo.GetByUser(userID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.NewInvalidInput("cannot create an order from an empty cart")
			}
			return nil, err
		}

		cartItems, err := s.cartRepo.ListItems(cart.ID)
		if err != nil {
			return nil, err
		}
		if len(cartItems) == 0 {
			return nil, apperrors.NewInvalidInput("cannot create an order from an empty cart")
		}

		for _, item := range cartItems {
			if item.Product == nil {
				return nil, apperrors.NewInvalidInput("cart references a product that no longer exists")
			}
			totalPrice += item.Product.Price * int64(item.Quantity)
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			})
		}
	}

	order := &models.Order{
		UserID:          userID,
		RecipientName:   req.RecipientName,
		RecipientPhone:  req.RecipientPhone,
		ZipCode:         req.ZipCode,
		Address1:        req.Address1,
		Address2:        req.Address2,
		GatePassword:    req.GatePassword,
		DeliveryRequest: req.DeliveryRequest,
		TotalPrice:      totalPrice,
		Status:          models.StatusPending,
		Items:           items,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// List returns one page of the user's orders as summaries, newest first.
func (s *OrderService) List(userID uint, page, limit int) (*PaginatedOrders, error) {
	orders, total, err := s.orderRepo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, OrderSummary{
			ID:                 order.ID,
			OrderNo:            strconv.FormatUint(uint64(order.ID), 10),
			TotalPrice:         order.TotalPrice,
			Status:             order.Status,
			CreatedAt:          order.CreatedAt,
			ItemCount:          len(order.Items),
			RepresentativeName: representativeName(order.Items),
		})
	}

	return &PaginatedOrders{
		Data:       summaries,
		Pagination: newPagination(total, page, limit),
	}, nil
}

// Get returns the full order detail, including items and payment, after
// checking ownership.
func (s *OrderService) Get(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetDetail(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NewForbidden("no permission to view order %d", orderID)
	}
	// Purchaser info is an admin-only concern.
	order.User = nil
	return order, nil
}

// UpdateStatus applies a customer-requested transition (cancel or return)
// after validating it against the status machine.
func (s *OrderService) UpdateStatus(userID, orderID uint, req UpdateOrderStatusRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NewForbidden("no permission to modify order %d", orderID)
	}

	if !order.Status.CustomerTransitionAllowed(req.Status) {
		switch req.Status {
		case models.StatusCanceled:
			return nil, apperrors.NewInvalidInput("orders already in fulfillment cannot be canceled")
		case models.StatusReturnRequested:
			return nil, apperrors.NewInvalidInput("only delivered orders can be returned")
		default:
			return nil, apperrors.NewInvalidInput("invalid status change request")
		}
	}

	if err := s.orderRepo.UpdateStatus(orderID, req.Status); err != nil {
		return nil, err
	}
	if req.Reason != "" {
		log.Printf("Order %d status changed to %s by user %d, reason: %s", orderID, req.Status, userID, req.Reason)
	}

	order.Status = req.Status
	return order, nil
}

// representativeName condenses an order's items into one display string:
// the first item's product name plus a count of the rest.
func representativeName(items []models.OrderItem) string {
	if len(items) == 0 {
		return "no items"
	}
	first := "product unavailable"
	if items[0].Product != nil {
		first = items[0].Product.Name
	}
	if other := len(items) - 1; other > 0 {
		return fmt.Sprintf("%s and %d more", first, other)
	}
	return first
}
