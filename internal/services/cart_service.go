package services

import (
	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles the per-user shopping cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart priced at current catalog prices, creating
// an empty cart on first access.
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	view := &CartView{CartID: cart.ID, Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		var lineTotal int64
		if item.Product != nil {
			lineTotal = item.Product.Price * int64(item.Quantity)
		}
		view.TotalCartPrice += lineTotal
		view.Items = append(view.Items, CartLine{
			ID:         item.ID,
			Quantity:   item.Quantity,
			Product:    item.Product,
			TotalPrice: lineTotal,
		})
	}
	return view, nil
}

// AddItem puts a product into the cart. Adding a product already in the cart
// merges the quantities onto the existing line.
func (s *CartService) AddItem(userID uint, req AddToCartRequest) (*models.CartItem, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.productRepo.GetByID(req.ProductID); err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindItem(cart.ID, req.ProductID)
	if err == nil {
		newQuantity := existing.Quantity + req.Quantity
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, newQuantity); err != nil {
			return nil, err
		}
		existing.Quantity = newQuantity
		return existing, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := s.cartRepo.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem changes the quantity of a cart line the user owns.
func (s *CartService) UpdateItem(userID, itemID uint, req UpdateCartItemRequest) (*models.CartItem, error) {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.UpdateItemQuantity(item.ID, req.Quantity); err != nil {
		return nil, err
	}
	item.Quantity = req.Quantity
	return item, nil
}

// RemoveItem deletes a cart line the user owns.
func (s *CartService) RemoveItem(userID, itemID uint) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.DeleteItem(item.ID)
}

// ownedItem loads a cart item and verifies it belongs to the user's cart.
func (s *CartService) ownedItem(userID, itemID uint) (*models.CartItem, error) {
	item, err := s.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewForbidden("no permission for cart item %d", itemID)
		}
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, apperrors.NewForbidden("no permission for cart item %d", itemID)
	}
	return item, nil
}
