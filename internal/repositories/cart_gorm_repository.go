package repositories

import (
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetOrCreate returns the user's cart, creating an empty one if absent.
func (r *GORMCartRepository) GetOrCreate(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.First(&cart, "user_id = ?", userID).Error
	if err == nil {
		return &cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to get cart for user %d: %w", userID, err)
	}

	cart = models.Cart{UserID: userID}
	if err := r.db.Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart for user %d: %w", userID, err)
	}
	return &cart, nil
}

// GetByUser returns the user's cart, or NotFound if none exists yet.
func (r *GORMCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("cart for user %d not found", userID)
		}
		return nil, fmt.Errorf("failed to get cart for user %d: %w", userID, err)
	}
	return &cart, nil
}

// ListItems returns the cart's items with their products, newest first.
func (r *GORMCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items for cart %d: %w", cartID, err)
	}
	return items, nil
}

// FindItem returns the cart line for a product, or NotFound.
func (r *GORMCartRepository) FindItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("cart %d has no item for product %d", cartID, productID)
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return &item, nil
}

// GetItem returns a cart item with its owning cart loaded, for ownership checks.
func (r *GORMCartRepository) GetItem(itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "id = ?", itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("cart item with ID %d not found", itemID)
		}
		return nil, fmt.Errorf("failed to get cart item %d: %w", itemID, err)
	}
	return &item, nil
}

// CreateItem adds a new line to a cart.
func (r *GORMCartRepository) CreateItem(item *models.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// UpdateItemQuantity sets the quantity of an existing cart line.
func (r *GORMCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	res := r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("cart item with ID %d not found for update", itemID)
	}
	return nil
}

// DeleteItem removes one line from a cart.
func (r *GORMCartRepository) DeleteItem(itemID uint) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("cart item with ID %d not found for deletion", itemID)
	}
	return nil
}

// DeleteItemsByProduct removes exactly the lines whose product id is in
// productIDs. Lines for other products stay in the cart.
func (r *GORMCartRepository) DeleteItemsByProduct(cartID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	err := r.db.
		Where("cart_id = ? AND product_id IN ?", cartID, productIDs).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to prune cart %d: %w", cartID, err)
	}
	return nil
}
