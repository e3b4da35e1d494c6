package repositories

import "storefront/internal/models"

// CartRepository defines the interface for cart data access. Carts are
// created lazily, one per user.
type CartRepository interface {
	// GetOrCreate returns the user's cart, creating an empty one if absent.
	GetOrCreate(userID uint) (*models.Cart, error)
	// GetByUser returns the user's cart, or NotFound if none exists yet.
	GetByUser(userID uint) (*models.Cart, error)
	// ListItems returns the cart's items with their products, newest first.
	ListItems(cartID uint) ([]models.CartItem, error)
	// FindItem returns the cart line for a product, or NotFound.
	FindItem(cartID, productID uint) (*models.CartItem, error)
	// GetItem returns a cart item with its owning cart loaded.
	GetItem(itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(itemID uint) error
	// DeleteItemsByProduct removes exactly the cart lines whose product id is
	// in productIDs, leaving all other lines untouched.
	DeleteItemsByProduct(cartID uint, productIDs []uint) error
}
