package repositories

import "campuskart/internal/models"

// ProductRepository defines the interface for product listings and their
// like/save membership sets.
type ProductRepository interface {
	// Create stores a new listing.
	Create(product *models.Product) error

	// GetByID retrieves a listing with its membership sets loaded.
	GetByID(id uint) (*models.Product, error)

	// ListAll returns every listing with the seller projection resolved.
	ListAll() ([]models.Product, error)

	// ListBySeller returns every listing owned by the given user.
	ListBySeller(sellerID uint) ([]models.Product, error)

	// Update persists changes to an existing listing.
	Update(product *models.Product) error

	// Delete removes a listing and its membership rows.
	Delete(id uint) error

	// ToggleLike flips the actor's membership in the likes set and reports
	// whether the actor is a member afterwards. The mutation is a single-row
	// insert or delete keyed by (product, user), never a read-modify-write
	// of the whole set.
	ToggleLike(productID, userID uint) (bool, error)

	// ToggleSave flips the actor's membership in the savedBy set.
	ToggleSave(productID, userID uint) (bool, error)
}
