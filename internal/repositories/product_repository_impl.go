package repositories

import (
	"context"
	"errors"
	"log"

	"campuskart/internal/models"
	"campuskart/internal/repositories/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *gorm.DB, cache *cache.CacheService) ProductRepository {
	return &productRepository{
		db:    db,
		cache: cache,
	}
}

func (r *productRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return ErrDatabaseOperation
	}
	r.invalidateListing()
	return nil
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, ErrDatabaseOperation
	}
	if err := r.loadMemberships(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListAll() ([]models.Product, error) {
	if products, err := r.cache.GetProductListing(context.Background()); err == nil {
		return products, nil
	}

	var products []models.Product
	if err := r.db.Preload("Seller").Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, ErrDatabaseOperation
	}

	for i := range products {
		if products[i].Seller != nil {
			pub := products[i].Seller.Public()
			products[i].SellerInfo = &pub
			products[i].Seller = nil
		}
		if err := r.loadMemberships(&products[i]); err != nil {
			return nil, err
		}
	}

	if err := r.cache.CacheProductListing(context.Background(), products); err != nil {
		log.Printf("failed to cache product listing: %v", err)
	}

	return products, nil
}

func (r *productRepository) ListBySeller(sellerID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	for i := range products {
		if err := r.loadMemberships(&products[i]); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *productRepository) Update(product *models.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return ErrDatabaseOperation
	}
	r.invalidateListing()
	return nil
}

func (r *productRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSave{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		return ErrDatabaseOperation
	}
	r.invalidateListing()
	return nil
}

func (r *productRepository) ToggleLike(productID, userID uint) (bool, error) {
	member, err := r.toggleMembership(&models.ProductLike{ProductID: productID, UserID: userID},
		"product_id = ? AND user_id = ?", productID, userID)
	if err != nil {
		return false, err
	}
	r.invalidateListing()
	return member, nil
}

func (r *productRepository) ToggleSave(productID, userID uint) (bool, error) {
	member, err := r.toggleMembership(&models.ProductSave{ProductID: productID, UserID: userID},
		"product_id = ? AND user_id = ?", productID, userID)
	if err != nil {
		return false, err
	}
	r.invalidateListing()
	return member, nil
}

// toggleMembership adds the row if absent, else removes it. The insert uses
// ON CONFLICT DO NOTHING so two concurrent toggles from different actors
// never overwrite each other's membership.
func (r *productRepository) toggleMembership(row interface{}, query string, args ...interface{}) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if result.Error != nil {
		return false, ErrDatabaseOperation
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	if err := r.db.Where(query, args...).Delete(row).Error; err != nil {
		return false, ErrDatabaseOperation
	}
	return false, nil
}

func (r *productRepository) loadMemberships(product *models.Product) error {
	var likes []models.ProductLike
	if err := r.db.Where("product_id = ?", product.ID).Find(&likes).Error; err != nil {
		return ErrDatabaseOperation
	}
	var saves []models.ProductSave
	if err := r.db.Where("product_id = ?", product.ID).Find(&saves).Error; err != nil {
		return ErrDatabaseOperation
	}

	product.Likes = make([]uint, 0, len(likes))
	for _, l := range likes {
		product.Likes = append(product.Likes, l.UserID)
	}
	product.SavedBy = make([]uint, 0, len(saves))
	for _, s := range saves {
		product.SavedBy = append(product.SavedBy, s.UserID)
	}
	return nil
}

func (r *productRepository) invalidateListing() {
	if err := r.cache.InvalidateProductListing(context.Background()); err != nil {
		log.Printf("failed to invalidate product listing cache: %v", err)
	}
}
