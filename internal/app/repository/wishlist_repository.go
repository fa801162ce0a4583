package repository

import (
	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(item *model.WishlistItem) error
	FindByUserID(userID uint) ([]model.WishlistItem, error)
	FindByIDAndUser(id, userID uint) (*model.WishlistItem, error)
	FindByUserAndProduct(userID, productID uint) (*model.WishlistItem, error)
	Delete(id uint) error
	DeleteByProduct(productID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	logger.Debug("Creating wishlist item in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create wishlist item in database", err, map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
		})
		return err
	}

	logger.Debug("Wishlist item created in database", map[string]interface{}{
		"wishlist_item_id": item.ID,
	})
	return nil
}

func (r *wishlistRepository) FindByUserID(userID uint) ([]model.WishlistItem, error) {
	logger.Debug("Finding wishlist items by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var items []model.WishlistItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Category").
				Preload("Images", func(db *gorm.DB) *gorm.DB {
					return db.Order("product_images.sort_order ASC")
				}).
				Preload("Variants", func(db *gorm.DB) *gorm.DB {
					return db.Order("product_variants.id ASC")
				}).
				Preload("Reviews")
		}).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find wishlist items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Wishlist items found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

// FindByIDAndUser scopes the lookup to the owner; foreign ids surface as
// record-not-found, never as someone else's row.
func (r *wishlistRepository) FindByIDAndUser(id, userID uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) FindByUserAndProduct(userID, productID uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) Delete(id uint) error {
	logger.Debug("Deleting wishlist item from database", map[string]interface{}{
		"wishlist_item_id": id,
	})

	if err := r.db.Delete(&model.WishlistItem{}, id).Error; err != nil {
		logger.Error("Failed to delete wishlist item from database", err, map[string]interface{}{
			"wishlist_item_id": id,
		})
		return err
	}
	return nil
}

// DeleteByProduct removes every user's reference to a product; called when
// the product itself is deleted.
func (r *wishlistRepository) DeleteByProduct(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&model.WishlistItem{}).Error
}
