package service

import (
	"errors"

	"github.com/trendora/trendora-backend/internal/app/dto"
	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/internal/app/repository"
	apperrors "github.com/trendora/trendora-backend/internal/errors"
	"github.com/trendora/trendora-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrWishlistItemNotFound      = errors.New("wishlist item not found")
	ErrWishlistItemAlreadyExists = errors.New("product is already in wishlist")
)

type WishlistService interface {
	ListWishlist(userID uint) ([]dto.WishlistItemView, error)
	AddToWishlist(userID, productID uint) (*model.WishlistItem, error)
	RemoveFromWishlist(userID, itemID uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// ListWishlist returns the caller's saved products, newest first
func (s *wishlistService) ListWishlist(userID uint) ([]dto.WishlistItemView, error) {
	items, err := s.wishlistRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	return dto.NewWishlistItemViews(items), nil
}

// AddToWishlist saves an active product for the caller. Adding the same
// product twice is a conflict, whether caught by the pre-check or by the
// unique index under concurrency.
func (s *wishlistService) AddToWishlist(userID, productID uint) (*model.WishlistItem, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}

	if _, err := s.wishlistRepo.FindByUserAndProduct(userID, productID); err == nil {
		return nil, ErrWishlistItemAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.wishlistRepo.Create(&item); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrWishlistItemAlreadyExists
		}
		return nil, err
	}

	logger.Info("Product added to wishlist", map[string]interface{}{
		"wishlist_item_id": item.ID,
		"user_id":          userID,
		"product_id":       productID,
	})
	return &item, nil
}

// RemoveFromWishlist deletes an entry by id, scoped to the caller. Another
// user's entry id looks exactly like a missing one.
func (s *wishlistService) RemoveFromWishlist(userID, itemID uint) error {
	item, err := s.wishlistRepo.FindByIDAndUser(itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWishlistItemNotFound
		}
		return err
	}

	if err := s.wishlistRepo.Delete(item.ID); err != nil {
		return err
	}

	logger.Info("Product removed from wishlist", map[string]interface{}{
		"wishlist_item_id": itemID,
		"user_id":          userID,
	})
	return nil
}
