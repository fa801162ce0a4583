package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trendora/trendora-backend/internal/app/service"
	"github.com/trendora/trendora-backend/internal/errors"
	"github.com/trendora/trendora-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: wishlistService}
}

type wishlistAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist handles the caller's wishlist listing
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	items, err := ctrl.wishlistService.ListWishlist(userID)
	if err != nil {
		log.Error("Failed to list wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "Failed to fetch wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// AddToWishlist handles saving a product for the caller
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var req wishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationRequired, "product_id is required")
		return
	}

	item, err := ctrl.wishlistService.AddToWishlist(userID, req.ProductID)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrProductNotFound):
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
		case stderrors.Is(err, service.ErrWishlistItemAlreadyExists):
			errors.Conflict(c, errors.WishlistItemAlreadyExists, "Product is already in your wishlist")
		default:
			log.Error("Failed to add to wishlist", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			errors.InternalError(c, "Failed to add to wishlist")
		}
		return
	}

	log.Info("Product added to wishlist", map[string]interface{}{
		"wishlist_item_id": item.ID,
		"user_id":          userID,
	})
	c.JSON(http.StatusCreated, item)
}

// RemoveFromWishlist handles deletion of one of the caller's entries.
// Another user's entry id is indistinguishable from a missing one.
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid wishlist entry ID")
		return
	}

	if err := ctrl.wishlistService.RemoveFromWishlist(userID, uint(id)); err != nil {
		if stderrors.Is(err, service.ErrWishlistItemNotFound) {
			errors.NotFound(c, errors.WishlistItemNotFound, "Wishlist entry not found")
			return
		}
		log.Error("Failed to remove from wishlist", err, map[string]interface{}{
			"user_id":          userID,
			"wishlist_item_id": id,
		})
		errors.InternalError(c, "Failed to remove from wishlist")
		return
	}

	log.Info("Product removed from wishlist", map[string]interface{}{
		"wishlist_item_id": id,
		"user_id":          userID,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
