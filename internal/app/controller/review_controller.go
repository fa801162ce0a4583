package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trendora/trendora-backend/internal/app/service"
	"github.com/trendora/trendora-backend/internal/errors"
	"github.com/trendora/trendora-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// CreateReview handles review submission for a product. One review per
// caller per product.
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid review payload", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ReviewInvalidRating, "Rating must be between 1 and 5")
		return
	}

	review, err := ctrl.reviewService.CreateReview(c.Param("slug"), userID, input)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrProductNotFound):
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
		case stderrors.Is(err, service.ErrReviewAlreadyExists):
			errors.Conflict(c, errors.ReviewAlreadyExists, "You have already reviewed this product")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"slug":    c.Param("slug"),
				"user_id": userID,
			})
			errors.InternalError(c, "Failed to create review")
		}
		return
	}

	log.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"user_id":   userID,
	})
	c.JSON(http.StatusCreated, review)
}

// ListReviews handles the public review listing for a product
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	reviews, err := ctrl.reviewService.ListReviews(c.Param("slug"))
	if err != nil {
		if stderrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to list reviews", err, map[string]interface{}{
			"slug": c.Param("slug"),
		})
		errors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
