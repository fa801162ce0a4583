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
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this product")
)

// ReviewInput is the caller-supplied review body. The author comes from the
// authenticated context, never from the payload.
type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

type ReviewService interface {
	CreateReview(productSlug string, userID uint, input ReviewInput) (*dto.ReviewView, error)
	ListReviews(productSlug string) ([]dto.ReviewView, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// CreateReview records one review per user per product. The pre-check gives
// a friendly rejection in the common case; the unique index settles races.
func (s *reviewService) CreateReview(productSlug string, userID uint, input ReviewInput) (*dto.ReviewView, error) {
	product, err := s.productRepo.FindBySlug(productSlug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if _, err := s.reviewRepo.FindByProductAndUser(product.ID, userID); err == nil {
		return nil, ErrReviewAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := model.Review{
		ProductID: product.ID,
		UserID:    userID,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
	}

	if err := s.reviewRepo.Create(&review); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrReviewAlreadyExists
		}
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": product.ID,
		"user_id":    userID,
		"rating":     review.Rating,
	})

	created, err := s.reviewRepo.FindByID(review.ID)
	if err != nil {
		return nil, err
	}

	view := dto.ReviewView{
		ID:        created.ID,
		Username:  created.User.Name,
		Rating:    created.Rating,
		Title:     created.Title,
		Comment:   created.Comment,
		CreatedAt: created.CreatedAt,
	}
	return &view, nil
}

// ListReviews returns a product's reviews, newest first
func (s *reviewService) ListReviews(productSlug string) ([]dto.ReviewView, error) {
	product, err := s.productRepo.FindBySlug(productSlug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProductID(product.ID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, dto.ReviewView{
			ID:        r.ID,
			Username:  r.User.Name,
			Rating:    r.Rating,
			Title:     r.Title,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}
	return views, nil
}
