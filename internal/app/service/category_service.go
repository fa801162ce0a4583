package service

import (
	"errors"

	"github.com/trendora/trendora-backend/internal/app/dto"
	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/internal/app/repository"
	apperrors "github.com/trendora/trendora-backend/internal/errors"
	"github.com/trendora/trendora-backend/pkg/logger"
	"github.com/trendora/trendora-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category name already exists")
)

// CategoryMutation carries admin-supplied category fields
type CategoryMutation struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

type CategoryService interface {
	ListCategories() ([]dto.CategoryView, error)
	GetCategoryBySlug(slug string) (*dto.CategoryView, error)
	CreateCategory(input CategoryMutation) (*model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// ListCategories returns active categories with their active product counts,
// ordered by name.
func (s *categoryService) ListCategories() ([]dto.CategoryView, error) {
	withCounts, err := s.categoryRepo.ListActiveWithCounts()
	if err != nil {
		return nil, err
	}

	views := make([]dto.CategoryView, 0, len(withCounts))
	for _, c := range withCounts {
		views = append(views, dto.NewCategoryView(c.Category, c.ProductCount))
	}
	return views, nil
}

func (s *categoryService) GetCategoryBySlug(slug string) (*dto.CategoryView, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if !category.IsActive {
		return nil, ErrCategoryNotFound
	}

	count, err := s.categoryRepo.CountActiveProducts(category.ID)
	if err != nil {
		return nil, err
	}

	view := dto.NewCategoryView(*category, count)
	return &view, nil
}

// CreateCategory derives the slug from the name. Name uniqueness is
// arbitrated by the store; a losing concurrent create maps to the same
// conflict as a plain duplicate.
func (s *categoryService) CreateCategory(input CategoryMutation) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": input.Name,
	})

	category := model.Category{
		Name:        input.Name,
		Slug:        util.Slugify(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Create(&category); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrCategoryNameExists
		}
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	return &category, nil
}
