package repository

import (
	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/pkg/logger"
	"gorm.io/gorm"
)

// CategoryWithCount pairs a category with its active product count,
// computed at read time.
type CategoryWithCount struct {
	Category     model.Category
	ProductCount int64
}

type CategoryRepository interface {
	Create(category *model.Category) error
	FindActive() ([]model.Category, error)
	FindBySlug(slug string) (*model.Category, error)
	FindByID(id uint) (*model.Category, error)
	CountActiveProducts(categoryID uint) (int64, error)
	ListActiveWithCounts() ([]CategoryWithCount, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindActive() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		logger.Error("Failed to find active categories", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) CountActiveProducts(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count active products for category", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return 0, err
	}
	return count, nil
}

func (r *categoryRepository) ListActiveWithCounts() ([]CategoryWithCount, error) {
	logger.Debug("Listing active categories with product counts", nil)

	categories, err := r.FindActive()
	if err != nil {
		return nil, err
	}

	result := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := r.CountActiveProducts(category.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CategoryWithCount{Category: category, ProductCount: count})
	}

	logger.Debug("Active categories listed", map[string]interface{}{
		"count": len(result),
	})
	return result, nil
}
