package repository

import (
	"strings"

	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortDiscount  ProductSort = "discount_percent"
	ProductSortName      ProductSort = "name"
)

// productSortColumns is the ordering allow-list. Anything else falls back to
// the default ordering (created_at descending) without erroring.
var productSortColumns = map[ProductSort]string{
	ProductSortPrice:     "products.price",
	ProductSortCreatedAt: "products.created_at",
	ProductSortDiscount:  "products.discount_percent",
	ProductSortName:      "products.name",
}

// ProductFilter carries parsed query constraints. Nil pointer / zero value
// means the constraint is absent; supplied constraints compose with AND.
type ProductFilter struct {
	CategorySlug  string
	Gender        *model.Gender
	Brand         string
	MinPrice      *float64
	MaxPrice      *float64
	MinDiscount   *int
	Color         string
	Size          string
	Search        string
	FeaturedOnly  bool
	ActiveOnly    bool
	SortBy        ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	CountWithFilter(filter ProductFilter) (int64, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string, activeOnly bool) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"slug":        product.Slug,
		"brand":       product.Brand,
		"category_id": product.CategoryID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
			"slug": product.Slug,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return nil
}

// BulkCreate inserts products (with their nested images and variants) in
// batches. Used by the seed importer.
func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	if len(products) == 0 {
		return nil
	}

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products in database", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}

	logger.Info("Products bulk created in database", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

// baseQuery preloads everything the presentation layer derives from:
// category name, ordered images, variants and reviews with their authors.
func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.sort_order ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.id ASC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at DESC")
		}).
		Preload("Reviews.User")
}

// applyFilter composes the supplied constraints onto query. Variant-scoped
// constraints (color, size) go through subqueries so product rows never
// duplicate.
func (r *productRepository) applyFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.ActiveOnly {
		query = query.Where("products.is_active = ?", true)
	}
	if filter.FeaturedOnly {
		query = query.Where("products.is_featured = ?", true)
	}

	needsCategoryJoin := filter.CategorySlug != "" || filter.Search != ""
	if needsCategoryJoin {
		query = query.Joins("JOIN categories ON categories.id = products.category_id")
	}

	if filter.CategorySlug != "" {
		query = query.Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Gender != nil {
		query = query.Where("products.gender = ?", *filter.Gender)
	}
	if filter.Brand != "" {
		query = query.Where("LOWER(products.brand) = LOWER(?)", filter.Brand)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.MinDiscount != nil {
		query = query.Where("products.discount_percent >= ?", *filter.MinDiscount)
	}

	if filter.Color != "" {
		sub := r.db.Table("product_variants").
			Select("product_variants.product_id").
			Where("LOWER(product_variants.color) = LOWER(?)", filter.Color)
		query = query.Where("products.id IN (?)", sub)
	}
	if filter.Size != "" {
		sub := r.db.Table("product_variants").
			Select("product_variants.product_id").
			Where("LOWER(product_variants.size) = LOWER(?)", filter.Size)
		query = query.Where("products.id IN (?)", sub)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.brand) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ?",
			like, like, like, like,
		)
	}

	return query
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category":     filter.CategorySlug,
		"gender":       filter.Gender,
		"brand":        filter.Brand,
		"min_price":    filter.MinPrice,
		"max_price":    filter.MaxPrice,
		"min_discount": filter.MinDiscount,
		"color":        filter.Color,
		"size":         filter.Size,
		"search":       filter.Search,
		"sort_by":      filter.SortBy,
		"ascending":    filter.SortAscending,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})

	query := r.applyFilter(r.baseQuery(), filter)

	if column, ok := productSortColumns[filter.SortBy]; ok {
		direction := "DESC"
		if filter.SortAscending {
			direction = "ASC"
		}
		query = query.Order(column + " " + direction)
		if column != "products.created_at" {
			query = query.Order("products.created_at DESC")
		}
	} else {
		// Outside the allow-list: fall back to the default ordering
		query = query.Order("products.created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	// empty result stays a valid (non-nil) slice
	products := make([]model.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"category": filter.CategorySlug,
			"search":   filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) CountWithFilter(filter ProductFilter) (int64, error) {
	query := r.applyFilter(r.db.Model(&model.Product{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count products with filter", err, nil)
		return 0, err
	}
	return total, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.baseQuery().First(&product, id).Error; err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string, activeOnly bool) (*model.Product, error) {
	logger.Debug("Finding product by slug in database", map[string]interface{}{
		"slug":        slug,
		"active_only": activeOnly,
	})

	query := r.baseQuery().Where("products.slug = ?", slug)
	if activeOnly {
		query = query.Where("products.is_active = ?", true)
	}

	var product model.Product
	if err := query.First(&product).Error; err != nil {
		logger.Error("Failed to find product by slug in database", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Select("Images", "Variants", "Reviews").Delete(&model.Product{ID: id}).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
