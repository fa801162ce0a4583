package service

import (
	"errors"

	"github.com/trendora/trendora-backend/config"
	"github.com/trendora/trendora-backend/internal/app/dto"
	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/internal/app/repository"
	apperrors "github.com/trendora/trendora-backend/internal/errors"
	"github.com/trendora/trendora-backend/pkg/logger"
	"github.com/trendora/trendora-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductSlugExists    = errors.New("product slug already exists")
	ErrInvalidGender        = errors.New("invalid gender code")
	ErrInvalidVariantSize   = errors.New("invalid variant size")
	ErrVariantAlreadyExists = errors.New("variant already exists for size and color")
	ErrVariantSKUExists     = errors.New("variant SKU already exists")
)

// ProductListOptions carries parsed catalog query constraints. Page numbers
// start at 1; out-of-range values are normalized, never rejected.
type ProductListOptions struct {
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
	SortBy        repository.ProductSort
	SortAscending bool
	Page          int
	PageSize      int
}

type ProductListResult struct {
	Products   []dto.ProductSummary `json:"products"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

// VariantInput describes one variant in an admin product mutation
type VariantInput struct {
	Size     model.VariantSize `json:"size" binding:"required"`
	Color    string            `json:"color" binding:"required"`
	ColorHex string            `json:"color_hex"`
	Stock    int               `json:"stock" binding:"min=0"`
	SKU      string            `json:"sku" binding:"required"`
}

// ImageInput describes one image in an admin product mutation
type ImageInput struct {
	ImageURL  string `json:"image" binding:"required"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"order"`
}

// ProductMutation carries admin-supplied product fields
type ProductMutation struct {
	CategoryID      uint           `json:"category_id" binding:"required"`
	Name            string         `json:"name" binding:"required"`
	Brand           string         `json:"brand" binding:"required"`
	Description     string         `json:"description"`
	Gender          model.Gender   `json:"gender"`
	Price           float64        `json:"price" binding:"required,gt=0"`
	DiscountPercent int            `json:"discount_percent" binding:"min=0,max=100"`
	IsActive        *bool          `json:"is_active"`
	IsFeatured      *bool          `json:"is_featured"`
	Variants        []VariantInput `json:"variants"`
	Images          []ImageInput   `json:"images"`
}

type ProductService interface {
	ListProducts(opts ProductListOptions) (*ProductListResult, error)
	GetFeaturedProducts() ([]dto.ProductSummary, error)
	GetProductBySlug(slug string) (*dto.ProductDetail, error)
	CreateProduct(input ProductMutation) (*model.Product, error)
	UpdateProduct(id uint, input ProductMutation) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	wishlistRepo repository.WishlistRepository
	pagination   config.PaginationConfig
	catalog      config.CatalogConfig
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	wishlistRepo repository.WishlistRepository,
	pagination config.PaginationConfig,
	catalog config.CatalogConfig,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		wishlistRepo: wishlistRepo,
		pagination:   pagination,
		catalog:      catalog,
	}
}

// ListProducts runs the filtered, sorted, paginated catalog query. Only
// active products are visible through this path.
func (s *productService) ListProducts(opts ProductListOptions) (*ProductListResult, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = s.pagination.DefaultPageSize
	}
	if pageSize > s.pagination.MaxPageSize {
		pageSize = s.pagination.MaxPageSize
	}

	filter := repository.ProductFilter{
		CategorySlug:  opts.CategorySlug,
		Gender:        opts.Gender,
		Brand:         opts.Brand,
		MinPrice:      opts.MinPrice,
		MaxPrice:      opts.MaxPrice,
		MinDiscount:   opts.MinDiscount,
		Color:         opts.Color,
		Size:          opts.Size,
		Search:        opts.Search,
		FeaturedOnly:  opts.FeaturedOnly,
		ActiveOnly:    true,
		SortBy:        opts.SortBy,
		SortAscending: opts.SortAscending,
		Limit:         pageSize,
		Offset:        (page - 1) * pageSize,
	}

	total, err := s.productRepo.CountWithFilter(filter)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &ProductListResult{
		Products:   dto.NewProductSummaries(products),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetFeaturedProducts returns the newest featured active products, capped by
// configuration. Catalog filters do not apply here.
func (s *productService) GetFeaturedProducts() ([]dto.ProductSummary, error) {
	filter := repository.ProductFilter{
		FeaturedOnly: true,
		ActiveOnly:   true,
		SortBy:       repository.ProductSortCreatedAt,
		Limit:        s.catalog.FeaturedLimit,
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}
	return dto.NewProductSummaries(products), nil
}

// GetProductBySlug returns the full detail shape. Inactive products are
// indistinguishable from missing ones.
func (s *productService) GetProductBySlug(slug string) (*dto.ProductDetail, error) {
	product, err := s.productRepo.FindBySlug(slug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	categoryCount, err := s.categoryRepo.CountActiveProducts(product.CategoryID)
	if err != nil {
		return nil, err
	}

	detail := dto.NewProductDetail(*product, categoryCount)
	return &detail, nil
}

func (s *productService) CreateProduct(input ProductMutation) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":  input.Name,
		"brand": input.Brand,
	})

	if input.Gender == "" {
		input.Gender = model.GenderUnisex
	}
	if !model.ValidGender(input.Gender) {
		return nil, ErrInvalidGender
	}
	for _, v := range input.Variants {
		if !model.ValidSize(v.Size) {
			return nil, ErrInvalidVariantSize
		}
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := model.Product{
		CategoryID:      input.CategoryID,
		Name:            input.Name,
		Slug:            util.Slugify(input.Name),
		Brand:           input.Brand,
		Description:     input.Description,
		Gender:          input.Gender,
		Price:           input.Price,
		DiscountPercent: input.DiscountPercent,
		IsActive:        true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	product.Variants = buildVariants(input.Variants)
	product.Images = buildImages(input.Images)

	if err := s.productRepo.Create(&product); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, classifyProductConflict(err)
		}
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return &product, nil
}

// UpdateProduct replaces mutable fields. The slug never changes after
// creation, even when the name does.
func (s *productService) UpdateProduct(id uint, input ProductMutation) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.Gender == "" {
		input.Gender = product.Gender
	}
	if !model.ValidGender(input.Gender) {
		return nil, ErrInvalidGender
	}

	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	product.Name = input.Name
	product.Brand = input.Brand
	product.Description = input.Description
	product.Gender = input.Gender
	product.Price = input.Price
	product.DiscountPercent = input.DiscountPercent
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	if err := s.productRepo.Update(product); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, classifyProductConflict(err)
		}
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

// DeleteProduct removes the product with its images, variants and reviews,
// and clears it out of every wishlist. Wishlist rows are not a product
// association, so they are deleted explicitly.
func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.wishlistRepo.DeleteByProduct(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func buildVariants(inputs []VariantInput) []model.ProductVariant {
	variants := make([]model.ProductVariant, 0, len(inputs))
	for _, v := range inputs {
		variants = append(variants, model.ProductVariant{
			Size:     v.Size,
			Color:    v.Color,
			ColorHex: v.ColorHex,
			Stock:    v.Stock,
			SKU:      v.SKU,
		})
	}
	return variants
}

func buildImages(inputs []ImageInput) []model.ProductImage {
	images := make([]model.ProductImage, 0, len(inputs))
	for _, img := range inputs {
		images = append(images, model.ProductImage{
			ImageURL:  img.ImageURL,
			AltText:   img.AltText,
			IsPrimary: img.IsPrimary,
			SortOrder: img.SortOrder,
		})
	}
	return images
}

// classifyProductConflict maps a duplicate-key error from a product write to
// the uniqueness rule that rejected it.
func classifyProductConflict(err error) error {
	info := apperrors.ParseError(err, "product")
	switch info.Code {
	case apperrors.VariantSKUExists:
		return ErrVariantSKUExists
	case apperrors.VariantAlreadyExists:
		return ErrVariantAlreadyExists
	default:
		return ErrProductSlugExists
	}
}
