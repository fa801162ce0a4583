// Package dto shapes catalog entities into response payloads. Everything
// here is a pure function of preloaded models; derived values (selling
// price, ratings, stock flags) are recomputed on every read.
package dto

import (
	"math"
	"time"

	"github.com/trendora/trendora-backend/internal/app/model"
)

// ColorOption is a distinct color offered by a product's variants
type ColorOption struct {
	Color string `json:"color"`
	Hex   string `json:"hex"`
}

type ImageView struct {
	ID        uint   `json:"id"`
	Image     string `json:"image"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
	Order     int    `json:"order"`
}

type CategoryView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	IsActive     bool   `json:"is_active"`
	ProductCount int64  `json:"product_count"`
}

type VariantView struct {
	ID       uint              `json:"id"`
	Size     model.VariantSize `json:"size"`
	Color    string            `json:"color"`
	ColorHex string            `json:"color_hex"`
	Stock    int               `json:"stock"`
	SKU      string            `json:"sku"`
	InStock  bool              `json:"in_stock"`
}

type ReviewView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductSummary is the lightweight list shape
type ProductSummary struct {
	ID              uint          `json:"id"`
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	Brand           string        `json:"brand"`
	CategoryName    string        `json:"category_name"`
	Gender          model.Gender  `json:"gender"`
	Price           float64       `json:"price"`
	DiscountPercent int           `json:"discount_percent"`
	SellingPrice    float64       `json:"selling_price"`
	PrimaryImage    *ImageView    `json:"primary_image"`
	AvgRating       float64       `json:"avg_rating"`
	ReviewCount     int           `json:"review_count"`
	AvailableColors []ColorOption `json:"available_colors"`
	IsFeatured      bool          `json:"is_featured"`
}

// ProductDetail is the full detail shape
type ProductDetail struct {
	ID              uint          `json:"id"`
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	Brand           string        `json:"brand"`
	Description     string        `json:"description"`
	Category        CategoryView  `json:"category"`
	Gender          model.Gender  `json:"gender"`
	Price           float64       `json:"price"`
	DiscountPercent int           `json:"discount_percent"`
	SellingPrice    float64       `json:"selling_price"`
	Images          []ImageView   `json:"images"`
	Variants        []VariantView `json:"variants"`
	Reviews         []ReviewView  `json:"reviews"`
	AvgRating       float64       `json:"avg_rating"`
	ReviewCount     int           `json:"review_count"`
	IsFeatured      bool          `json:"is_featured"`
	CreatedAt       time.Time     `json:"created_at"`
}

type WishlistItemView struct {
	ID      uint           `json:"id"`
	Product ProductSummary `json:"product"`
	AddedAt time.Time      `json:"added_at"`
}

// AvgRating is the arithmetic mean of review ratings rounded to 1 decimal,
// 0 (not null) when there are no reviews.
func AvgRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}

// RepresentativeImage picks the product's face: the primary-flagged image
// first (lowest order wins among several), else the first by order, else nil.
// Images are expected preloaded in sort order.
func RepresentativeImage(images []model.ProductImage) *ImageView {
	for _, img := range images {
		if img.IsPrimary {
			view := newImageView(img)
			return &view
		}
	}
	if len(images) > 0 {
		view := newImageView(images[0])
		return &view
	}
	return nil
}

// AvailableColors deduplicates (color, hex) pairs across variants,
// preserving first-seen order.
func AvailableColors(variants []model.ProductVariant) []ColorOption {
	seen := make(map[ColorOption]struct{}, len(variants))
	colors := make([]ColorOption, 0, len(variants))
	for _, v := range variants {
		option := ColorOption{Color: v.Color, Hex: v.ColorHex}
		if _, ok := seen[option]; ok {
			continue
		}
		seen[option] = struct{}{}
		colors = append(colors, option)
	}
	return colors
}

func newImageView(img model.ProductImage) ImageView {
	return ImageView{
		ID:        img.ID,
		Image:     img.ImageURL,
		AltText:   img.AltText,
		IsPrimary: img.IsPrimary,
		Order:     img.SortOrder,
	}
}

func newVariantView(v model.ProductVariant) VariantView {
	return VariantView{
		ID:       v.ID,
		Size:     v.Size,
		Color:    v.Color,
		ColorHex: v.ColorHex,
		Stock:    v.Stock,
		SKU:      v.SKU,
		InStock:  v.InStock(),
	}
}

func newReviewView(r model.Review) ReviewView {
	return ReviewView{
		ID:        r.ID,
		Username:  r.User.Name,
		Rating:    r.Rating,
		Title:     r.Title,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// NewCategoryView shapes a category with its active product count
func NewCategoryView(category model.Category, productCount int64) CategoryView {
	return CategoryView{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		Description:  category.Description,
		Image:        category.ImageURL,
		IsActive:     category.IsActive,
		ProductCount: productCount,
	}
}

// NewProductSummary builds the list shape from a product with preloaded
// category, images, variants and reviews.
func NewProductSummary(p model.Product) ProductSummary {
	return ProductSummary{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Brand:           p.Brand,
		CategoryName:    p.Category.Name,
		Gender:          p.Gender,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		SellingPrice:    p.SellingPrice(),
		PrimaryImage:    RepresentativeImage(p.Images),
		AvgRating:       AvgRating(p.Reviews),
		ReviewCount:     len(p.Reviews),
		AvailableColors: AvailableColors(p.Variants),
		IsFeatured:      p.IsFeatured,
	}
}

// NewProductSummaries maps a product slice to list shapes, never nil
func NewProductSummaries(products []model.Product) []ProductSummary {
	summaries := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, NewProductSummary(p))
	}
	return summaries
}

// NewProductDetail builds the detail shape; categoryProductCount is the
// category's active product count, aggregated by the caller.
func NewProductDetail(p model.Product, categoryProductCount int64) ProductDetail {
	images := make([]ImageView, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, newImageView(img))
	}

	variants := make([]VariantView, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, newVariantView(v))
	}

	reviews := make([]ReviewView, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		reviews = append(reviews, newReviewView(r))
	}

	return ProductDetail{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Brand:           p.Brand,
		Description:     p.Description,
		Category:        NewCategoryView(p.Category, categoryProductCount),
		Gender:          p.Gender,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		SellingPrice:    p.SellingPrice(),
		Images:          images,
		Variants:        variants,
		Reviews:         reviews,
		AvgRating:       AvgRating(p.Reviews),
		ReviewCount:     len(p.Reviews),
		IsFeatured:      p.IsFeatured,
		CreatedAt:       p.CreatedAt,
	}
}

// NewWishlistItemView shapes a wishlist entry with its product summary
func NewWishlistItemView(item model.WishlistItem) WishlistItemView {
	return WishlistItemView{
		ID:      item.ID,
		Product: NewProductSummary(item.Product),
		AddedAt: item.CreatedAt,
	}
}

// NewWishlistItemViews maps wishlist entries, never nil
func NewWishlistItemViews(items []model.WishlistItem) []WishlistItemView {
	views := make([]WishlistItemView, 0, len(items))
	for _, item := range items {
		views = append(views, NewWishlistItemView(item))
	}
	return views
}
