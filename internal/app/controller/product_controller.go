package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/internal/app/repository"
	"github.com/trendora/trendora-backend/internal/app/service"
	"github.com/trendora/trendora-backend/internal/errors"
	"github.com/trendora/trendora-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// parseFloatQuery returns nil for absent or malformed values. Filter params
// are lenient: a value that does not parse is treated as not supplied.
func parseFloatQuery(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntQuery(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// parseOrdering splits an ordering value ("price", "-price") into a sort key
// and direction. Validation against the allow-list happens in the repository;
// unknown keys fall back to newest-first there.
func parseOrdering(raw string) (repository.ProductSort, bool, bool) {
	ascending := true
	if strings.HasPrefix(raw, "-") {
		ascending = false
		raw = strings.TrimPrefix(raw, "-")
	}
	if raw == "" {
		return "", false, false
	}
	return repository.ProductSort(raw), ascending, true
}

// ListProducts handles the filtered catalog listing
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ProductListOptions{
		CategorySlug: c.Query("category"),
		Brand:        c.Query("brand"),
		MinPrice:     parseFloatQuery(c, "min_price"),
		MaxPrice:     parseFloatQuery(c, "max_price"),
		MinDiscount:  parseIntQuery(c, "min_discount"),
		Color:        c.Query("color"),
		Size:         c.Query("size"),
		Search:       c.Query("search"),
	}

	if raw := c.Query("gender"); raw != "" {
		gender := model.Gender(strings.ToUpper(raw))
		if model.ValidGender(gender) {
			opts.Gender = &gender
		}
	}

	if sortBy, ascending, ok := parseOrdering(c.Query("ordering")); ok {
		opts.SortBy = sortBy
		opts.SortAscending = ascending
	}

	if page := parseIntQuery(c, "page"); page != nil {
		opts.Page = *page
	}
	if pageSize := parseIntQuery(c, "page_size"); pageSize != nil {
		opts.PageSize = *pageSize
	}

	result, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		log.Error("Failed to list products", err, nil)
		errors.InternalError(c, "Failed to fetch products")
		return
	}

	log.Info("Products listed", map[string]interface{}{
		"count": len(result.Products),
		"total": result.Total,
		"page":  result.Page,
	})

	c.JSON(http.StatusOK, result)
}

// GetFeaturedProducts handles the homepage highlight strip. Filter params
// have no effect here.
func (ctrl *ProductController) GetFeaturedProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.GetFeaturedProducts()
	if err != nil {
		log.Error("Failed to list featured products", err, nil)
		errors.InternalError(c, "Failed to fetch featured products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductBySlug handles the product detail page
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	slug := c.Param("slug")

	detail, err := ctrl.productService.GetProductBySlug(slug)
	if err != nil {
		if stderrors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"slug": slug,
			})
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to get product", err, map[string]interface{}{
			"slug": slug,
		})
		errors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateProduct handles admin product creation
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.ProductMutation
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid product payload", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid product payload")
		return
	}

	product, err := ctrl.productService.CreateProduct(input)
	if err != nil {
		ctrl.respondProductWriteError(c, err)
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles admin product updates
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var input service.ProductMutation
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid product payload")
		return
	}

	product, err := ctrl.productService.UpdateProduct(uint(id), input)
	if err != nil {
		ctrl.respondProductWriteError(c, err)
		return
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles admin product removal
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if stderrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		errors.InternalError(c, "Failed to delete product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (ctrl *ProductController) respondProductWriteError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case stderrors.Is(err, service.ErrProductNotFound):
		errors.NotFound(c, errors.ProductNotFound, "Product not found")
	case stderrors.Is(err, service.ErrCategoryNotFound):
		errors.NotFound(c, errors.CategoryNotFound, "Category not found")
	case stderrors.Is(err, service.ErrInvalidGender):
		errors.BadRequest(c, errors.ValidationInvalidInput, "Unknown gender code")
	case stderrors.Is(err, service.ErrInvalidVariantSize):
		errors.BadRequest(c, errors.ValidationInvalidInput, "Unknown variant size")
	case stderrors.Is(err, service.ErrProductSlugExists):
		errors.Conflict(c, errors.ProductSlugExists, "A product with this name already exists")
	case stderrors.Is(err, service.ErrVariantSKUExists):
		errors.Conflict(c, errors.VariantSKUExists, "SKU is already in use")
	case stderrors.Is(err, service.ErrVariantAlreadyExists):
		errors.Conflict(c, errors.VariantAlreadyExists, "Duplicate size and color for this product")
	default:
		log.Error("Product write failed", err, nil)
		errors.InternalError(c, "Failed to save product")
	}
}
