package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trendora/trendora-backend/internal/app/service"
	"github.com/trendora/trendora-backend/internal/errors"
	"github.com/trendora/trendora-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// ListCategories handles the public category listing
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		errors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategoryBySlug handles the public category detail; inactive categories
// look missing.
func (ctrl *CategoryController) GetCategoryBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	slug := c.Param("slug")

	category, err := ctrl.categoryService.GetCategoryBySlug(slug)
	if err != nil {
		if stderrors.Is(err, service.ErrCategoryNotFound) {
			errors.NotFound(c, errors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to get category", err, map[string]interface{}{
			"slug": slug,
		})
		errors.InternalError(c, "Failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory handles admin category creation
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.CategoryMutation
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid category payload", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid category payload")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(input)
	if err != nil {
		if stderrors.Is(err, service.ErrCategoryNameExists) {
			errors.Conflict(c, errors.CategoryNameExists, "A category with this name already exists")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": input.Name,
		})
		errors.InternalError(c, "Failed to create category")
		return
	}

	log.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	c.JSON(http.StatusCreated, category)
}
