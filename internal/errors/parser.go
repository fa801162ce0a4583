package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed error code/message pair
type ErrorInfo struct {
	Code    string // constant from codes.go
	Message string // human readable message
}

// IsDuplicateKey reports whether err is a unique constraint violation.
// Used by services to resolve write races the store arbitrated via its
// uniqueness constraints (postgres 23505, and the sqlite wording in tests).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "unique constraint") ||
		strings.Contains(errStr, "unique failed")
}

// ParseError translates a low-level error into a code and message safe to
// surface to the caller. Sensitive detail stays out of responses.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM sentinel errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. Postgres constraint errors

	// 2-1. Unique constraint violation (23505)
	if IsDuplicateKey(err) {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr)
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// 2-4. Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "rating") {
			return ErrorInfo{
				Code:    ReviewInvalidRating,
				Message: "Rating must be between 1 and 5",
			}
		}
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Invalid input",
		}
	}

	// 3. Network and connection errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "A backing service is unavailable. Please try again later",
		}
	}

	// 4. Fallback
	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Something went wrong. Please try again later",
	}
}

// parseDuplicateKeyError maps unique constraint violations to catalog codes
func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// review (product, user) pair
	if strings.Contains(errLower, "idx_review_product_user") || strings.Contains(errLower, "reviews") {
		return ErrorInfo{
			Code:    ReviewAlreadyExists,
			Message: "You have already reviewed this product",
		}
	}

	// wishlist (user, product) pair
	if strings.Contains(errLower, "idx_wishlist_user_product") || strings.Contains(errLower, "wishlist_items") {
		return ErrorInfo{
			Code:    WishlistItemAlreadyExists,
			Message: "Product is already in your wishlist",
		}
	}

	// variant (product, size, color) triple
	if strings.Contains(errLower, "idx_variant_product_size_color") {
		return ErrorInfo{
			Code:    VariantAlreadyExists,
			Message: "This size and color combination already exists for the product",
		}
	}

	// variant SKU
	if strings.Contains(errLower, "sku") {
		return ErrorInfo{
			Code:    VariantSKUExists,
			Message: "SKU is already in use",
		}
	}

	// product slug
	if strings.Contains(errLower, "products") && strings.Contains(errLower, "slug") {
		return ErrorInfo{
			Code:    ProductSlugExists,
			Message: "A product with this slug already exists",
		}
	}

	// category name or slug
	if strings.Contains(errLower, "categories") {
		return ErrorInfo{
			Code:    CategoryNameExists,
			Message: "A category with this name already exists",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

// parseForeignKeyError maps FK violations to catalog codes
func parseForeignKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Related records exist, so this cannot be deleted",
		}
	}

	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{
			Code:    CategoryNotFound,
			Message: "Category does not exist",
		}
	}
	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "Product does not exist",
		}
	}
	if strings.Contains(errLower, "user_id") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "User does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record does not exist",
	}
}

// getNotFoundMessage picks a message for the calling context
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "category") {
		return "Category not found"
	}
	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "review") {
		return "Review not found"
	}
	if strings.Contains(contextLower, "wishlist") {
		return "Wishlist item not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}

	return "The requested record was not found"
}
