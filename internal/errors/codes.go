package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to user-facing copy.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // login required
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED" // token expired
	AuthTokenInvalid = "AUTH_TOKEN_INVALID" // malformed or forged token

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role information missing
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin only

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // bad input
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // bad identifier
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // bad format
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // out of range
	ValidationRequired      = "VALIDATION_REQUIRED"       // missing required field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // no such resource
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // already exists
	ResourceConflict      = "RESOURCE_CONFLICT"       // conflicting state

	// ==================== Catalog (CATALOG_) ====================
	CategoryNotFound    = "CATEGORY_NOT_FOUND"     // no such category
	CategoryNameExists  = "CATEGORY_NAME_EXISTS"   // duplicate category name
	ProductNotFound     = "PRODUCT_NOT_FOUND"      // no such product (or inactive)
	ProductSlugExists   = "PRODUCT_SLUG_EXISTS"    // duplicate product slug
	VariantSKUExists    = "VARIANT_SKU_EXISTS"     // duplicate SKU
	VariantAlreadyExists = "VARIANT_ALREADY_EXISTS" // duplicate size/color for product

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"       // no such review
	ReviewInvalidRating = "REVIEW_INVALID_RATING"  // rating outside 1-5
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS"  // user already reviewed product

	// ==================== Wishlist (WISHLIST_) ====================
	WishlistItemNotFound      = "WISHLIST_ITEM_NOT_FOUND"      // no such entry for caller
	WishlistItemAlreadyExists = "WISHLIST_ITEM_ALREADY_EXISTS" // product already saved

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // not an accepted image type
	UploadFailed          = "UPLOAD_FAILED"            // presign/upload failure

	// ==================== Rate limiting (RATE_) ====================
	RateLimitExceeded = "RATE_LIMIT_EXCEEDED" // too many requests

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // database failure
)
