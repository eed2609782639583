package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound = "PRODUCT_NOT_FOUND"

	// ==================== Sales (SALE_) ====================
	SaleInsufficientStock = "SALE_INSUFFICIENT_STOCK"
	SaleInvalidRequest    = "SALE_INVALID_REQUEST"

	// ==================== Price rules (PRICE_RULE_) ====================
	PriceRuleInvalid = "PRICE_RULE_INVALID"

	// ==================== Config (CONFIG_) ====================
	ConfigNotFound = "CONFIG_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
