package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a classified error: code plus a message safe to show users.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError classifies storage-layer errors into user-presentable codes.
// Sensitive infrastructure detail stays out of the message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A record with these values already exists",
		}
	}

	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The referenced record does not exist",
		}
	}

	if strings.Contains(errStrLower, "check constraint") {
		// The only check constraints in the schema guard stock and discount
		// ranges; surfacing them as a conflict is accurate enough.
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The requested change violates a data constraint",
		}
	}

	// Connectivity failures

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The store is temporarily unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Something went wrong. Please try again later",
	}
}

func notFoundMessage(context string) string {
	switch context {
	case "product":
		return "Product not found"
	case "config":
		return "Setting not found"
	case "sale":
		return "Sale not found"
	default:
		return "Requested record not found"
	}
}
