package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable code (see codes.go)
	Message string `json:"message"` // human-readable message
}

// RespondWithError writes a standard error response.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Shorthand helpers for the common cases.

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

// InternalError deliberately carries a generic message; infrastructure detail
// never leaves the process.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
