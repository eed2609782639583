package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jmercado/tienda-backend/internal/errors"
	"github.com/jmercado/tienda-backend/internal/middleware"
	"github.com/jmercado/tienda-backend/internal/storage"
)

// UploadController fronts the image-hosting collaborator. Clients upload
// straight to the bucket through a presigned URL and submit only the
// resulting public URL when creating products.
type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3Storage,
	}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Presign issues a presigned PUT URL for a product image upload.
// POST /api/v1/uploads/presign
func (ctrl *UploadController) Presign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if !allowedImageTypes[strings.ToLower(req.ContentType)] {
		log.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image uploads are allowed")
		return
	}

	presigned, err := ctrl.storage.GeneratePresignedURL(req.Filename, req.ContentType, "products")
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare upload")
		return
	}

	c.JSON(http.StatusOK, presigned)
}
