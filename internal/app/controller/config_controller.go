package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmercado/tienda-backend/internal/app/service"
	apperrors "github.com/jmercado/tienda-backend/internal/errors"
	"github.com/jmercado/tienda-backend/internal/middleware"
)

type ConfigController struct {
	configService service.ConfigService
}

func NewConfigController(configService service.ConfigService) *ConfigController {
	return &ConfigController{
		configService: configService,
	}
}

type SetConfigRequest struct {
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

// GetConfig returns a storefront setting.
// GET /api/v1/config/:key
func (ctrl *ConfigController) GetConfig(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	key := c.Param("key")
	value, err := ctrl.configService.GetValue(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrConfigNotFound) {
			apperrors.NotFound(c, apperrors.ConfigNotFound, "Setting not found")
			return
		}
		log.Error("Failed to read config", err, map[string]interface{}{
			"key": key,
		})
		apperrors.InternalError(c, "Failed to read setting")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":   key,
		"value": value,
	})
}

// SetConfig upserts a storefront setting (Admin only).
// PUT /api/v1/config/:key
func (ctrl *ConfigController) SetConfig(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	key := c.Param("key")

	var req SetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid config request", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	entry, err := ctrl.configService.SetValue(c.Request.Context(), key, req.Value, req.Description)
	if err != nil {
		log.Error("Failed to update config", err, map[string]interface{}{
			"key": key,
		})
		apperrors.InternalError(c, "Failed to update setting")
		return
	}

	log.Info("Config updated successfully", map[string]interface{}{
		"key": key,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Setting updated successfully",
		"config":  entry,
	})
}
