package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmercado/tienda-backend/internal/app/repository"
	"github.com/jmercado/tienda-backend/internal/app/service"
	apperrors "github.com/jmercado/tienda-backend/internal/errors"
	"github.com/jmercado/tienda-backend/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListProducts returns the filtered, priced catalog page.
// GET /api/v1/products?name=&size=&tag=&season=&page=&page_size=
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.CatalogFilter{
		NamePattern: c.Query("name"),
		Size:        c.Query("size"),
		Tag:         c.Query("tag"),
		Season:      c.Query("season"),
		// Malformed numbers degrade to defaults instead of failing.
		Page:     parseIntOrZero(c.Query("page")),
		PageSize: parseIntOrZero(c.Query("page_size")),
	}

	products, err := ctrl.catalogService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to fetch catalog products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	log.Info("Catalog products fetched successfully", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID returns a single priced product with its variant breakdown.
// Reading a detail counts a view; listings do not.
// GET /api/v1/products/:id
func (ctrl *CatalogController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	detail, err := ctrl.catalogService.GetProductDetail(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product detail", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	log.Info("Product detail fetched successfully", map[string]interface{}{
		"product_id": detail.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"product": detail,
	})
}

// parseIntOrZero returns 0 for absent or malformed values; downstream
// treats non-positive as "use default".
func parseIntOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
