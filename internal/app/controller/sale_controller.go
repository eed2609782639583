package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmercado/tienda-backend/internal/app/service"
	apperrors "github.com/jmercado/tienda-backend/internal/errors"
	"github.com/jmercado/tienda-backend/internal/middleware"
)

type SaleController struct {
	saleService service.SaleService
}

func NewSaleController(saleService service.SaleService) *SaleController {
	return &SaleController{
		saleService: saleService,
	}
}

type RecordSaleRequest struct {
	ProductID  uint    `json:"product_id" binding:"required"`
	Color      string  `json:"color" binding:"required"`
	Size       string  `json:"size" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	TotalPrice float64 `json:"total_price" binding:"gte=0"`
}

// RecordSale performs the atomic stock debit + sale insert.
// POST /api/v1/sales
func (ctrl *SaleController) RecordSale(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid sale request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.SaleInvalidRequest, "Invalid sale request data")
		return
	}

	sale, err := ctrl.saleService.RecordSale(service.SaleRequest{
		ProductID:  req.ProductID,
		Color:      req.Color,
		Size:       req.Size,
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientStock):
			log.Warn("Sale rejected: insufficient stock", map[string]interface{}{
				"product_id": req.ProductID,
				"color":      req.Color,
				"size":       req.Size,
				"quantity":   req.Quantity,
			})
			apperrors.Conflict(c, apperrors.SaleInsufficientStock, "Insufficient stock or unknown variant")
		case errors.Is(err, service.ErrInvalidSale):
			apperrors.BadRequest(c, apperrors.SaleInvalidRequest, "Invalid sale request data")
		default:
			log.Error("Failed to record sale", err, map[string]interface{}{
				"product_id": req.ProductID,
			})
			apperrors.InternalError(c, "Failed to record sale")
		}
		return
	}

	log.Info("Sale recorded successfully", map[string]interface{}{
		"sale_id":    sale.ID,
		"product_id": sale.ProductID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale recorded successfully",
		"sale":    sale,
	})
}

// ListRecentSales returns the sale history, newest first, optionally scoped
// to one product.
// GET /api/v1/sales?limit=&offset=&product_id=
func (ctrl *SaleController) ListRecentSales(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if productID := parseIntOrZero(c.Query("product_id")); productID > 0 {
		sales, err := ctrl.saleService.GetSalesByProduct(uint(productID))
		if err != nil {
			log.Error("Failed to list sales for product", err, map[string]interface{}{
				"product_id": productID,
			})
			apperrors.InternalError(c, "Failed to fetch sales")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"sales": sales,
			"count": len(sales),
		})
		return
	}

	limit := parseIntOrZero(c.Query("limit"))
	offset := parseIntOrZero(c.Query("offset"))

	sales, err := ctrl.saleService.GetRecentSales(limit, offset)
	if err != nil {
		log.Error("Failed to list sales", err, nil)
		apperrors.InternalError(c, "Failed to fetch sales")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sales": sales,
		"count": len(sales),
	})
}
