package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/internal/app/service"
	apperrors "github.com/jmercado/tienda-backend/internal/errors"
	"github.com/jmercado/tienda-backend/internal/middleware"
)

// ProductController covers the admin write surface. Catalog reads live in
// CatalogController.
type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	BasePrice   float64                `json:"base_price" binding:"required,gte=0"`
	Gender      model.ProductGender    `json:"gender"`
	Type        string                 `json:"type"`
	Season      model.ProductSeason    `json:"season"`
	Attributes  map[string]interface{} `json:"attributes"`
	ImageURL    string                 `json:"image_url"`
	Variants    []service.VariantInput `json:"variants" binding:"dive"`
	Tags        []string               `json:"tags"`
}

// CreateProduct creates a product with its variants and tags (Admin only).
// The image, if any, was already uploaded; only its resolved URL arrives here.
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.productService.CreateProduct(service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Gender:      req.Gender,
		Type:        req.Type,
		Season:      req.Season,
		Attributes:  model.AttributeMap(req.Attributes),
		ImageURL:    req.ImageURL,
		Variants:    req.Variants,
		Tags:        req.Tags,
	})
	if err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		info := apperrors.ParseError(err, "product")
		if info.Code == apperrors.ResourceAlreadyExists {
			apperrors.Conflict(c, info.Code, info.Message)
			return
		}
		apperrors.InternalError(c, "Failed to create product")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// DeleteProduct soft-deletes a product (Admin only). The product disappears
// from every catalog read but its sale history stays intact.
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found or already deleted", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found or already deleted")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to delete product")
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// ListTags returns every known tag for admin pickers.
// GET /api/v1/tags
func (ctrl *ProductController) ListTags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.productService.ListTags()
	if err != nil {
		log.Error("Failed to list tags", err, nil)
		apperrors.InternalError(c, "Failed to fetch tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":  tags,
		"count": len(tags),
	})
}
