package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmercado/tienda-backend/config"
	"github.com/jmercado/tienda-backend/internal/app/controller"
	"github.com/jmercado/tienda-backend/internal/middleware"
)

type Router struct {
	catalogController   *controller.CatalogController
	saleController      *controller.SaleController
	productController   *controller.ProductController
	priceRuleController *controller.PriceRuleController
	configController    *controller.ConfigController
	uploadController    *controller.UploadController
	config              *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	saleController *controller.SaleController,
	productController *controller.ProductController,
	priceRuleController *controller.PriceRuleController,
	configController *controller.ConfigController,
	uploadController *controller.UploadController,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController:   catalogController,
		saleController:      saleController,
		productController:   productController,
		priceRuleController: priceRuleController,
		configController:    configController,
		uploadController:    uploadController,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Tienda API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.catalogController.ListProducts)
			products.GET("/:id", r.catalogController.GetProductByID)
			products.POST("", r.productController.CreateProduct)
			products.DELETE("/:id", r.productController.DeleteProduct)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", r.saleController.RecordSale)
			sales.GET("", r.saleController.ListRecentSales)
		}

		priceRules := v1.Group("/price-rules")
		{
			priceRules.POST("", r.priceRuleController.CreatePriceRule)
			priceRules.GET("", r.priceRuleController.ListPriceRules)
		}

		configs := v1.Group("/config")
		{
			configs.GET("/:key", r.configController.GetConfig)
			configs.PUT("/:key", r.configController.SetConfig)
		}

		uploads := v1.Group("/uploads")
		{
			uploads.POST("/presign", r.uploadController.Presign)
		}

		v1.GET("/tags", r.productController.ListTags)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
