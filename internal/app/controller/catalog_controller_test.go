package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/internal/app/repository"
	"github.com/jmercado/tienda-backend/internal/app/service"
	"github.com/jmercado/tienda-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	catalogController := NewCatalogController(
		service.NewCatalogService(repository.NewCatalogRepository(testDB)))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products", catalogController.ListProducts)
	router.GET("/products/:id", catalogController.GetProductByID)

	return router, testDB
}

func seedCatalogProduct(t *testing.T, testDB *gorm.DB, name string, season model.ProductSeason, tags ...string) *model.Product {
	t.Helper()

	product := &model.Product{Name: name, BasePrice: 30, Season: season}
	require.NoError(t, repository.NewProductRepository(testDB).Create(product,
		[]model.Variant{{Color: "Red", Size: "M", Stock: 5}}, tags))
	return product
}

func TestCatalogController_ListProducts(t *testing.T) {
	router, testDB := setupCatalogControllerTest(t)

	seedCatalogProduct(t, testDB, "Wool Scarf", model.SeasonWinter, "winter")
	seedCatalogProduct(t, testDB, "Linen Shirt", model.SeasonSummer)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["count"])

	products := response["products"].([]interface{})
	require.Len(t, products, 2)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Linen Shirt", first["name"])
	assert.Equal(t, float64(5), first["stock_total"])
}

func TestCatalogController_ListProducts_Filtered(t *testing.T) {
	router, testDB := setupCatalogControllerTest(t)

	seedCatalogProduct(t, testDB, "Wool Scarf", model.SeasonWinter, "winter")
	seedCatalogProduct(t, testDB, "Linen Shirt", model.SeasonSummer)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"by name", "?name=scarf", 1},
		{"by tag", "?tag=winter", 1},
		{"by season", "?season=summer", 1},
		{"by size", "?size=M", 2},
		{"no match", "?name=boots", 0},
		{"malformed page falls back to defaults", "?page=abc&page_size=-5", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, float64(tt.want), response["count"])
		})
	}
}

func TestCatalogController_GetProductByID(t *testing.T) {
	router, testDB := setupCatalogControllerTest(t)

	product := seedCatalogProduct(t, testDB, "Wool Scarf", model.SeasonWinter, "winter")

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	detail := response["product"].(map[string]interface{})
	assert.Equal(t, "Wool Scarf", detail["name"])
	variants := detail["variants"].([]interface{})
	assert.Len(t, variants, 1)
}

func TestCatalogController_GetProductByID_NotFound(t *testing.T) {
	router, _ := setupCatalogControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/products/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogController_GetProductByID_InvalidID(t *testing.T) {
	router, _ := setupCatalogControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/products/not-a-number", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
