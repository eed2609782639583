package service

import (
	"errors"

	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/internal/app/repository"
	"github.com/jmercado/tienda-backend/pkg/logger"
)

var ErrProductNotFound = errors.New("product not found")

// ProductDetail is a priced catalog row plus the full per-variant stock
// breakdown, returned only by detail lookups.
type ProductDetail struct {
	repository.PricedProduct
	Variants []model.Variant `json:"variants"`
}

type CatalogService interface {
	ListProducts(filter repository.CatalogFilter) ([]repository.PricedProduct, error)
	GetProductDetail(id uint) (*ProductDetail, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

// ListProducts returns the filtered, priced catalog page. No matches is not an
// error; the caller gets an empty slice.
func (s *catalogService) ListProducts(filter repository.CatalogFilter) ([]repository.PricedProduct, error) {
	products, err := s.catalogRepo.Select(filter)
	if err != nil {
		logger.Error("Failed to list catalog products", err)
		return nil, err
	}

	logger.Info("Catalog products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

// GetProductDetail reuses the catalog query for pricing (single code path for
// the discount formula), then loads the unaggregated variant breakdown and
// counts the view. Viewing a listing does not count.
func (s *catalogService) GetProductDetail(id uint) (*ProductDetail, error) {
	logger.Debug("Fetching product detail", map[string]interface{}{
		"product_id": id,
	})

	products, err := s.catalogRepo.Select(repository.CatalogFilter{ID: &id})
	if err != nil {
		logger.Error("Failed to fetch product detail", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	if len(products) == 0 {
		logger.Warn("Product not found", map[string]interface{}{
			"product_id": id,
		})
		return nil, ErrProductNotFound
	}

	variants, err := s.catalogRepo.FindVariants(id)
	if err != nil {
		return nil, err
	}

	if err := s.catalogRepo.IncrementViewCount(id); err != nil {
		// The read already succeeded; a failed view count must not hide it.
		logger.Warn("Failed to count product view", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
	}

	return &ProductDetail{
		PricedProduct: products[0],
		Variants:      variants,
	}, nil
}
