package repository

import (
	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/pkg/logger"
	"gorm.io/gorm"
)

// SaleRepository only reads. Sale rows are written exclusively by the sale
// transaction in the service layer and are never updated or deleted.
type SaleRepository interface {
	FindByID(id uint) (*model.Sale, error)
	ListByProduct(productID uint) ([]model.Sale, error)
	ListRecent(limit, offset int) ([]model.Sale, error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) FindByID(id uint) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.First(&sale, id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) ListByProduct(productID uint) ([]model.Sale, error) {
	var sales []model.Sale
	if err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&sales).Error; err != nil {
		logger.Error("Failed to list sales by product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return sales, nil
}

func (r *saleRepository) ListRecent(limit, offset int) ([]model.Sale, error) {
	if limit < 1 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var sales []model.Sale
	if err := r.db.Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&sales).Error; err != nil {
		logger.Error("Failed to list recent sales", err, nil)
		return nil, err
	}
	return sales, nil
}
