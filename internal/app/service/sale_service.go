package service

import (
	"errors"
	"fmt"

	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/internal/app/repository"
	"github.com/jmercado/tienda-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidSale       = errors.New("invalid sale request")
)

// SaleRequest carries the already-validated sale input. TotalPrice is computed
// upstream from the effective price at display time.
type SaleRequest struct {
	ProductID  uint
	Color      string
	Size       string
	Quantity   int
	TotalPrice float64
}

type SaleService interface {
	RecordSale(req SaleRequest) (*model.Sale, error)
	GetSalesByProduct(productID uint) ([]model.Sale, error)
	GetRecentSales(limit, offset int) ([]model.Sale, error)
}

type saleService struct {
	saleRepo repository.SaleRepository
	db       *gorm.DB
}

func NewSaleService(saleRepo repository.SaleRepository, db *gorm.DB) SaleService {
	return &saleService{saleRepo: saleRepo, db: db}
}

// RecordSale debits variant stock and writes the sale record atomically.
//
// The debit is a single conditional UPDATE guarded by stock >= quantity. The
// database's row lock on that update serializes concurrent sales of the same
// variant, so stock can never go negative and exactly one of two competing
// requests for the last unit wins. The guard failing and the variant not
// existing are indistinguishable on purpose: both affect zero rows and both
// mean no sale. Never split this into a read followed by a write.
func (s *saleService) RecordSale(req SaleRequest) (*model.Sale, error) {
	if req.Quantity <= 0 || req.TotalPrice < 0 {
		logger.Warn("Rejecting malformed sale request", map[string]interface{}{
			"product_id": req.ProductID,
			"quantity":   req.Quantity,
			"total":      req.TotalPrice,
		})
		return nil, ErrInvalidSale
	}

	logger.Info("Recording sale", map[string]interface{}{
		"product_id": req.ProductID,
		"color":      req.Color,
		"size":       req.Size,
		"quantity":   req.Quantity,
	})

	tx := s.db.Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin sale transaction", tx.Error, nil)
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during sale, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"product_id": req.ProductID,
			})
		}
	}()

	result := tx.Model(&model.Variant{}).
		Where("product_id = ? AND color = ? AND size = ? AND stock >= ?",
			req.ProductID, req.Color, req.Size, req.Quantity).
		Update("stock", gorm.Expr("stock - ?", req.Quantity))
	if result.Error != nil {
		tx.Rollback()
		logger.Error("Failed to debit variant stock", result.Error, map[string]interface{}{
			"product_id": req.ProductID,
			"color":      req.Color,
			"size":       req.Size,
		})
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		logger.Warn("Sale rejected: insufficient stock or unknown variant", map[string]interface{}{
			"product_id": req.ProductID,
			"color":      req.Color,
			"size":       req.Size,
			"quantity":   req.Quantity,
		})
		return nil, ErrInsufficientStock
	}

	sale := &model.Sale{
		ProductID:     req.ProductID,
		VariantDetail: fmt.Sprintf("%s %s", req.Color, req.Size),
		Quantity:      req.Quantity,
		TotalPrice:    req.TotalPrice,
	}
	if err := tx.Create(sale).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to insert sale record, stock debit rolled back", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit sale transaction", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		return nil, err
	}

	logger.Info("Sale recorded successfully", map[string]interface{}{
		"sale_id":    sale.ID,
		"product_id": sale.ProductID,
		"variant":    sale.VariantDetail,
		"quantity":   sale.Quantity,
		"total":      sale.TotalPrice,
	})
	return sale, nil
}

func (s *saleService) GetSalesByProduct(productID uint) ([]model.Sale, error) {
	return s.saleRepo.ListByProduct(productID)
}

func (s *saleService) GetRecentSales(limit, offset int) ([]model.Sale, error) {
	return s.saleRepo.ListRecent(limit, offset)
}
