package service

import (
	"errors"

	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/internal/app/repository"
	"github.com/jmercado/tienda-backend/pkg/logger"
	"gorm.io/gorm"
)

// VariantInput is a variant as supplied on product creation.
type VariantInput struct {
	Color string `json:"color" binding:"required"`
	Size  string `json:"size" binding:"required"`
	Stock int    `json:"stock" binding:"gte=0"`
}

// CreateProductInput carries validated admin input. ImageURL, when present,
// has already been resolved by the upload collaborator.
type CreateProductInput struct {
	Name        string
	Description string
	BasePrice   float64
	Gender      model.ProductGender
	Type        string
	Season      model.ProductSeason
	Attributes  model.AttributeMap
	ImageURL    string
	Variants    []VariantInput
	Tags        []string
}

type ProductService interface {
	CreateProduct(input CreateProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
	ListTags() ([]model.Tag, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(input CreateProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":     input.Name,
		"variants": len(input.Variants),
		"tags":     len(input.Tags),
	})

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		Gender:      input.Gender,
		Type:        input.Type,
		Season:      input.Season,
		Attributes:  input.Attributes,
		ImageURL:    input.ImageURL,
	}
	if product.Gender == "" {
		product.Gender = model.GenderUnisex
	}
	if product.Type == "" {
		product.Type = "general"
	}
	if product.Season == "" {
		product.Season = model.SeasonNeutral
	}
	if product.Attributes == nil {
		product.Attributes = model.AttributeMap{}
	}

	variants := make([]model.Variant, 0, len(input.Variants))
	for _, v := range input.Variants {
		variants = append(variants, model.Variant{
			Color: v.Color,
			Size:  v.Size,
			Stock: v.Stock,
		})
	}

	if err := s.productRepo.Create(product, variants, input.Tags); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if err := s.productRepo.SoftDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found or already deleted", map[string]interface{}{
				"product_id": id,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (s *productService) ListTags() ([]model.Tag, error) {
	return s.productRepo.ListTags()
}
