package repository

import (
	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product, variants []model.Variant, tagNames []string) error
	SoftDelete(id uint) error
	AttachTags(productID uint, tagNames []string) error
	FindOrCreateTag(name string) (*model.Tag, error)
	ListTags() ([]model.Tag, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create persists a product together with its variants and tag associations
// in one transaction; a failure anywhere leaves no partial product behind.
// Tags are resolved by name and created on first use.
func (r *productRepository) Create(product *model.Product, variants []model.Variant, tagNames []string) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"season":   product.Season,
		"variants": len(variants),
		"tags":     len(tagNames),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}

		for i := range variants {
			variants[i].ProductID = product.ID
			if err := tx.Create(&variants[i]).Error; err != nil {
				logger.Error("Failed to create product variant", err, map[string]interface{}{
					"product_id": product.ID,
					"color":      variants[i].Color,
					"size":       variants[i].Size,
				})
				return err
			}
		}

		return attachTags(tx, product.ID, tagNames)
	})
	if err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

// SoftDelete marks the product deleted. Rows are never physically removed so
// sale history keeps resolving.
func (r *productRepository) SoftDelete(id uint) error {
	result := r.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete product from database", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Product soft-deleted in database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (r *productRepository) AttachTags(productID uint, tagNames []string) error {
	return attachTags(r.db, productID, tagNames)
}

// attachTags runs on whichever handle the caller is inside of, so tag
// association joins the product-create transaction.
func attachTags(db *gorm.DB, productID uint, tagNames []string) error {
	for _, name := range tagNames {
		tag, err := findOrCreateTag(db, name)
		if err != nil {
			return err
		}

		association := model.ProductTag{ProductID: productID, TagID: tag.ID}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&association).Error; err != nil {
			logger.Error("Failed to associate tag with product", err, map[string]interface{}{
				"product_id": productID,
				"tag":        name,
			})
			return err
		}
	}
	return nil
}

func (r *productRepository) FindOrCreateTag(name string) (*model.Tag, error) {
	return findOrCreateTag(r.db, name)
}

func findOrCreateTag(db *gorm.DB, name string) (*model.Tag, error) {
	var tag model.Tag
	err := db.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tag = model.Tag{Name: name}
	if err := db.Create(&tag).Error; err != nil {
		logger.Error("Failed to create tag", err, map[string]interface{}{
			"tag": name,
		})
		return nil, err
	}
	return &tag, nil
}

func (r *productRepository) ListTags() ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
