package repository

import (
	"time"

	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/pkg/logger"
	"gorm.io/gorm"
)

type PriceRuleRepository interface {
	Create(rule *model.PriceRule) error
	List() ([]model.PriceRule, error)
	DeactivateExpired(now time.Time) (int64, error)
}

type priceRuleRepository struct {
	db *gorm.DB
}

func NewPriceRuleRepository(db *gorm.DB) PriceRuleRepository {
	return &priceRuleRepository{db: db}
}

func (r *priceRuleRepository) Create(rule *model.PriceRule) error {
	if err := r.db.Create(rule).Error; err != nil {
		logger.Error("Failed to create price rule", err, map[string]interface{}{
			"event_name": rule.EventName,
			"tag_id":     rule.TagID,
		})
		return err
	}
	return nil
}

func (r *priceRuleRepository) List() ([]model.PriceRule, error) {
	var rules []model.PriceRule
	if err := r.db.Preload("Tag").Order("id DESC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// DeactivateExpired flips the active flag on rules whose window has fully
// passed. Pricing never depends on this; catalog reads check the window
// themselves. This is housekeeping so admin listings reflect reality.
func (r *priceRuleRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.PriceRule{}).
		Where("active = ? AND ends_at IS NOT NULL AND ends_at < ?", true, now).
		Update("active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired price rules", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
