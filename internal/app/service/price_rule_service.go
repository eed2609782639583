package service

import (
	"errors"
	"time"

	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/internal/app/repository"
	"github.com/jmercado/tienda-backend/pkg/logger"
)

var ErrInvalidPriceRule = errors.New("invalid price rule")

// CreatePriceRuleInput defines a discount event scoped to a tag name. The tag
// is created on first use, matching product tagging behavior.
type CreatePriceRuleInput struct {
	TagName         string
	EventName       string
	DiscountPercent float64
	StartsAt        *time.Time
	EndsAt          *time.Time
}

type PriceRuleService interface {
	CreateRule(input CreatePriceRuleInput) (*model.PriceRule, error)
	ListRules() ([]model.PriceRule, error)
	DeactivateExpired() (int64, error)
}

type priceRuleService struct {
	priceRuleRepo repository.PriceRuleRepository
	productRepo   repository.ProductRepository
}

func NewPriceRuleService(priceRuleRepo repository.PriceRuleRepository, productRepo repository.ProductRepository) PriceRuleService {
	return &priceRuleService{
		priceRuleRepo: priceRuleRepo,
		productRepo:   productRepo,
	}
}

func (s *priceRuleService) CreateRule(input CreatePriceRuleInput) (*model.PriceRule, error) {
	if input.TagName == "" || input.EventName == "" {
		return nil, ErrInvalidPriceRule
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, ErrInvalidPriceRule
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, ErrInvalidPriceRule
	}

	tag, err := s.productRepo.FindOrCreateTag(input.TagName)
	if err != nil {
		return nil, err
	}

	rule := &model.PriceRule{
		TagID:           tag.ID,
		EventName:       input.EventName,
		DiscountPercent: input.DiscountPercent,
		StartsAt:        input.StartsAt,
		EndsAt:          input.EndsAt,
		Active:          true,
	}
	if err := s.priceRuleRepo.Create(rule); err != nil {
		return nil, err
	}

	logger.Info("Price rule created", map[string]interface{}{
		"rule_id":    rule.ID,
		"event_name": rule.EventName,
		"tag":        input.TagName,
		"percent":    rule.DiscountPercent,
	})
	return rule, nil
}

func (s *priceRuleService) ListRules() ([]model.PriceRule, error) {
	return s.priceRuleRepo.List()
}

func (s *priceRuleService) DeactivateExpired() (int64, error) {
	count, err := s.priceRuleRepo.DeactivateExpired(time.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Expired price rules deactivated", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}
