package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmercado/tienda-backend/internal/app/service"
	apperrors "github.com/jmercado/tienda-backend/internal/errors"
	"github.com/jmercado/tienda-backend/internal/middleware"
)

type PriceRuleController struct {
	priceRuleService service.PriceRuleService
}

func NewPriceRuleController(priceRuleService service.PriceRuleService) *PriceRuleController {
	return &PriceRuleController{
		priceRuleService: priceRuleService,
	}
}

type CreatePriceRuleRequest struct {
	Tag             string     `json:"tag" binding:"required"`
	EventName       string     `json:"event_name" binding:"required"`
	DiscountPercent float64    `json:"discount_percent" binding:"gte=0,lte=100"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
}

// CreatePriceRule registers a discount event on a tag (Admin only).
// POST /api/v1/price-rules
func (ctrl *PriceRuleController) CreatePriceRule(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreatePriceRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid price rule request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.PriceRuleInvalid, "Invalid price rule data")
		return
	}

	rule, err := ctrl.priceRuleService.CreateRule(service.CreatePriceRuleInput{
		TagName:         req.Tag,
		EventName:       req.EventName,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPriceRule) {
			apperrors.BadRequest(c, apperrors.PriceRuleInvalid, "Invalid price rule data")
			return
		}
		log.Error("Failed to create price rule", err, map[string]interface{}{
			"event_name": req.EventName,
		})
		apperrors.InternalError(c, "Failed to create price rule")
		return
	}

	log.Info("Price rule created successfully", map[string]interface{}{
		"rule_id":    rule.ID,
		"event_name": rule.EventName,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Price rule created successfully",
		"price_rule": rule,
	})
}

// ListPriceRules returns all rules, newest first (Admin only).
// GET /api/v1/price-rules
func (ctrl *PriceRuleController) ListPriceRules(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	rules, err := ctrl.priceRuleService.ListRules()
	if err != nil {
		log.Error("Failed to list price rules", err, nil)
		apperrors.InternalError(c, "Failed to fetch price rules")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"price_rules": rules,
		"count":       len(rules),
	})
}
