package scheduler

import (
	"github.com/jmercado/tienda-backend/internal/app/service"
	"github.com/jmercado/tienda-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// PriceRuleScheduler periodically deactivates price rules whose window has
// closed. Catalog pricing checks windows itself, so this only keeps the
// admin listings tidy.
type PriceRuleScheduler struct {
	cron             *cron.Cron
	priceRuleService service.PriceRuleService
}

func NewPriceRuleScheduler(priceRuleService service.PriceRuleService) *PriceRuleScheduler {
	return &PriceRuleScheduler{
		cron:             cron.New(),
		priceRuleService: priceRuleService,
	}
}

// Start registers the hourly sweep and starts the cron loop.
func (s *PriceRuleScheduler) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		count, err := s.priceRuleService.DeactivateExpired()
		if err != nil {
			logger.Error("Failed to deactivate expired price rules from scheduler", err)
			return
		}
		if count > 0 {
			logger.Info("Scheduled price rule sweep completed", map[string]interface{}{
				"deactivated": count,
			})
		}
	})
	if err != nil {
		logger.Error("Failed to register price rule sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Price rule scheduler started (hourly sweep)", nil)
	return nil
}

// Stop halts the cron loop.
func (s *PriceRuleScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Price rule scheduler stopped", nil)
}
