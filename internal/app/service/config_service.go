package service

import (
	"context"
	"errors"
	"time"

	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/internal/app/repository"
	"github.com/jmercado/tienda-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ErrConfigNotFound = errors.New("config entry not found")

const configCacheTTL = 5 * time.Minute

type ConfigService interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value, description string) (*model.ConfigEntry, error)
	ListEntries() ([]model.ConfigEntry, error)
}

type configService struct {
	configRepo repository.ConfigRepository
	cache      *redis.Client
}

// NewConfigService builds the config service. cache may be nil, in which case
// every read hits the database.
func NewConfigService(configRepo repository.ConfigRepository, cache *redis.Client) ConfigService {
	return &configService{configRepo: configRepo, cache: cache}
}

func cacheKey(key string) string {
	return "config:" + key
}

func (s *configService) GetValue(ctx context.Context, key string) (string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey(key)).Result()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			logger.Warn("Config cache read failed, falling back to database", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	entry, err := s.configRepo.Get(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrConfigNotFound
		}
		logger.Error("Failed to read config entry", err, map[string]interface{}{
			"key": key,
		})
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(key), entry.Value, configCacheTTL).Err(); err != nil {
			logger.Warn("Config cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return entry.Value, nil
}

func (s *configService) SetValue(ctx context.Context, key, value, description string) (*model.ConfigEntry, error) {
	entry := &model.ConfigEntry{
		Key:         key,
		Value:       value,
		Description: description,
	}
	if err := s.configRepo.Upsert(entry); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKey(key)).Err(); err != nil {
			logger.Warn("Config cache invalidation failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	logger.Info("Config entry updated", map[string]interface{}{
		"key": key,
	})
	return entry, nil
}

func (s *configService) ListEntries() ([]model.ConfigEntry, error) {
	return s.configRepo.List()
}
