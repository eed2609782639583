package repository

import (
	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfigRepository interface {
	Get(key string) (*model.ConfigEntry, error)
	Upsert(entry *model.ConfigEntry) error
	List() ([]model.ConfigEntry, error)
}

type configRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) Get(key string) (*model.ConfigEntry, error) {
	var entry model.ConfigEntry
	if err := r.db.Where("key = ?", key).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Upsert inserts the entry or, when the key already exists, overwrites its
// value and description.
func (r *configRepository) Upsert(entry *model.ConfigEntry) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
	}).Create(entry).Error; err != nil {
		logger.Error("Failed to upsert config entry", err, map[string]interface{}{
			"key": entry.Key,
		})
		return err
	}

	logger.Debug("Config entry upserted", map[string]interface{}{
		"key": entry.Key,
	})
	return nil
}

func (r *configRepository) List() ([]model.ConfigEntry, error) {
	var entries []model.ConfigEntry
	if err := r.db.Order("key ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
