package db

import (
	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Product{},
		&model.Variant{},
		&model.Tag{},
		&model.ProductTag{},
		&model.PriceRule{},
		&model.Sale{},
		&model.ConfigEntry{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

func seedInitialData() error {
	if err := seedTags(); err != nil {
		logger.Error("Failed to seed tags", err)
		return err
	}
	if err := seedConfigDefaults(); err != nil {
		logger.Error("Failed to seed config defaults", err)
		return err
	}
	return nil
}

// seedTags creates the baseline tags the storefront filters rely on.
func seedTags() error {
	var count int64
	if err := DB.Model(&model.Tag{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Tags already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	tags := []model.Tag{
		{Name: "summer"},
		{Name: "winter"},
		{Name: "neutral"},
		{Name: "offer"},
		{Name: "christmas"},
		{Name: "new"},
	}

	for _, tag := range tags {
		if err := DB.Create(&tag).Error; err != nil {
			logger.Error("Failed to create tag", err, map[string]interface{}{
				"tag": tag.Name,
			})
			return err
		}
	}

	logger.Info("Tags seeded successfully", map[string]interface{}{
		"total_tags": len(tags),
	})
	return nil
}

// seedConfigDefaults inserts storefront settings on first boot only.
func seedConfigDefaults() error {
	defaults := []model.ConfigEntry{
		{Key: "display_mode", Value: "grid", Description: "Storefront catalog layout"},
		{Key: "store_open", Value: "true", Description: "Whether the storefront accepts sales"},
	}

	for _, entry := range defaults {
		var count int64
		if err := DB.Model(&model.ConfigEntry{}).Where("key = ?", entry.Key).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}
