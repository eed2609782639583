package model

import "time"

// ConfigEntry is a key-value storefront setting (e.g. display mode).
type ConfigEntry struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Key         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ConfigEntry) TableName() string {
	return "config_entries"
}
