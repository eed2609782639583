package model

import (
	"time"

	"gorm.io/gorm"
)

// Tag represents a label that can be attached to products (e.g. "winter",
// "christmas", "offer"). Price rules hang off tags, not products.
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// ProductTag is the many-to-many association between products and tags.
type ProductTag struct {
	ProductID uint      `gorm:"primaryKey;index" json:"product_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	Product   Product   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag       Tag       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProductTag) TableName() string {
	return "product_tags"
}
