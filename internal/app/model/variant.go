package model

import "time"

// Variant is a (color, size) stock-keeping unit of a product. Stock can never
// go negative: the check constraint backs the conditional debit in sales.
type Variant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_variants_product_color_size" json:"product_id"`
	Color     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_variants_product_color_size" json:"color"`
	Size      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_variants_product_color_size" json:"size"`
	Stock     int       `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Variant) TableName() string {
	return "variants"
}
