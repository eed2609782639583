package model

import "time"

// Sale is an immutable historical record. VariantDetail snapshots the sold
// variant as text ("Red M") so later renames cannot corrupt history. There is
// no update or delete path for sales anywhere in the codebase.
type Sale struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ProductID     uint      `gorm:"index;not null" json:"product_id"`
	VariantDetail string    `gorm:"type:varchar(100);not null" json:"variant_detail"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	TotalPrice    float64   `gorm:"not null" json:"total_price"`
	CreatedAt     time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Sale) TableName() string {
	return "sales"
}
