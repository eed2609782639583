package model

import (
	"time"

	"gorm.io/gorm"
)

// PriceRule is a tag-scoped, time-windowed discount. A rule applies to a
// product when the product carries the rule's tag, the rule is active and the
// current time falls inside [StartsAt, EndsAt]; nil bounds are unbounded.
type PriceRule struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	TagID           uint           `gorm:"index;not null" json:"tag_id"`
	EventName       string         `gorm:"type:varchar(100);not null" json:"event_name"`
	DiscountPercent float64        `gorm:"not null;check:discount_percent >= 0 AND discount_percent <= 100" json:"discount_percent"`
	StartsAt        *time.Time     `json:"starts_at"`
	EndsAt          *time.Time     `json:"ends_at"`
	Active          bool           `gorm:"default:true" json:"active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Tag Tag `gorm:"foreignKey:TagID" json:"-"`
}

func (PriceRule) TableName() string {
	return "price_rules"
}

// AppliesAt reports whether the rule is active and in-window at t.
func (r *PriceRule) AppliesAt(t time.Time) bool {
	if !r.Active {
		return false
	}
	if r.StartsAt != nil && r.StartsAt.After(t) {
		return false
	}
	if r.EndsAt != nil && r.EndsAt.Before(t) {
		return false
	}
	return true
}
