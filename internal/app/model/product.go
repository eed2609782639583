package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ProductGender string

const (
	GenderMale   ProductGender = "male"
	GenderFemale ProductGender = "female"
	GenderUnisex ProductGender = "unisex"
)

type ProductSeason string

const (
	SeasonSummer ProductSeason = "summer"
	SeasonWinter ProductSeason = "winter"
	// SeasonNeutral products are visible under every seasonal filter.
	SeasonNeutral ProductSeason = "neutral"
)

// AttributeMap stores free-form product attributes as a JSON text column.
type AttributeMap map[string]interface{}

func (m AttributeMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *AttributeMap) Scan(value interface{}) error {
	if value == nil {
		*m = AttributeMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported attribute column type %T", value)
	}
	if len(data) == 0 {
		*m = AttributeMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	BasePrice   float64        `gorm:"not null" json:"base_price"`
	Gender      ProductGender  `gorm:"type:varchar(20);default:'unisex'" json:"gender"`
	Type        string         `gorm:"type:varchar(50);default:'general'" json:"type"`
	Season      ProductSeason  `gorm:"type:varchar(20);default:'neutral'" json:"season"`
	Attributes  AttributeMap   `gorm:"type:text" json:"attributes"`
	ImageURL    string         `json:"image_url"`
	ViewCount   int            `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Variants []Variant `gorm:"foreignKey:ProductID" json:"-"`
	Sales    []Sale    `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
