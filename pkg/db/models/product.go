package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Prices are integers in the smallest currency unit.
type Product struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"column:name;not null" json:"name"`
	Brand         string          `gorm:"column:brand;not null" json:"brand"`
	Price         int64           `gorm:"column:price;not null" json:"price"`
	OriginalPrice int64           `gorm:"column:original_price;not null;default:0" json:"original_price"`
	Discount      int             `gorm:"column:discount;not null;default:0" json:"discount"`
	Image         string          `gorm:"column:image;not null;default:''" json:"image"`
	Rating        decimal.Decimal `gorm:"column:rating;type:numeric(2,1);not null;default:0" json:"rating"`
	Reviews       int             `gorm:"column:reviews;not null;default:0" json:"reviews"`
	Tag           *string         `gorm:"column:tag" json:"tag"`
	Sizes         pq.StringArray  `gorm:"column:sizes;type:text[];not null;default:'{}'" json:"sizes"`
	Colors        pq.StringArray  `gorm:"column:colors;type:text[];not null;default:'{}'" json:"colors"`
	Category      string          `gorm:"column:category;not null;default:''" json:"category"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Product) TableName() string { return "products" }

func init() {
	// ratings render as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}
