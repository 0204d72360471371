package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine records one product's membership in a cart. UnitPrice is frozen at
// the moment the product is added; Total is UnitPrice * Quantity rounded to
// two places. At most one line exists per (cart, product) pair.
type CartLine struct {
	LineID    int64           `gorm:"column:line_id;primaryKey;autoIncrement" json:"line_id"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null" json:"total"`
	AddedAt   time.Time       `gorm:"column:added_at;not null" json:"added_at"`
	CartID    int64           `gorm:"column:cart_id;not null;index" json:"cart_id"`
	ProductID int64           `gorm:"column:product_id;not null" json:"product_id"`

	// Populated only by joined reads.
	Product *Product `gorm:"-" json:"product,omitempty"`
}

func (CartLine) TableName() string { return "cart_lines" }
