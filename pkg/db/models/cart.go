package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart aggregates a user's open order. Totals are derived values: after every
// successful mutation, Total equals Subtotal + Shipping - Discount. A cart is
// never deleted; clearing it only removes its lines.
type Cart struct {
	CartID    int64           `gorm:"column:cart_id;primaryKey;autoIncrement" json:"cart_id"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null" json:"subtotal"`
	Discount  decimal.Decimal `gorm:"column:discount;type:numeric(10,2);not null" json:"discount"`
	Shipping  decimal.Decimal `gorm:"column:shipping;type:numeric(10,2);not null" json:"shipping"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null" json:"total"`
	CreatedAt time.Time       `gorm:"column:created_at;not null" json:"created_at"`
	UserID    int64           `gorm:"column:user_id;not null" json:"user_id"`
	CouponID  *int64          `gorm:"column:coupon_id" json:"coupon_id,omitempty"`

	// Populated only by joined reads.
	User   *User      `gorm:"-" json:"user,omitempty"`
	Coupon *Coupon    `gorm:"-" json:"coupon,omitempty"`
	Lines  []CartLine `gorm:"-" json:"lines"`
}

func (Cart) TableName() string { return "carts" }
