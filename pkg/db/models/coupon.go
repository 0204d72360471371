package models

import "github.com/shopspring/decimal"

// Coupon grants a fractional discount on a cart's subtotal. Codes are stored
// normalized (uppercase, trimmed) and compared the same way.
type Coupon struct {
	CouponID    int64           `gorm:"column:coupon_id;primaryKey;autoIncrement" json:"coupon_id"`
	Code        string          `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Description string          `gorm:"column:description;not null" json:"description"`
	Rate        decimal.Decimal `gorm:"column:rate;type:numeric(5,4);not null" json:"rate"`
}

func (Coupon) TableName() string { return "coupons" }
