package models

import "github.com/shopspring/decimal"

// Product is a sellable listing. Stock is the single source of truth for
// availability and is mutated only by the cart engine.
type Product struct {
	ProductID    int64           `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	Code         string          `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Name         string          `gorm:"column:name;not null" json:"name"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Stock        int             `gorm:"column:stock;not null;default:0" json:"stock"`
	BrandID      *int64          `gorm:"column:brand_id" json:"brand_id,omitempty"`
	DepartmentID *int64          `gorm:"column:department_id" json:"department_id,omitempty"`

	// Populated only by joined reads.
	Brand      *Brand      `gorm:"-" json:"brand,omitempty"`
	Department *Department `gorm:"-" json:"department,omitempty"`
}

func (Product) TableName() string { return "products" }
