package models

// Brand is a read-only product manufacturer reference.
type Brand struct {
	BrandID int64  `gorm:"column:brand_id;primaryKey;autoIncrement" json:"brand_id"`
	Name    string `gorm:"column:brand_name;not null" json:"name"`
}

func (Brand) TableName() string { return "brands" }
