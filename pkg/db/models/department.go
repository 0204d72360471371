package models

// Department is a read-only store section reference.
type Department struct {
	DepartmentID int64  `gorm:"column:department_id;primaryKey;autoIncrement" json:"department_id"`
	Name         string `gorm:"column:department_name;not null" json:"name"`
}

func (Department) TableName() string { return "departments" }
