package models

// User represents a store customer. The cart engine only ever reads users.
type User struct {
	UserID   int64  `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username string `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Name     string `gorm:"column:name;not null" json:"name"`
}

func (User) TableName() string { return "users" }
