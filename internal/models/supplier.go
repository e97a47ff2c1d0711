package models

import "time"

// Supplier - поставщик, владеет одним или несколькими магазинами
type Supplier struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	User      User   `gorm:"foreignKey:UserID"`
	Name      string `gorm:"size:200;not null"`
	Info      string `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
