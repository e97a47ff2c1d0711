package models

import "time"

// Product - глобальный товар каталога, создаёт только админ
type Product struct {
	ID          uint      `gorm:"primaryKey"`
	CategoryID  *uint     `gorm:"index"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
	Name        string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:1000"`
	Price       float64   `gorm:"not null"` // розничная цена за единицу
	// Оптовая цена опциональна, при отсутствии считается как 0.85 от розничной
	WholesalePrice *float64
	ImageURL       string `gorm:"size:500"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
