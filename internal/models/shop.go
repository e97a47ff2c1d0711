package models

import "time"

type Shop struct {
	ID           uint     `gorm:"primaryKey"`
	SupplierID   uint     `gorm:"index;not null"`
	Supplier     Supplier `gorm:"foreignKey:SupplierID"`
	Name         string   `gorm:"size:200;not null"`
	Info         string   `gorm:"size:500"`
	BusinessType string   `gorm:"size:50"` // ИП, ТОО и т.д.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
