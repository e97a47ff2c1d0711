package models

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusCompleted RequestStatus = "completed"

	// Зарезервированный статус, переходов в него сейчас нет
	RequestStatusProcessing RequestStatus = "processing"
)

// Request - заявка магазина на пополнение, шапка + позиции
type Request struct {
	ID     uint `gorm:"primaryKey"`
	ShopID uint `gorm:"index;not null"`
	Shop   Shop `gorm:"foreignKey:ShopID"`

	// Денормализовано из магазина для выборок, всегда совпадает с shop.supplier_id
	SupplierID uint     `gorm:"index;not null"`
	Supplier   Supplier `gorm:"foreignKey:SupplierID"`

	Status    RequestStatus `gorm:"size:20;not null;default:pending"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequestItem - одна позиция заявки, товар встречается не более одного раза
type RequestItem struct {
	ID        uint    `gorm:"primaryKey"`
	RequestID uint    `gorm:"uniqueIndex:idx_request_items_request_product;not null"`
	ProductID uint    `gorm:"uniqueIndex:idx_request_items_request_product;not null"`
	Product   Product `gorm:"foreignKey:ProductID"`
	Quantity  int     `gorm:"not null"`
}
