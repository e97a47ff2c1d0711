package request

import (
	"errors"
	"time"

	"github.com/TechGeniusAcademy/melochy/internal/models"

	"gorm.io/gorm"
)

// ItemInput - одна пара (товар, количество) при создании или редактировании заявки
type ItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Info - шапка заявки с присоединёнными данными магазина и поставщика
type Info struct {
	ID           uint
	ShopID       uint
	SupplierID   uint
	Status       models.RequestStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ShopName     string
	BusinessType string
	SupplierName string
}

// ItemRow - позиция заявки вместе с данными товара из каталога.
// Цены читаются из каталога на момент запроса, а не фиксируются при создании.
type ItemRow struct {
	ProductID          uint
	ProductName        string
	ProductDescription string
	Price              float64
	WholesalePrice     *float64
	Quantity           int
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(requestID uint) (*Info, error) {
	var info Info
	err := r.db.Table("requests").
		Select(`requests.id, requests.shop_id, requests.supplier_id, requests.status,
			requests.created_at, requests.updated_at,
			shops.name AS shop_name, shops.business_type,
			suppliers.name AS supplier_name`).
		Joins("JOIN shops ON shops.id = requests.shop_id").
		Joins("JOIN suppliers ON suppliers.id = requests.supplier_id").
		Where("requests.id = ?", requestID).
		Take(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetItems возвращает позиции заявки, отсортированные по названию товара
func (r *Repository) GetItems(requestID uint) ([]ItemRow, error) {
	var rows []ItemRow
	err := r.db.Table("request_items").
		Select(`request_items.product_id, request_items.quantity,
			products.name AS product_name, products.description AS product_description,
			products.price, products.wholesale_price`).
		Joins("JOIN products ON products.id = request_items.product_id").
		Where("request_items.request_id = ?", requestID).
		Order("products.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertItem добавляет товар в заявку или перезаписывает количество,
// если такой товар уже есть
func (r *Repository) UpsertItem(requestID, productID uint, quantity int) error {
	var existing models.RequestItem
	err := r.db.Where("request_id = ? AND product_id = ?", requestID, productID).
		Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&models.RequestItem{
			RequestID: requestID,
			ProductID: productID,
			Quantity:  quantity,
		}).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).Update("quantity", quantity).Error
}

// RemoveItem удаляет позицию, отсутствие позиции ошибкой не считается
func (r *Repository) RemoveItem(requestID, productID uint) error {
	return r.db.
		Where("request_id = ? AND product_id = ?", requestID, productID).
		Delete(&models.RequestItem{}).Error
}

// filterItems отбрасывает позиции с неположительным количеством и схлопывает
// дубли по товару, последнее количество выигрывает
func filterItems(items []ItemInput) []ItemInput {
	idx := make(map[uint]int, len(items))
	out := make([]ItemInput, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if i, ok := idx[it.ProductID]; ok {
			out[i].Quantity = it.Quantity
			continue
		}
		idx[it.ProductID] = len(out)
		out = append(out, it)
	}
	return out
}

// ReplaceAllItems полностью заменяет набор позиций заявки: удаляет все
// существующие и вставляет новые. Позиции с количеством <= 0 отбрасываются.
// Выполняется в транзакции, чтобы параллельное чтение не увидело пустую заявку.
func (r *Repository) ReplaceAllItems(requestID uint, items []ItemInput) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).
			Delete(&models.RequestItem{}).Error; err != nil {
			return err
		}
		for _, it := range filterItems(items) {
			if err := tx.Create(&models.RequestItem{
				RequestID: requestID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete удаляет заявку вместе с позициями. Обе операции в одной транзакции.
func (r *Repository) Delete(requestID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).
			Delete(&models.RequestItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Request{}, "id = ?", requestID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *Repository) UpdateStatus(requestID uint, status models.RequestStatus) error {
	res := r.db.Model(&models.Request{}).
		Where("id = ?", requestID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Touch обновляет updated_at после изменения состава заявки
func (r *Repository) Touch(requestID uint) error {
	return r.db.Model(&models.Request{}).
		Where("id = ?", requestID).
		Update("updated_at", time.Now()).Error
}
