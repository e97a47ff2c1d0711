package request

import (
	"errors"

	"github.com/TechGeniusAcademy/melochy/internal/models"

	"gorm.io/gorm"
)

// Service реализует жизненный цикл заявки: создание поставщиком,
// редактирование в статусе pending, админские переходы статуса и удаление.
type Service struct {
	db   *gorm.DB
	repo *Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, repo: NewRepository(db)}
}

// Create создаёт заявку в статусе pending для магазина поставщика.
// supplier_id заявки всегда берётся из магазина, а не от вызывающего.
func (s *Service) Create(shopID, actingSupplierID uint, items []ItemInput) (*models.Request, error) {
	var shop models.Shop
	if err := s.db.First(&shop, "id = ?", shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if shop.SupplierID != actingSupplierID {
		return nil, ErrForbidden
	}

	items = filterItems(items)
	if err := s.ensureProductsExist(items); err != nil {
		return nil, err
	}

	req := &models.Request{
		ShopID:     shop.ID,
		SupplierID: shop.SupplierID,
		Status:     models.RequestStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		for _, it := range items {
			if err := tx.Create(&models.RequestItem{
				RequestID: req.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Edit заменяет состав заявки. Разрешено только владельцу и только в статусе pending.
func (s *Service) Edit(requestID, actingSupplierID uint, items []ItemInput) error {
	info, err := s.repo.GetByID(requestID)
	if err != nil {
		return err
	}
	if info.SupplierID != actingSupplierID {
		return ErrForbidden
	}
	if info.Status != models.RequestStatusPending {
		return &InvalidStateError{Status: info.Status}
	}

	items = filterItems(items)
	if err := s.ensureProductsExist(items); err != nil {
		return err
	}

	if err := s.repo.ReplaceAllItems(requestID, items); err != nil {
		return err
	}
	return s.repo.Touch(requestID)
}

// ensureProductsExist проверяет, что каждая позиция ссылается на товар каталога.
// Позиции уже прошли filterItems, поэтому дубликатов здесь нет.
func (s *Service) ensureProductsExist(items []ItemInput) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	var found []uint
	if err := s.db.Model(&models.Product{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return err
	}

	exists := make(map[uint]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}
	for _, it := range items {
		if !exists[it.ProductID] {
			return &ProductNotFoundError{ProductID: it.ProductID}
		}
	}
	return nil
}

// MarkProcessed переводит заявку в completed (действие админа)
func (s *Service) MarkProcessed(requestID uint) error {
	return s.repo.UpdateStatus(requestID, models.RequestStatusCompleted)
}

// Reopen возвращает заявку в pending для цикла исправлений (действие админа)
func (s *Service) Reopen(requestID uint) error {
	return s.repo.UpdateStatus(requestID, models.RequestStatusPending)
}

// Delete удаляет заявку из любого статуса вместе с позициями (действие админа)
func (s *Service) Delete(requestID uint) error {
	return s.repo.Delete(requestID)
}

func (s *Service) Get(requestID uint) (*Info, error) {
	return s.repo.GetByID(requestID)
}

func (s *Service) Items(requestID uint) ([]ItemRow, error) {
	return s.repo.GetItems(requestID)
}

// Summary возвращает шапку, позиции и рассчитанную сводку заявки
func (s *Service) Summary(requestID uint) (*Info, []ItemRow, Summary, error) {
	info, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, nil, Summary{}, err
	}
	items, err := s.repo.GetItems(requestID)
	if err != nil {
		return nil, nil, Summary{}, err
	}
	return info, items, Summarize(items), nil
}
