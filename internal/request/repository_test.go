package request_test

import (
	"testing"

	"github.com/TechGeniusAcademy/melochy/internal/models"
	"github.com/TechGeniusAcademy/melochy/internal/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPendingRequest(t *testing.T, db *gorm.DB, shop models.Shop) models.Request {
	t.Helper()

	req := models.Request{
		ShopID:     shop.ID,
		SupplierID: shop.SupplierID,
		Status:     models.RequestStatusPending,
	}
	require.NoError(t, db.Create(&req).Error)
	return req
}

func TestReplaceAllItems_DropsNonPositiveAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := request.NewRepository(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)
	tea := seedProduct(t, db, "Чай", 50, ptr(40))
	req := seedPendingRequest(t, db, shop)

	err := repo.ReplaceAllItems(req.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 3},
		{ProductID: tea.ID, Quantity: 0},
		{ProductID: chocolate.ID, Quantity: 5}, // дубль, последнее количество выигрывает
	})
	require.NoError(t, err)

	items, err := repo.GetItems(req.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, chocolate.ID, items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestReplaceAllItems_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := request.NewRepository(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)
	tea := seedProduct(t, db, "Чай", 50, ptr(40))
	req := seedPendingRequest(t, db, shop)

	items := []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 2},
		{ProductID: tea.ID, Quantity: 3},
	}

	require.NoError(t, repo.ReplaceAllItems(req.ID, items))
	first, err := repo.GetItems(req.ID)
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceAllItems(req.ID, items))
	second, err := repo.GetItems(req.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, second, 2)
}

func TestGetItems_OrderedByProductName(t *testing.T) {
	db := newTestDB(t)
	repo := request.NewRepository(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	cookies := seedProduct(t, db, "Печенье", 30, nil)
	oranges := seedProduct(t, db, "Апельсины", 80, nil)
	req := seedPendingRequest(t, db, shop)

	require.NoError(t, repo.ReplaceAllItems(req.ID, []request.ItemInput{
		{ProductID: cookies.ID, Quantity: 1},
		{ProductID: oranges.ID, Quantity: 2},
	}))

	items, err := repo.GetItems(req.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Апельсины", items[0].ProductName)
	assert.Equal(t, "Печенье", items[1].ProductName)
}

func TestUpsertItem_OverwritesQuantity(t *testing.T) {
	db := newTestDB(t)
	repo := request.NewRepository(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)
	req := seedPendingRequest(t, db, shop)

	require.NoError(t, repo.UpsertItem(req.ID, chocolate.ID, 2))
	require.NoError(t, repo.UpsertItem(req.ID, chocolate.ID, 7))

	items, err := repo.GetItems(req.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestRemoveItem_NoopWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := request.NewRepository(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	req := seedPendingRequest(t, db, shop)

	assert.NoError(t, repo.RemoveItem(req.ID, 999))
}

func TestDelete_RemovesRequestAndItems(t *testing.T) {
	db := newTestDB(t)
	repo := request.NewRepository(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)
	req := seedPendingRequest(t, db, shop)

	require.NoError(t, repo.ReplaceAllItems(req.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 4},
	}))

	require.NoError(t, repo.Delete(req.ID))

	_, err := repo.GetByID(req.ID)
	assert.ErrorIs(t, err, request.ErrNotFound)

	items, err := repo.GetItems(req.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	var count int64
	db.Model(&models.RequestItem{}).Where("request_id = ?", req.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDelete_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := request.NewRepository(db)

	assert.ErrorIs(t, repo.Delete(12345), request.ErrNotFound)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := request.NewRepository(db)

	err := repo.UpdateStatus(12345, models.RequestStatusCompleted)
	assert.ErrorIs(t, err, request.ErrNotFound)
}

func TestGetByID_JoinsShopAndSupplier(t *testing.T) {
	db := newTestDB(t)
	repo := request.NewRepository(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ТОО")
	req := seedPendingRequest(t, db, shop)

	info, err := repo.GetByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Мелочи", info.ShopName)
	assert.Equal(t, "ТОО", info.BusinessType)
	assert.Equal(t, "Продукты Оптом", info.SupplierName)
	assert.Equal(t, models.RequestStatusPending, info.Status)
}
