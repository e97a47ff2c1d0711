package request_test

import (
	"testing"

	"github.com/TechGeniusAcademy/melochy/internal/models"
	"github.com/TechGeniusAcademy/melochy/internal/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_SetsPendingAndOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)

	req, err := svc.Create(shop.ID, supplier.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, req.Status)
	assert.Equal(t, supplier.ID, req.SupplierID)

	items, err := svc.Items(req.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCreate_ForeignShopForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	owner := seedSupplier(t, db, "owner@example.com", "Продукты Оптом")
	other := seedSupplier(t, db, "other@example.com", "Хозтовары")
	shop := seedShop(t, db, owner.ID, "Мелочи", "ИП")

	_, err := svc.Create(shop.ID, other.ID, nil)
	assert.ErrorIs(t, err, request.ErrForbidden)
}

func TestCreate_ShopNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")

	_, err := svc.Create(777, supplier.ID, nil)
	assert.ErrorIs(t, err, request.ErrNotFound)
}

func TestCreate_UnknownProductRejected(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")

	_, err := svc.Create(shop.ID, supplier.ID, []request.ItemInput{
		{ProductID: 9999, Quantity: 3},
	})

	var productErr *request.ProductNotFoundError
	require.ErrorAs(t, err, &productErr)
	assert.Equal(t, uint(9999), productErr.ProductID)

	// Заявка не должна была создаться
	var count int64
	db.Model(&models.Request{}).Count(&count)
	assert.Zero(t, count)
}

func TestEdit_ReplacesItemsAndKeepsPending(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)
	tea := seedProduct(t, db, "Чай", 50, ptr(40))

	req, err := svc.Create(shop.ID, supplier.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 3},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Edit(req.ID, supplier.ID, []request.ItemInput{
		{ProductID: tea.ID, Quantity: 6},
	}))

	items, err := svc.Items(req.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, tea.ID, items[0].ProductID)
	assert.Equal(t, 6, items[0].Quantity)

	info, err := svc.Get(req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, info.Status)
}

func TestEdit_UnknownProductRejected(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)

	req, err := svc.Create(shop.ID, supplier.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 3},
	})
	require.NoError(t, err)

	err = svc.Edit(req.ID, supplier.ID, []request.ItemInput{
		{ProductID: 9999, Quantity: 1},
	})

	var productErr *request.ProductNotFoundError
	require.ErrorAs(t, err, &productErr)
	assert.Equal(t, uint(9999), productErr.ProductID)

	// Состав не изменился
	items, err := svc.Items(req.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, chocolate.ID, items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestEdit_ForeignSupplierForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	owner := seedSupplier(t, db, "owner@example.com", "Продукты Оптом")
	other := seedSupplier(t, db, "other@example.com", "Хозтовары")
	shop := seedShop(t, db, owner.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)

	req, err := svc.Create(shop.ID, owner.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 3},
	})
	require.NoError(t, err)

	err = svc.Edit(req.ID, other.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 1},
	})
	assert.ErrorIs(t, err, request.ErrForbidden)

	// Состав не изменился
	items, err := svc.Items(req.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestEdit_CompletedRequestRejected(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)

	req, err := svc.Create(shop.ID, supplier.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 3},
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkProcessed(req.ID))

	err = svc.Edit(req.ID, supplier.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 9},
	})

	var stateErr *request.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.RequestStatusCompleted, stateErr.Status)

	// Состав остался прежним
	items, err := svc.Items(req.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestEdit_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")

	err := svc.Edit(777, supplier.ID, nil)
	assert.ErrorIs(t, err, request.ErrNotFound)
}

func TestMarkProcessedAndReopen_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)

	req, err := svc.Create(shop.ID, supplier.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 3},
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkProcessed(req.ID))
	info, err := svc.Get(req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, info.Status)

	require.NoError(t, svc.Reopen(req.ID))
	info, err = svc.Get(req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, info.Status)

	// Переходы статуса не трогают позиции
	items, err := svc.Items(req.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestSummary_UsesCurrentCatalogPrices(t *testing.T) {
	db := newTestDB(t)
	svc := request.NewService(db)

	supplier := seedSupplier(t, db, "s1@example.com", "Продукты Оптом")
	shop := seedShop(t, db, supplier.ID, "Мелочи", "ИП")
	chocolate := seedProduct(t, db, "Шоколад", 100, nil)

	req, err := svc.Create(shop.ID, supplier.ID, []request.ItemInput{
		{ProductID: chocolate.ID, Quantity: 2},
	})
	require.NoError(t, err)

	// Цена в каталоге меняется после создания заявки
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", chocolate.ID).
		Update("price", 120).Error)

	_, _, summary, err := svc.Summary(req.ID)
	require.NoError(t, err)
	assert.InDelta(t, 240, summary.TotalCost, 0.001)
}
