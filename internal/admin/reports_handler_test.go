package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func ptr(v float64) *float64 {
	return &v
}

func TestBuildProductsReport(t *testing.T) {
	doc := buildProductsReport([]productReportRow{
		{Name: "Чай", Price: 50, WholesalePrice: ptr(40), CategoryName: "Напитки"},
		{Name: "Шоколад", Price: 100},
	})

	assert.Equal(t, "Товары", doc.Sheet)
	assert.Empty(t, doc.Title)
	assert.Equal(t, []string{"Название", "Цена", "Опт. цена", "Категория"}, doc.Columns)

	require.Len(t, doc.Rows, 2)
	assert.Equal(t, []string{"Чай", "50 ₸", "40 ₸", "Напитки"}, doc.Rows[0])
	// Без оптовой цены и категории клетки остаются пустыми
	assert.Equal(t, []string{"Шоколад", "100 ₸", "", ""}, doc.Rows[1])
}

func TestBuildShopsReport(t *testing.T) {
	shop := shopReportRow{Name: "Мелочи", SupplierName: "Продукты Оптом"}
	doc := buildShopsReport([]shopReportRow{shop})

	assert.Equal(t, "Магазины", doc.Sheet)
	assert.Equal(t, []string{"Магазин", "Поставщик", "Создан"}, doc.Columns)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "Мелочи", doc.Rows[0][0])
	assert.Equal(t, "Продукты Оптом", doc.Rows[0][1])
}

func TestExportProductsReportHandler(t *testing.T) {
	app, db := setupApp(t)
	app.Get("/reports/export/products", ExportProductsReportHandler())

	category := models.Category{Name: "Напитки"}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.Product{
		Name: "Чай", Price: 50, WholesalePrice: ptr(40), CategoryID: &category.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Шоколад", Price: 100}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports/export/products", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "products_report.xlsx")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()

	// Шапка на первой строке, данные по алфавиту со второй
	header, err := f.GetCellValue("Товары", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Название", header)

	first, err := f.GetCellValue("Товары", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Чай", first)

	second, err := f.GetCellValue("Товары", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Шоколад", second)
}

func TestExportShopsReportHandler(t *testing.T) {
	app, db := setupApp(t)
	app.Get("/reports/export/shops", ExportShopsReportHandler())

	_, supplier := seedSupplierAccount(t, db, "s1@example.com", "Продукты Оптом")
	seedShop(t, db, supplier.ID, "Мелочи")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports/export/shops", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "shops_report.xlsx")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Магазины", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Магазин", name)

	shopName, err := f.GetCellValue("Магазины", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Мелочи", shopName)

	supplierName, err := f.GetCellValue("Магазины", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Продукты Оптом", supplierName)
}
