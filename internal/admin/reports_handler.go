package admin

import (
	"fmt"
	"time"

	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/request"

	"github.com/gofiber/fiber/v2"
)

type productReportRow struct {
	Name           string
	Price          float64
	WholesalePrice *float64
	CategoryName   string
}

type shopReportRow struct {
	Name         string
	SupplierName string
	CreatedAt    time.Time
}

func buildProductsReport(rows []productReportRow) *request.TableDocument {
	doc := &request.TableDocument{
		Sheet:   "Товары",
		Columns: []string{"Название", "Цена", "Опт. цена", "Категория"},
	}
	for _, r := range rows {
		wholesale := ""
		if r.WholesalePrice != nil {
			wholesale = fmt.Sprintf("%.0f ₸", *r.WholesalePrice)
		}
		doc.Rows = append(doc.Rows, []string{
			r.Name,
			fmt.Sprintf("%.0f ₸", r.Price),
			wholesale,
			r.CategoryName,
		})
	}
	return doc
}

func buildShopsReport(rows []shopReportRow) *request.TableDocument {
	doc := &request.TableDocument{
		Sheet:   "Магазины",
		Columns: []string{"Магазин", "Поставщик", "Создан"},
	}
	for _, r := range rows {
		doc.Rows = append(doc.Rows, []string{
			r.Name,
			r.SupplierName,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return doc
}

func sendXLSX(c *fiber.Ctx, doc *request.TableDocument, filename string) error {
	f, err := request.WriteXLSX(doc)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сформировать файл")
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сформировать файл")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Send(buf.Bytes())
}

// GET /api/admin/reports/export/products
// Список всего каталога с категориями, по алфавиту
func ExportProductsReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []productReportRow
		if err := database.DB.Table("products").
			Select(`products.name, products.price, products.wholesale_price,
				categories.name AS category_name`).
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Order("products.name").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить товары")
		}

		return sendXLSX(c, buildProductsReport(rows), "products_report.xlsx")
	}
}

// GET /api/admin/reports/export/shops
// Список магазинов с их поставщиками
func ExportShopsReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []shopReportRow
		if err := database.DB.Table("shops").
			Select(`shops.name, shops.created_at, suppliers.name AS supplier_name`).
			Joins("LEFT JOIN suppliers ON suppliers.id = shops.supplier_id").
			Order("shops.name").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить магазины")
		}

		return sendXLSX(c, buildShopsReport(rows), "shops_report.xlsx")
	}
}
