package request

import (
	"errors"
	"strconv"
	"time"

	"github.com/TechGeniusAcademy/melochy/internal/audit"
	"github.com/TechGeniusAcademy/melochy/internal/auth"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type SubmitRequestBody struct {
	Items []ItemInput `json:"items"`
}

type RequestResponse struct {
	ID           uint                 `json:"id"`
	ShopID       uint                 `json:"shop_id"`
	SupplierID   uint                 `json:"supplier_id"`
	Status       models.RequestStatus `json:"status"`
	ShopName     string               `json:"shop_name,omitempty"`
	SupplierName string               `json:"supplier_name,omitempty"`
	BusinessType string               `json:"business_type,omitempty"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
}

type RequestListItem struct {
	ID           uint                 `json:"id"`
	ShopID       uint                 `json:"shop_id"`
	SupplierID   uint                 `json:"supplier_id"`
	Status       models.RequestStatus `json:"status"`
	ShopName     string               `json:"shop_name,omitempty"`
	SupplierName string               `json:"supplier_name,omitempty"`
	ItemsCount   int                  `json:"items_count"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type ItemResponse struct {
	ProductID          uint     `json:"product_id"`
	ProductName        string   `json:"product_name"`
	ProductDescription string   `json:"product_description"`
	Price              float64  `json:"price"`
	WholesalePrice     *float64 `json:"wholesale_price"`
	Quantity           int      `json:"quantity"`
	LineTotal          float64  `json:"line_total"`
	Percentage         float64  `json:"percentage"`
}

type SummaryResponse struct {
	TotalCost          float64 `json:"total_cost"`
	TotalQuantity      int     `json:"total_quantity"`
	TotalRetailCost    float64 `json:"total_retail_cost"`
	TotalWholesaleCost float64 `json:"total_wholesale_cost"`
	ItemsCount         int     `json:"items_count"`
	AvgPricePerItem    float64 `json:"avg_price_per_item"`
	AvgPricePerUnit    float64 `json:"avg_price_per_unit"`
}

func toRequestResponse(info *Info) RequestResponse {
	return RequestResponse{
		ID:           info.ID,
		ShopID:       info.ShopID,
		SupplierID:   info.SupplierID,
		Status:       info.Status,
		ShopName:     info.ShopName,
		SupplierName: info.SupplierName,
		BusinessType: info.BusinessType,
		CreatedAt:    info.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    info.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toItemResponses(items []ItemRow, summary Summary) []ItemResponse {
	resp := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		lineTotal := it.Price * float64(it.Quantity)
		resp = append(resp, ItemResponse{
			ProductID:          it.ProductID,
			ProductName:        it.ProductName,
			ProductDescription: it.ProductDescription,
			Price:              it.Price,
			WholesalePrice:     it.WholesalePrice,
			Quantity:           it.Quantity,
			LineTotal:          lineTotal,
			Percentage:         ItemPercentage(lineTotal, summary.TotalCost),
		})
	}
	return resp
}

func toSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		TotalCost:          s.TotalCost,
		TotalQuantity:      s.TotalQuantity,
		TotalRetailCost:    s.TotalRetailCost,
		TotalWholesaleCost: s.TotalWholesaleCost,
		ItemsCount:         s.ItemsCount,
		AvgPricePerItem:    s.AvgPricePerItem,
		AvgPricePerUnit:    s.AvgPricePerUnit,
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || raw == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	return uint(raw), nil
}

// toFiberError переводит доменные ошибки жизненного цикла в HTTP-статусы
func toFiberError(err error) error {
	var stateErr *InvalidStateError
	var validationErr *ValidationError
	var productErr *ProductNotFoundError
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.As(err, &productErr):
		return fiber.NewError(fiber.StatusNotFound, productErr.Error())
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.As(err, &stateErr):
		return fiber.NewError(fiber.StatusConflict, stateErr.Error())
	case errors.As(err, &validationErr):
		return fiber.NewError(fiber.StatusBadRequest, validationErr.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось выполнить операцию")
	}
}

func validateItems(items []ItemInput) error {
	for _, it := range items {
		if it.ProductID == 0 {
			return &ValidationError{Message: "Некорректная ссылка на товар"}
		}
	}
	return nil
}

// -------------------------
// Поставщик
// -------------------------

// GET /api/supplier/shops/:id/requests
func ListShopRequestsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplierID, err := auth.SupplierID(c)
		if err != nil {
			return err
		}
		shopID, err := parseIDParam(c, "id")
		if err != nil {
			return err
		}

		var shop models.Shop
		if err := svc.db.First(&shop, "id = ? AND supplier_id = ?", shopID, supplierID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Магазин не найден")
		}

		var rows []RequestListItem
		if err := svc.db.Table("requests").
			Select(`requests.id, requests.shop_id, requests.supplier_id, requests.status,
				requests.created_at, requests.updated_at,
				COUNT(request_items.id) AS items_count`).
			Joins("LEFT JOIN request_items ON request_items.request_id = requests.id").
			Where("requests.shop_id = ?", shopID).
			Group("requests.id").
			Order("requests.created_at DESC").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить заявки")
		}

		return c.JSON(rows)
	}
}

// POST /api/supplier/shops/:id/requests
func CreateRequestHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		supplierID, err := auth.SupplierID(c)
		if err != nil {
			return err
		}
		shopID, err := parseIDParam(c, "id")
		if err != nil {
			return err
		}

		var body SubmitRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректное тело запроса")
		}
		if err := validateItems(body.Items); err != nil {
			return toFiberError(err)
		}

		req, err := svc.Create(shopID, supplierID, body.Items)
		if err != nil {
			return toFiberError(err)
		}

		audit.LogAction(userID, models.AuditActionCreate, "request", req.ID)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      req.ID,
			"status":  req.Status,
			"message": "Заявка успешно создана",
		})
	}
}

// GET /api/supplier/requests/:id
func ViewRequestHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplierID, err := auth.SupplierID(c)
		if err != nil {
			return err
		}
		requestID, err := parseIDParam(c, "id")
		if err != nil {
			return err
		}

		info, items, summary, err := svc.Summary(requestID)
		if err != nil {
			return toFiberError(err)
		}
		if info.SupplierID != supplierID {
			return toFiberError(ErrForbidden)
		}

		return c.JSON(fiber.Map{
			"request": toRequestResponse(info),
			"items":   toItemResponses(items, summary),
			"summary": toSummaryResponse(summary),
		})
	}
}

// PUT /api/supplier/requests/:id
func EditRequestHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		supplierID, err := auth.SupplierID(c)
		if err != nil {
			return err
		}
		requestID, err := parseIDParam(c, "id")
		if err != nil {
			return err
		}

		var body SubmitRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректное тело запроса")
		}
		if err := validateItems(body.Items); err != nil {
			return toFiberError(err)
		}

		if err := svc.Edit(requestID, supplierID, body.Items); err != nil {
			return toFiberError(err)
		}

		audit.LogAction(userID, models.AuditActionUpdate, "request", requestID)

		return c.JSON(fiber.Map{"message": "Заявка успешно обновлена"})
	}
}

// -------------------------
// Админ
// -------------------------

// GET /api/admin/requests
func ListRequestsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []RequestListItem
		if err := svc.db.Table("requests").
			Select(`requests.id, requests.shop_id, requests.supplier_id, requests.status,
				requests.created_at, requests.updated_at,
				shops.name AS shop_name, suppliers.name AS supplier_name,
				COUNT(request_items.id) AS items_count`).
			Joins("JOIN shops ON shops.id = requests.shop_id").
			Joins("JOIN suppliers ON suppliers.id = requests.supplier_id").
			Joins("LEFT JOIN request_items ON request_items.request_id = requests.id").
			Group("requests.id, shops.name, suppliers.name").
			Order("requests.created_at DESC").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить заявки")
		}

		return c.JSON(rows)
	}
}

// GET /api/admin/requests/:id
func RequestDetailHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, err := parseIDParam(c, "id")
		if err != nil {
			return err
		}

		info, items, summary, err := svc.Summary(requestID)
		if err != nil {
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"request": toRequestResponse(info),
			"items":   toItemResponses(items, summary),
			"summary": toSummaryResponse(summary),
		})
	}
}

// GET /api/admin/requests/:id/export
func ExportRequestHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, err := parseIDParam(c, "id")
		if err != nil {
			return err
		}

		info, items, summary, err := svc.Summary(requestID)
		if err != nil {
			return toFiberError(err)
		}

		doc := BuildReport(info, items, summary)
		f, err := WriteXLSX(doc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сформировать файл")
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сформировать файл")
		}

		// ASCII-имя файла, чтобы не возиться с кодировкой заголовка
		filename := "Request_" + strconv.FormatUint(uint64(requestID), 10) +
			"_" + time.Now().Format("20060102") + ".xlsx"

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
		return c.Send(buf.Bytes())
	}
}

// POST /api/admin/requests/:id/mark-processed
func MarkProcessedHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		requestID, err := parseIDParam(c, "id")
		if err != nil {
			return err
		}

		if err := svc.MarkProcessed(requestID); err != nil {
			return toFiberError(err)
		}

		audit.LogAction(userID, models.AuditActionUpdate, "request", requestID)

		return c.JSON(fiber.Map{"message": "Заявка отмечена как обработанная"})
	}
}

// POST /api/admin/requests/:id/reopen
func ReopenHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		requestID, err := parseIDParam(c, "id")
		if err != nil {
			return err
		}

		if err := svc.Reopen(requestID); err != nil {
			return toFiberError(err)
		}

		audit.LogAction(userID, models.AuditActionUpdate, "request", requestID)

		return c.JSON(fiber.Map{"message": "Заявка возвращена в работу для редактирования"})
	}
}

// DELETE /api/admin/requests/:id
func DeleteRequestHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		requestID, err := parseIDParam(c, "id")
		if err != nil {
			return err
		}

		if err := svc.Delete(requestID); err != nil {
			return toFiberError(err)
		}

		audit.LogAction(userID, models.AuditActionDelete, "request", requestID)

		return c.JSON(fiber.Map{"message": "Заявка успешно удалена"})
	}
}
