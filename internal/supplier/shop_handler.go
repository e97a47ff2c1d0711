package supplier

import (
	"strings"

	"github.com/TechGeniusAcademy/melochy/internal/audit"
	"github.com/TechGeniusAcademy/melochy/internal/auth"
	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ShopResponse struct {
	ID           uint   `json:"id"`
	SupplierID   uint   `json:"supplier_id"`
	Name         string `json:"name"`
	Info         string `json:"info"`
	BusinessType string `json:"business_type"`
	CreatedAt    string `json:"created_at"`
}

type CreateShopRequest struct {
	Name         string `json:"name"`
	Info         string `json:"info"`
	BusinessType string `json:"business_type"`
}

type UpdateShopRequest struct {
	Name         *string `json:"name"`
	Info         *string `json:"info"`
	BusinessType *string `json:"business_type"`
}

func toShopResponse(shop models.Shop) ShopResponse {
	return ShopResponse{
		ID:           shop.ID,
		SupplierID:   shop.SupplierID,
		Name:         shop.Name,
		Info:         shop.Info,
		BusinessType: shop.BusinessType,
		CreatedAt:    shop.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// findOwnShop загружает магазин и проверяет, что он принадлежит поставщику
func findOwnShop(c *fiber.Ctx) (*models.Shop, error) {
	supplierID, err := auth.SupplierID(c)
	if err != nil {
		return nil, err
	}

	var shop models.Shop
	if err := database.DB.First(&shop, "id = ? AND supplier_id = ?", c.Params("id"), supplierID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Магазин не найден")
	}
	return &shop, nil
}

// GET /api/supplier/shops
func ListShopsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplierID, err := auth.SupplierID(c)
		if err != nil {
			return err
		}

		var shops []models.Shop
		if err := database.DB.Where("supplier_id = ?", supplierID).
			Order("created_at DESC").
			Find(&shops).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить магазины")
		}

		res := make([]ShopResponse, 0, len(shops))
		for _, shop := range shops {
			res = append(res, toShopResponse(shop))
		}
		return c.JSON(res)
	}
}

// POST /api/supplier/shops
func CreateShopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		supplierID, err := auth.SupplierID(c)
		if err != nil {
			return err
		}

		var body CreateShopRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректные данные")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Название магазина не может быть пустым")
		}

		shop := models.Shop{
			SupplierID:   supplierID,
			Name:         body.Name,
			Info:         strings.TrimSpace(body.Info),
			BusinessType: strings.TrimSpace(body.BusinessType),
		}

		if err := database.DB.Create(&shop).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать магазин")
		}

		audit.LogAction(userID, models.AuditActionCreate, "shop", shop.ID)

		return c.Status(fiber.StatusCreated).JSON(toShopResponse(shop))
	}
}

// GET /api/supplier/shops/:id
func GetShopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shop, err := findOwnShop(c)
		if err != nil {
			return err
		}
		return c.JSON(toShopResponse(*shop))
	}
}

// PUT /api/supplier/shops/:id
func UpdateShopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		shop, err := findOwnShop(c)
		if err != nil {
			return err
		}

		var body UpdateShopRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректные данные")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Название магазина не может быть пустым")
			}
			shop.Name = name
		}
		if body.Info != nil {
			shop.Info = strings.TrimSpace(*body.Info)
		}
		if body.BusinessType != nil {
			shop.BusinessType = strings.TrimSpace(*body.BusinessType)
		}

		if err := database.DB.Save(shop).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось обновить магазин")
		}

		audit.LogAction(userID, models.AuditActionUpdate, "shop", shop.ID)

		return c.JSON(toShopResponse(*shop))
	}
}

// DELETE /api/supplier/shops/:id
func DeleteShopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		shop, err := findOwnShop(c)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(shop).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить магазин")
		}

		audit.LogAction(userID, models.AuditActionDelete, "shop", shop.ID)

		return c.JSON(fiber.Map{"message": "Магазин удален"})
	}
}
