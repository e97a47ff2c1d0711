package admin

import (
	"strings"

	"github.com/TechGeniusAcademy/melochy/internal/audit"
	"github.com/TechGeniusAcademy/melochy/internal/auth"
	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateShopRequest struct {
	Name *string `json:"name"`
	Info *string `json:"info"`
}

// PUT /api/admin/shops/:id
// Админ правит любой магазин, принадлежность не меняется
func UpdateShopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var shop models.Shop
		if err := database.DB.First(&shop, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Магазин не найден")
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

		if err := database.DB.Save(&shop).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось обновить магазин")
		}

		if adminID, err := auth.UserID(c); err == nil {
			audit.LogAction(adminID, models.AuditActionUpdate, "shop", shop.ID)
		}

		return c.JSON(fiber.Map{"message": "Магазин успешно обновлен"})
	}
}

// DELETE /api/admin/shops/:id
// Магазин с заявками удалить нельзя, сначала нужно разобрать заявки
func DeleteShopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var shop models.Shop
		if err := database.DB.First(&shop, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Магазин не найден")
		}

		var requestsCount int64
		database.DB.Model(&models.Request{}).
			Where("shop_id = ?", shop.ID).
			Count(&requestsCount)
		if requestsCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Нельзя удалить магазин, у которого есть заявки")
		}

		if err := database.DB.Delete(&shop).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить магазин")
		}

		if adminID, err := auth.UserID(c); err == nil {
			audit.LogAction(adminID, models.AuditActionDelete, "shop", shop.ID)
		}

		return c.JSON(fiber.Map{"message": "Магазин успешно удален"})
	}
}
