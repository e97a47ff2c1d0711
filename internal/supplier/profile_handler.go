package supplier

import (
	"strings"

	"github.com/TechGeniusAcademy/melochy/internal/audit"
	"github.com/TechGeniusAcademy/melochy/internal/auth"
	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProfileResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Info      string `json:"info"`
	CreatedAt string `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name"`
	Info *string `json:"info"`
}

// GET /api/supplier/profile
// Профиль поставщика со статистикой для личного кабинета
func GetProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplierID, err := auth.SupplierID(c)
		if err != nil {
			return err
		}

		var supplier models.Supplier
		if err := database.DB.First(&supplier, supplierID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Профиль поставщика не найден")
		}

		var shopsCount, productsCount, pendingRequests int64
		database.DB.Model(&models.Shop{}).Where("supplier_id = ?", supplierID).Count(&shopsCount)
		database.DB.Model(&models.Product{}).Count(&productsCount)
		database.DB.Model(&models.Request{}).
			Where("supplier_id = ? AND status = ?", supplierID, models.RequestStatusPending).
			Count(&pendingRequests)

		return c.JSON(fiber.Map{
			"supplier": ProfileResponse{
				ID:        supplier.ID,
				Name:      supplier.Name,
				Info:      supplier.Info,
				CreatedAt: supplier.CreatedAt.Format("2006-01-02 15:04:05"),
			},
			"stats": fiber.Map{
				"shops_count":      shopsCount,
				"products_count":   productsCount,
				"pending_requests": pendingRequests,
			},
		})
	}
}

// PUT /api/supplier/profile
func UpdateProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		supplierID, err := auth.SupplierID(c)
		if err != nil {
			return err
		}

		var supplier models.Supplier
		if err := database.DB.First(&supplier, supplierID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Профиль поставщика не найден")
		}

		var body UpdateProfileRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректные данные")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Название не может быть пустым")
			}
			supplier.Name = name
		}
		if body.Info != nil {
			supplier.Info = strings.TrimSpace(*body.Info)
		}

		if err := database.DB.Save(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось обновить профиль")
		}

		audit.LogAction(userID, models.AuditActionUpdate, "supplier", supplier.ID)

		return c.JSON(ProfileResponse{
			ID:        supplier.ID,
			Name:      supplier.Name,
			Info:      supplier.Info,
			CreatedAt: supplier.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}
