package admin

import (
	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/dashboard
// Счётчики для главной страницы админки
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var usersCount, suppliersCount, shopsCount, productsCount, pendingRequests int64

		database.DB.Model(&models.User{}).Count(&usersCount)
		database.DB.Model(&models.Supplier{}).Count(&suppliersCount)
		database.DB.Model(&models.Shop{}).Count(&shopsCount)
		database.DB.Model(&models.Product{}).Count(&productsCount)
		database.DB.Model(&models.Request{}).
			Where("status = ?", models.RequestStatusPending).
			Count(&pendingRequests)

		return c.JSON(fiber.Map{
			"users_count":      usersCount,
			"suppliers_count":  suppliersCount,
			"shops_count":      shopsCount,
			"products_count":   productsCount,
			"pending_requests": pendingRequests,
		})
	}
}
