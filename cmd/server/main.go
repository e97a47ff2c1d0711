package main

import (
	"log"
	"strings"

	"github.com/TechGeniusAcademy/melochy/internal/admin"
	"github.com/TechGeniusAcademy/melochy/internal/audit"
	"github.com/TechGeniusAcademy/melochy/internal/auth"
	"github.com/TechGeniusAcademy/melochy/internal/catalog"
	"github.com/TechGeniusAcademy/melochy/internal/config"
	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"
	"github.com/TechGeniusAcademy/melochy/internal/request"
	"github.com/TechGeniusAcademy/melochy/internal/supplier"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	requestSvc := request.NewService(database.DB)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Непредвиденная ошибка:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Непредвиденная ошибка сервера",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Публичные маршруты
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Всё остальное под JWT
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/change-password", auth.ChangePasswordHandler())

	// Каталог виден всем авторизованным
	protected.Get("/categories", catalog.ListCategoriesHandler())
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Get("/products/:id", catalog.GetProductHandler())

	// Маршруты администратора
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Get("/dashboard", admin.DashboardHandler())

	// Поставщики и магазины
	adminRoutes.Post("/suppliers", admin.CreateSupplierHandler())
	adminRoutes.Get("/suppliers", admin.ListSuppliersHandler())
	adminRoutes.Put("/suppliers/:id", admin.UpdateSupplierHandler())
	adminRoutes.Get("/shops", admin.ListShopsHandler())
	adminRoutes.Put("/shops/:id", admin.UpdateShopHandler())
	adminRoutes.Delete("/shops/:id", admin.DeleteShopHandler())

	// Каталог
	adminRoutes.Post("/categories", catalog.CreateCategoryHandler())
	adminRoutes.Put("/categories/:id", catalog.UpdateCategoryHandler())
	adminRoutes.Delete("/categories/:id", catalog.DeleteCategoryHandler())
	adminRoutes.Post("/products", catalog.CreateProductHandler())
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())

	// Заявки
	adminRoutes.Get("/requests", request.ListRequestsHandler(requestSvc))
	adminRoutes.Get("/requests/:id", request.RequestDetailHandler(requestSvc))
	adminRoutes.Get("/requests/:id/export", request.ExportRequestHandler(requestSvc))
	adminRoutes.Post("/requests/:id/mark-processed", request.MarkProcessedHandler(requestSvc))
	adminRoutes.Post("/requests/:id/reopen", request.ReopenHandler(requestSvc))
	adminRoutes.Delete("/requests/:id", request.DeleteRequestHandler(requestSvc))

	// Отчёты
	adminRoutes.Get("/reports/export/products", admin.ExportProductsReportHandler())
	adminRoutes.Get("/reports/export/shops", admin.ExportShopsReportHandler())

	// Журнал действий
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Маршруты поставщика
	supplierRoutes := protected.Group("/supplier")
	supplierRoutes.Use(auth.RequireRole(models.RoleSupplier))

	supplierRoutes.Get("/profile", supplier.GetProfileHandler())
	supplierRoutes.Put("/profile", supplier.UpdateProfileHandler())

	supplierRoutes.Get("/shops", supplier.ListShopsHandler())
	supplierRoutes.Post("/shops", supplier.CreateShopHandler())
	supplierRoutes.Get("/shops/:id", supplier.GetShopHandler())
	supplierRoutes.Put("/shops/:id", supplier.UpdateShopHandler())
	supplierRoutes.Delete("/shops/:id", supplier.DeleteShopHandler())

	supplierRoutes.Get("/shops/:id/requests", request.ListShopRequestsHandler(requestSvc))
	supplierRoutes.Post("/shops/:id/requests", request.CreateRequestHandler(requestSvc))
	supplierRoutes.Get("/requests/:id", request.ViewRequestHandler(requestSvc))
	supplierRoutes.Put("/requests/:id", request.EditRequestHandler(requestSvc))

	log.Println("Сервер запущен на порту:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
