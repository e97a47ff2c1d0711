package catalog

import (
	"strings"

	"github.com/TechGeniusAcademy/melochy/internal/audit"
	"github.com/TechGeniusAcademy/melochy/internal/auth"
	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID             uint     `json:"id"`
	CategoryID     *uint    `json:"category_id"`
	CategoryName   string   `json:"category_name,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	WholesalePrice *float64 `json:"wholesale_price"`
	ImageURL       string   `json:"image_url"`
	CreatedAt      string   `json:"created_at"`
}

type CreateProductRequest struct {
	CategoryID     *uint    `json:"category_id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	WholesalePrice *float64 `json:"wholesale_price"` // опционально
	ImageURL       string   `json:"image_url"`
}

type UpdateProductRequest struct {
	CategoryID     *uint    `json:"category_id"`
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price"`
	WholesalePrice *float64 `json:"wholesale_price"`
	ImageURL       *string  `json:"image_url"`
}

func toProductResponse(p models.Product) ProductResponse {
	res := ProductResponse{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		WholesalePrice: p.WholesalePrice,
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if p.Category != nil {
		res.CategoryName = p.Category.Name
	}
	return res
}

// GET /api/products?category_id=1 (все авторизованные пользователи)
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{}).Preload("Category")

		if categoryID := c.QueryInt("category_id"); categoryID > 0 {
			dbq = dbq.Where("category_id = ?", categoryID)
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить товары")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.Preload("Category").First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Товар не найден")
		}

		return c.JSON(toProductResponse(p))
	}
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректные данные")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Название товара не может быть пустым")
		}
		if body.Price <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Цена должна быть положительной")
		}

		p := models.Product{
			CategoryID:     body.CategoryID,
			Name:           body.Name,
			Description:    strings.TrimSpace(body.Description),
			Price:          body.Price,
			WholesalePrice: body.WholesalePrice,
			ImageURL:       strings.TrimSpace(body.ImageURL),
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать товар")
		}

		if userID, err := auth.UserID(c); err == nil {
			audit.LogAction(userID, models.AuditActionCreate, "product", p.ID)
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Товар не найден")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректные данные")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Название товара не может быть пустым")
			}
			p.Name = name
		}
		if body.Description != nil {
			p.Description = strings.TrimSpace(*body.Description)
		}
		if body.Price != nil {
			if *body.Price <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Цена должна быть положительной")
			}
			p.Price = *body.Price
		}
		if body.WholesalePrice != nil {
			p.WholesalePrice = body.WholesalePrice
		}
		if body.CategoryID != nil {
			p.CategoryID = body.CategoryID
		}
		if body.ImageURL != nil {
			p.ImageURL = strings.TrimSpace(*body.ImageURL)
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось обновить товар")
		}

		if userID, err := auth.UserID(c); err == nil {
			audit.LogAction(userID, models.AuditActionUpdate, "product", p.ID)
		}

		return c.JSON(toProductResponse(p))
	}
}

// DELETE /api/admin/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Товар не найден")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить товар")
		}

		if userID, err := auth.UserID(c); err == nil {
			audit.LogAction(userID, models.AuditActionDelete, "product", p.ID)
		}

		return c.JSON(fiber.Map{"message": "Товар удален"})
	}
}
