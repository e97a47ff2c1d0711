package admin

import (
	"strings"

	"github.com/TechGeniusAcademy/melochy/internal/audit"
	"github.com/TechGeniusAcademy/melochy/internal/auth"
	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateSupplierRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Info     string `json:"info"`
}

type SupplierResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Info      string `json:"info"`
	CreatedAt string `json:"created_at"`
}

type ShopListItem struct {
	ID           uint   `json:"id"`
	SupplierID   uint   `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	Name         string `json:"name"`
	Info         string `json:"info"`
	BusinessType string `json:"business_type"`
}

// POST /api/admin/suppliers
// Создаёт пользователя с ролью supplier и его профиль одной транзакцией
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректные данные")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Email == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email, пароль и название обязательны")
		}

		var count int64
		database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Пользователь с таким email уже существует")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось захешировать пароль")
		}

		user := models.User{
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleSupplier,
		}
		supplier := models.Supplier{
			Name: body.Name,
			Info: strings.TrimSpace(body.Info),
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			supplier.UserID = user.ID
			return tx.Create(&supplier).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать поставщика")
		}

		if adminID, err := auth.UserID(c); err == nil {
			audit.LogAction(adminID, models.AuditActionCreate, "supplier", supplier.ID)
		}

		return c.Status(fiber.StatusCreated).JSON(SupplierResponse{
			ID:        supplier.ID,
			UserID:    user.ID,
			Email:     user.Email,
			Name:      supplier.Name,
			Info:      supplier.Info,
			CreatedAt: supplier.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

type UpdateSupplierRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Info  *string `json:"info"`
}

// PUT /api/admin/suppliers/:id
// Правит профиль поставщика и email его пользователя одной транзакцией
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Поставщик не найден")
		}

		var user models.User
		if err := database.DB.First(&user, supplier.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось загрузить пользователя")
		}

		var body UpdateSupplierRequest
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
		if body.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*body.Email))
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Email не может быть пустым")
			}

			// Уникальность без учёта самого пользователя
			var count int64
			database.DB.Model(&models.User{}).
				Where("email = ? AND id != ?", email, user.ID).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Пользователь с таким email уже существует")
			}
			user.Email = email
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&supplier).Error; err != nil {
				return err
			}
			return tx.Save(&user).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось обновить поставщика")
		}

		if adminID, err := auth.UserID(c); err == nil {
			audit.LogAction(adminID, models.AuditActionUpdate, "supplier", supplier.ID)
		}

		return c.JSON(SupplierResponse{
			ID:        supplier.ID,
			UserID:    user.ID,
			Email:     user.Email,
			Name:      supplier.Name,
			Info:      supplier.Info,
			CreatedAt: supplier.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/admin/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []SupplierResponse
		if err := database.DB.Table("suppliers").
			Select(`suppliers.id, suppliers.user_id, suppliers.name, suppliers.info,
				suppliers.created_at, users.email`).
			Joins("JOIN users ON users.id = suppliers.user_id").
			Order("suppliers.created_at DESC").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить поставщиков")
		}

		return c.JSON(rows)
	}
}

// GET /api/admin/shops
func ListShopsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []ShopListItem
		if err := database.DB.Table("shops").
			Select(`shops.id, shops.supplier_id, shops.name, shops.info, shops.business_type,
				suppliers.name AS supplier_name`).
			Joins("JOIN suppliers ON suppliers.id = shops.supplier_id").
			Order("shops.created_at DESC").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить магазины")
		}

		return c.JSON(rows)
	}
}
