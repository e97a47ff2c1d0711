package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp готовит приложение с чистой базой в памяти.
// Глобальный database.DB подменяется на тестовую базу.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db

	return fiber.New(), db
}

func seedSupplierAccount(t *testing.T, db *gorm.DB, email, name string) (models.User, models.Supplier) {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleSupplier,
	}
	require.NoError(t, db.Create(&user).Error)

	supplier := models.Supplier{UserID: user.ID, Name: name}
	require.NoError(t, db.Create(&supplier).Error)
	return user, supplier
}

func seedShop(t *testing.T, db *gorm.DB, supplierID uint, name string) models.Shop {
	t.Helper()

	shop := models.Shop{SupplierID: supplierID, Name: name}
	require.NoError(t, db.Create(&shop).Error)
	return shop
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
