package request_test

import (
	"testing"

	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Одно соединение, иначе каждый коннект пула получит свою :memory: базу
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedSupplier(t *testing.T, db *gorm.DB, email, name string) models.Supplier {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleSupplier,
	}
	require.NoError(t, db.Create(&user).Error)

	supplier := models.Supplier{UserID: user.ID, Name: name}
	require.NoError(t, db.Create(&supplier).Error)
	return supplier
}

func seedShop(t *testing.T, db *gorm.DB, supplierID uint, name, businessType string) models.Shop {
	t.Helper()

	shop := models.Shop{
		SupplierID:   supplierID,
		Name:         name,
		BusinessType: businessType,
	}
	require.NoError(t, db.Create(&shop).Error)
	return shop
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, wholesalePrice *float64) models.Product {
	t.Helper()

	product := models.Product{
		Name:           name,
		Price:          price,
		WholesalePrice: wholesalePrice,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func ptr(v float64) *float64 {
	return &v
}
