package database

import (
	"log"

	"github.com/TechGeniusAcademy/melochy/internal/config"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Ошибка миграции: %v", err)
	}

	log.Println("Подключение к базе данных установлено, миграция выполнена")
}

// Migrate выполняет AutoMigrate всех моделей. Вынесено отдельно,
// чтобы тесты могли мигрировать свою базу.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Shop{},
		&models.Category{},
		&models.Product{},
		&models.Request{},
		&models.RequestItem{},
		&models.AuditLog{},
	)
}
