package audit

import (
	"fmt"
	"log"

	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"
)

func WriteLog(userID uint, action models.AuditAction, entity string, entityID uint) error {
	entry := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("не удалось записать audit log: %w", err)
	}

	return nil
}

// LogAction пишет запись в журнал, не прерывая основную операцию.
// Сбой журнала не должен маскировать результат самой операции.
func LogAction(userID uint, action models.AuditAction, entity string, entityID uint) {
	if err := WriteLog(userID, action, entity, entityID); err != nil {
		log.Printf("audit: %v", err)
	}
}
