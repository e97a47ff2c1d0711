package audit

import (
	"fmt"

	"github.com/TechGeniusAcademy/melochy/internal/database"
	"github.com/TechGeniusAcademy/melochy/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID        uint               `json:"id"`
	CreatedAt string             `json:"created_at"`
	UserID    uint               `json:"user_id"`
	Entity    string             `json:"entity"`
	EntityID  uint               `json:"entity_id"`
	Action    models.AuditAction `json:"action"`
}

// GET /api/admin/audit-logs?entity=request&entity_id=1&user_id=2
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entity := c.Query("entity")
		entityIDStr := c.Query("entity_id")
		userIDStr := c.Query("user_id")

		dbq := database.DB.Model(&models.AuditLog{})

		if entity != "" {
			dbq = dbq.Where("entity = ?", entity)
		}
		if entityIDStr != "" {
			var eid uint
			if _, err := fmt.Sscan(entityIDStr, &eid); err == nil && eid > 0 {
				dbq = dbq.Where("entity_id = ?", eid)
			}
		}
		if userIDStr != "" {
			var uid uint
			if _, err := fmt.Sscan(userIDStr, &uid); err == nil && uid > 0 {
				dbq = dbq.Where("user_id = ?", uid)
			}
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить журнал")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, entry := range logs {
			resp = append(resp, AuditLogResponse{
				ID:        entry.ID,
				CreatedAt: entry.CreatedAt.Format("2006-01-02 15:04:05"),
				UserID:    entry.UserID,
				Entity:    entry.Entity,
				EntityID:  entry.EntityID,
				Action:    entry.Action,
			})
		}

		return c.JSON(resp)
	}
}
