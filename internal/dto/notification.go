package dto

import (
	"time"

	"github.com/yukikurage/team-task-api/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ToNotificationDTOs converts a slice of notifications
func ToNotificationDTOs(notifications []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		out[i] = NotificationDTO{
			ID:        n.ID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}
