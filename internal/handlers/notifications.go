package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/team-task-api/internal/dto"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService *services.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, logger: logger}
}

// ListNotifications returns the current user's notifications. ?unread=true keeps unread ones only.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	unreadOnly := false
	if raw := c.Query("unread"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid unread")
			return
		}
		unreadOnly = parsed
	}

	notifications, err := h.notificationService.List(c.Request.Context(), user.ID, unreadOnly)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationDTOs(notifications))
}

// MarkRead marks the notification in the path as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.markRead(c, id)
}

// MarkReadByQuery marks the notification named by ?notification_id as read
func (h *NotificationHandler) MarkReadByQuery(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("notification_id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid notification_id")
		return
	}
	h.markRead(c, id)
}

func (h *NotificationHandler) markRead(c *gin.Context, id uint64) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), user.ID, id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification marked as read",
		"id":      notification.ID,
	})
}
