package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/constants"
	"github.com/yukikurage/team-task-api/internal/messaging"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationEvent is published for every stored notification.
type NotificationEvent struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	TaskID    uint64    `json:"task_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationService stores notifications and fans them out.
type NotificationService struct {
	repo      repository.NotificationRepository
	publisher messaging.Publisher
	logger    *zap.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository, publisher messaging.Publisher, logger *zap.Logger) *NotificationService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// NotifyComment tells the task's assignee about a comment written by someone else.
// It returns nil without a notification when the task is unassigned or the author is the assignee.
func (s *NotificationService) NotifyComment(ctx context.Context, task models.Task, authorID uint64) (*models.Notification, error) {
	if task.AssignedTo == nil || *task.AssignedTo == authorID {
		return nil, nil
	}

	notification := &models.Notification{
		UserID:  *task.AssignedTo,
		Message: fmt.Sprintf(constants.CommentNotificationFormat, task.Title),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	event := NotificationEvent{
		ID:        notification.ID,
		UserID:    notification.UserID,
		TaskID:    task.ID,
		Message:   notification.Message,
		CreatedAt: notification.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, constants.NotificationsChannel, event); err != nil {
		s.logger.Warn("failed to publish notification event",
			zap.Error(err),
			zap.Uint64("notification_id", notification.ID),
		)
	}

	return notification, nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint64, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags one of the user's own notifications as read.
// Notifications that belong to someone else are reported as not found.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint64) (*models.Notification, error) {
	notification, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	if notification.UserID != userID {
		return nil, ErrNotificationNotFound
	}

	if err := s.repo.MarkRead(ctx, notificationID); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	notification.IsRead = true
	return notification, nil
}
