package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
)

var ErrCommentEmpty = errors.New("comment text cannot be empty")

// CommentService handles comments on tasks.
// Callers pass tasks the author has already been granted access to.
type CommentService struct {
	commentRepo   repository.CommentRepository
	notifications *NotificationService
	logger        *zap.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, notifications *NotificationService, logger *zap.Logger) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		notifications: notifications,
		logger:        logger,
	}
}

// Create stores the comment, then notifies the assignee. A failed notification is
// logged and never undoes the comment.
func (s *CommentService) Create(ctx context.Context, task models.Task, author models.User, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentEmpty
	}

	comment := &models.Comment{
		Text:   text,
		TaskID: task.ID,
		UserID: &author.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.User = &author

	if _, err := s.notifications.NotifyComment(ctx, task, author.ID); err != nil {
		s.logger.Error("failed to notify assignee about comment",
			zap.Error(err),
			zap.Uint64("task_id", task.ID),
			zap.Uint64("comment_id", comment.ID),
		)
	}

	return comment, nil
}

// List returns the task's comments, newest first.
func (s *CommentService) List(ctx context.Context, taskID uint64) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
