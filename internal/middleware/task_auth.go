package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/team-task-api/internal/constants"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/utils"
)

// TaskFinder loads a task on behalf of a user
type TaskFinder interface {
	Get(ctx context.Context, userID, taskID uint64) (*models.Task, error)
}

// RequireTaskAccess checks if the user has access to a task
// and stores it in context. Inaccessible tasks look missing.
func RequireTaskAccess(tasks TaskFinder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := utils.ParseID(c, "id")
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		task, err := tasks.Get(c.Request.Context(), userID, taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, err.Error())
				return
			}
			apierrors.LogError(logger, c, err, "failed to load task")
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyTask, *task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskAccess
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	return task, ok
}
