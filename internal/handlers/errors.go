package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/team-task-api/internal/constants"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/middleware"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/utils"
)

// respondServiceError maps a service error to its HTTP response.
// Unknown errors are logged and reported as 500.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrPasswordTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at most %d bytes", constants.MaxPasswordLength))
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidTeamName),
		errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrCommentEmpty),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrCannotDeleteSelf):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "Incorrect email or password")
	case errors.Is(err, services.ErrInactiveAccount):
		apierrors.InactiveAccount(c)

	case errors.Is(err, services.ErrNotTeamManager),
		errors.Is(err, services.ErrNotProjectManager),
		errors.Is(err, services.ErrProjectAccessDenied),
		errors.Is(err, services.ErrNotTeamMember):
		apierrors.Forbidden(c, err.Error())

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrTeamMemberNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, apierrors.ErrCodeDuplicateEmail, err.Error())
	case errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.Conflict(c, apierrors.ErrCodeDuplicateMembership, err.Error())
	case errors.Is(err, services.ErrProjectHasNoTeam),
		errors.Is(err, services.ErrUserManagesResources):
		apierrors.Conflict(c, apierrors.ErrCodeConflict, err.Error())

	default:
		apierrors.LogError(logger, c, err, "request failed")
		apierrors.InternalError(c, "")
	}
}

// currentUser reads the authenticated user or writes a 401.
func currentUser(c *gin.Context) (models.User, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return user, ok
}

// currentTask reads the task loaded by RequireTaskAccess or writes a 500.
func currentTask(c *gin.Context) (models.Task, bool) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
	}
	return task, ok
}

// pathID parses a positive integer path parameter or writes a 400.
func pathID(c *gin.Context, param string) (uint64, bool) {
	id, err := utils.ParseID(c, param)
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", param))
		return 0, false
	}
	return id, true
}
