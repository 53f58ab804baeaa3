package services

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/auth"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/testutil"
)

type serviceEnv struct {
	db            *gorm.DB
	revocations   *auth.MemoryRevocationStore
	auth          *AuthService
	users         *UserService
	teams         *TeamService
	projects      *ProjectService
	tasks         *TaskService
	comments      *CommentService
	notifications *NotificationService
	reports       *ReportService
}

func setupServiceEnv(t *testing.T) serviceEnv {
	t.Helper()

	db := testutil.NewDB(t)

	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	revocations := auth.NewMemoryRevocationStore()
	notifications := NewNotificationService(repository.NewNotificationRepository(db), nil, zap.NewNop())
	users := NewUserService(userRepo)
	projects := NewProjectService(projectRepo, teamRepo, userRepo)

	return serviceEnv{
		db:            db,
		revocations:   revocations,
		auth:          NewAuthService(userRepo, auth.NewTokenService("test-secret", time.Hour), revocations),
		users:         users,
		teams:         NewTeamService(teamRepo, userRepo),
		projects:      projects,
		tasks:         NewTaskService(taskRepo, projectRepo, userRepo),
		comments:      NewCommentService(repository.NewCommentRepository(db), notifications, zap.NewNop()),
		notifications: notifications,
		reports:       NewReportService(repository.NewReportRepository(db), projects, users),
	}
}
