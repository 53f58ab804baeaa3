package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/database"
	"github.com/yukikurage/team-task-api/internal/models"
)

// NewDB returns a migrated in-memory SQLite database closed at test cleanup.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig("error"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection to :memory: would get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, zap.NewNop()))
	return db
}

// CreateUser inserts an active user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:          email,
		FullName:       email,
		HashedPassword: string(hash),
		IsActive:       true,
		Role:           models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTeam inserts a team managed by managerID with the given members.
func CreateTeam(t *testing.T, db *gorm.DB, name string, managerID uint64, memberIDs ...uint64) *models.Team {
	t.Helper()

	team := &models.Team{Name: name, ManagerID: managerID}
	require.NoError(t, db.Create(team).Error)
	for _, id := range memberIDs {
		require.NoError(t, db.Create(&models.TeamMember{TeamID: team.ID, UserID: id, JoinedAt: time.Now()}).Error)
	}
	return team
}

// CreateProject inserts a project, optionally under a team.
func CreateProject(t *testing.T, db *gorm.DB, name string, teamID *uint64, managerID uint64) *models.Project {
	t.Helper()

	project := &models.Project{Name: name, TeamID: teamID, ManagerID: managerID}
	require.NoError(t, db.Create(project).Error)
	return project
}

// CreateTask inserts a TODO task, optionally assigned.
func CreateTask(t *testing.T, db *gorm.DB, title string, projectID uint64, assignee *uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:      title,
		ProjectID:  projectID,
		AssignedTo: assignee,
		Priority:   models.TaskPriorityMedium,
		Status:     models.TaskStatusTodo,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
