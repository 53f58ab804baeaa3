package repository

import (
	"context"

	"github.com/yukikurage/team-task-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns every user ordered by ID
	List(ctx context.Context) ([]models.User, error)

	// Update persists the user's columns
	Update(ctx context.Context, user *models.User) error

	// ManagesResources reports whether the user still manages a team or project
	ManagesResources(ctx context.Context, id uint64) (bool, error)

	// Delete removes the user, detaching assigned tasks and authored comments
	Delete(ctx context.Context, id uint64) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// CreateWithManager creates the team and the manager's membership in one transaction
	CreateWithManager(ctx context.Context, team *models.Team, member *models.TeamMember) error

	// FindByID finds a team with its members and manager
	FindByID(ctx context.Context, id uint64) (*models.Team, error)

	// ListVisible lists teams the user manages or belongs to
	ListVisible(ctx context.Context, userID uint64) ([]models.Team, error)

	// LatestForUser returns the most recently created team the user manages or belongs to
	LatestForUser(ctx context.Context, userID uint64) (*models.Team, error)

	// AddMember adds a member to a team
	AddMember(ctx context.Context, member *models.TeamMember) error

	// FindMember finds a specific team member
	FindMember(ctx context.Context, teamID, userID uint64) (*models.TeamMember, error)

	// RemoveMember removes a member from a team
	RemoveMember(ctx context.Context, teamID, userID uint64) error

	// Delete deletes a team with its projects, tasks and comments
	Delete(ctx context.Context, id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project with team members, manager and tasks
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	// ListAccessible lists projects the user manages or reaches through team membership
	ListAccessible(ctx context.Context, userID uint64) ([]models.Project, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task with everything needed for access checks and responses
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// ListAccessible lists tasks the user may access, newest first
	ListAccessible(ctx context.Context, userID uint64) ([]models.Task, error)

	// Update persists the task's own columns
	Update(ctx context.Context, task *models.Task) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// ListByTask lists a task's comments, newest first
	ListByTask(ctx context.Context, taskID uint64) ([]models.Comment, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a new notification
	Create(ctx context.Context, notification *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(ctx context.Context, id uint64) (*models.Notification, error)

	// ListByUser lists a user's notifications, newest first
	ListByUser(ctx context.Context, userID uint64, unreadOnly bool) ([]models.Notification, error)

	// MarkRead flags a notification as read
	MarkRead(ctx context.Context, id uint64) error
}

// ReportRepository defines the interface for task aggregates
type ReportRepository interface {
	// CountTasks counts all and completed tasks matching filter
	CountTasks(ctx context.Context, filter TaskCountFilter) (TaskCounts, error)
}

// TaskCountFilter narrows CountTasks. Nil fields are ignored.
type TaskCountFilter struct {
	AssignedTo *uint64
	ProjectID  *uint64
}

// TaskCounts holds the raw numbers behind a report
type TaskCounts struct {
	Total     int64
	Completed int64
}
