package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/team-task-api/internal/database"
	"github.com/yukikurage/team-task-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// withTaskPreloads loads what the access predicate and the task response need.
// Comments come newest first, like ListByTask.
func withTaskPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Project.Team.Members").
		Preload("Assignee").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		Preload("Comments.User")
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task with its project, team members, assignee and comments
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Scopes(withTaskPreloads).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListAccessible lists tasks the user may access, newest first
func (r *GormTaskRepository) ListAccessible(ctx context.Context, userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.WithContext(ctx).Scopes(database.AccessibleTasks(userID), withTaskPreloads)
	if err := query.Order("tasks.created_at DESC, tasks.id DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists the task's own columns
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}
