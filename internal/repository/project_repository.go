package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/team-task-api/internal/database"
	"github.com/yukikurage/team-task-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Preload("Team.Members").
		Preload("Manager").
		Preload("Tasks", orderTasks).
		Preload("Tasks.Assignee").
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) ListAccessible(ctx context.Context, userID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Scopes(database.AccessibleProjects(userID)).
		Preload("Team.Members").
		Preload("Manager").
		Preload("Tasks", orderTasks).
		Preload("Tasks.Assignee").
		Order("projects.id").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func orderTasks(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.created_at DESC, tasks.id DESC")
}
