package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/models"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

// CountTasks runs a single aggregate query over tasks.
func (r *GormReportRepository) CountTasks(ctx context.Context, filter TaskCountFilter) (TaskCounts, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	var counts TaskCounts
	err := query.
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed", models.TaskStatusDone).
		Scan(&counts).Error
	if err != nil {
		return TaskCounts{}, err
	}
	return counts, nil
}
