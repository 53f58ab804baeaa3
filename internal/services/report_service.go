package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/team-task-api/internal/repository"
)

// TaskReport is a count of all and completed tasks with their ratio.
type TaskReport struct {
	TotalTasks     int64
	CompletedTasks int64
	CompletionRate float64
}

// ReportService computes task aggregates.
type ReportService struct {
	reportRepo repository.ReportRepository
	projects   *ProjectService
	users      *UserService
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo repository.ReportRepository, projects *ProjectService, users *UserService) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		projects:   projects,
		users:      users,
	}
}

// TasksCompleted reports over every task.
func (s *ReportService) TasksCompleted(ctx context.Context) (*TaskReport, error) {
	return s.count(ctx, repository.TaskCountFilter{})
}

// UserPerformance reports over tasks assigned to userID.
func (s *ReportService) UserPerformance(ctx context.Context, userID uint64) (*TaskReport, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.count(ctx, repository.TaskCountFilter{AssignedTo: &userID})
}

// ProjectProgress reports over a project's tasks. The actor must have access to the project.
func (s *ReportService) ProjectProgress(ctx context.Context, actorID, projectID uint64) (*TaskReport, error) {
	if _, err := s.projects.Get(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.count(ctx, repository.TaskCountFilter{ProjectID: &projectID})
}

func (s *ReportService) count(ctx context.Context, filter repository.TaskCountFilter) (*TaskReport, error) {
	counts, err := s.reportRepo.CountTasks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	return &TaskReport{
		TotalTasks:     counts.Total,
		CompletedTasks: counts.Completed,
		CompletionRate: Ratio(counts.Completed, counts.Total),
	}, nil
}

// Ratio returns part/total, or 0 when total is 0.
func Ratio(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
