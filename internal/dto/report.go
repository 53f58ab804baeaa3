package dto

import (
	"github.com/yukikurage/team-task-api/internal/services"
)

// TasksCompletedDTO is the global completion report
type TasksCompletedDTO struct {
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

// UserPerformanceDTO is the per-assignee completion report
type UserPerformanceDTO struct {
	UserID         uint64  `json:"user_id"`
	TasksCompleted int64   `json:"tasks_completed"`
	TotalTasks     int64   `json:"total_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

// ProjectProgressDTO is the per-project completion report
type ProjectProgressDTO struct {
	ProjectID      uint64  `json:"project_id"`
	CompletedTasks int64   `json:"completed_tasks"`
	TotalTasks     int64   `json:"total_tasks"`
	Progress       float64 `json:"progress"`
}

// ToTasksCompletedDTO converts a global report
func ToTasksCompletedDTO(r services.TaskReport) TasksCompletedDTO {
	return TasksCompletedDTO{
		TotalTasks:     r.TotalTasks,
		CompletedTasks: r.CompletedTasks,
		CompletionRate: r.CompletionRate,
	}
}

// ToUserPerformanceDTO converts a per-user report
func ToUserPerformanceDTO(userID uint64, r services.TaskReport) UserPerformanceDTO {
	return UserPerformanceDTO{
		UserID:         userID,
		TasksCompleted: r.CompletedTasks,
		TotalTasks:     r.TotalTasks,
		CompletionRate: r.CompletionRate,
	}
}

// ToProjectProgressDTO converts a per-project report
func ToProjectProgressDTO(projectID uint64, r services.TaskReport) ProjectProgressDTO {
	return ProjectProgressDTO{
		ProjectID:      projectID,
		CompletedTasks: r.CompletedTasks,
		TotalTasks:     r.TotalTasks,
		Progress:       r.CompletionRate,
	}
}
