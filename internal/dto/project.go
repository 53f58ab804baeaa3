package dto

import (
	"time"

	"github.com/yukikurage/team-task-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID        uint64        `json:"id"`
	Name      string        `json:"name"`
	TeamID    *uint64       `json:"team_id"`
	ManagerID uint64        `json:"manager_id"`
	Manager   *UserDTO      `json:"manager,omitempty"`
	Tasks     []TaskListDTO `json:"tasks"`
	CreatedAt time.Time     `json:"created_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	tasks := make([]TaskListDTO, len(project.Tasks))
	for i, t := range project.Tasks {
		tasks[i] = ToTaskListDTO(t)
	}

	return ProjectDTO{
		ID:        project.ID,
		Name:      project.Name,
		TeamID:    project.TeamID,
		ManagerID: project.ManagerID,
		Manager:   optionalUser(&project.Manager),
		Tasks:     tasks,
		CreatedAt: project.CreatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p)
	}
	return out
}
