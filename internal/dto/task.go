package dto

import (
	"time"

	"github.com/yukikurage/team-task-api/internal/models"
)

// TaskListDTO represents a task without its comments
type TaskListDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	DueDate     *time.Time          `json:"due_date"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	ProjectID   uint64              `json:"project_id"`
	AssignedTo  *uint64             `json:"assigned_to"`
	Assignee    *UserDTO            `json:"assignee,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TaskDTO represents a task with its comments
type TaskDTO struct {
	TaskListDTO
	Comments []CommentDTO `json:"comments"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	TaskID    uint64    `json:"task_id"`
	UserID    *uint64   `json:"user_id"`
	User      *UserDTO  `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTaskListDTO converts a Task model to TaskListDTO
func ToTaskListDTO(task models.Task) TaskListDTO {
	return TaskListDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    task.Priority,
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		AssignedTo:  task.AssignedTo,
		Assignee:    optionalUser(task.Assignee),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		TaskListDTO: ToTaskListDTO(task),
		Comments:    ToCommentDTOs(task.Comments),
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		Text:      comment.Text,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		User:      optionalUser(comment.User),
		CreatedAt: comment.CreatedAt,
	}
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = ToCommentDTO(c)
	}
	return out
}
