package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/access"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found or you don't have access to it")
	ErrTitleEmpty       = errors.New("title cannot be empty")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrAssigneeNotFound = errors.New("assigned user not found")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Priority    models.TaskPriority
	Status      models.TaskStatus
	ProjectID   uint64
	AssignedTo  *uint64
}

// Create adds a task to a project the user can access.
// Priority and status default to MEDIUM and TODO. Due dates are stored in UTC.
func (s *TaskService) Create(ctx context.Context, userID uint64, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleEmpty
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	project, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !access.CanAccessProject(userID, *project) {
		return nil, ErrProjectAccessDenied
	}

	if input.AssignedTo != nil {
		if err := s.ensureUser(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		DueDate:     toUTC(input.DueDate),
		Priority:    priority,
		Status:      status,
		ProjectID:   project.ID,
		AssignedTo:  input.AssignedTo,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.find(ctx, task.ID)
}

// List returns the tasks the user may access, newest first.
func (s *TaskService) List(ctx context.Context, userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListAccessible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a task the user may access. Inaccessible tasks are reported as not found.
func (s *TaskService) Get(ctx context.Context, userID, taskID uint64) (*models.Task, error) {
	task, err := s.find(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessTask(userID, *task) {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// UpdateTaskInput lists the writable task fields. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *models.TaskPriority
	Status      *models.TaskStatus
	AssignedTo  *uint64
}

// Update merges input into task field by field.
func (s *TaskService) Update(ctx context.Context, task *models.Task, input UpdateTaskInput) (*models.Task, error) {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.DueDate != nil {
		task.DueDate = toUTC(input.DueDate)
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.AssignedTo != nil {
		if err := s.ensureUser(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}

	return s.save(ctx, task)
}

// UpdateStatus sets any status value; ordering between statuses is not enforced.
func (s *TaskService) UpdateStatus(ctx context.Context, task *models.Task, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	task.Status = status
	return s.save(ctx, task)
}

// Assign delegates the task to userID.
func (s *TaskService) Assign(ctx context.Context, task *models.Task, userID uint64) (*models.Task, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		if errors.Is(err, ErrAssigneeNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	task.AssignedTo = &userID
	return s.save(ctx, task)
}

func (s *TaskService) save(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.find(ctx, task.ID)
}

func (s *TaskService) ensureUser(ctx context.Context, userID uint64) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}

func (s *TaskService) find(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func toUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
