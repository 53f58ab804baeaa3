package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/team-task-api/internal/dto"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/utils"
)

type TaskHandler struct {
	taskService    *services.TaskService
	commentService *services.CommentService
	logger         *zap.Logger
}

func NewTaskHandler(taskService *services.TaskService, commentService *services.CommentService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		commentService: commentService,
		logger:         logger,
	}
}

// ListTasks returns all tasks accessible by the current user
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
// Task is already loaded with relations by RequireTaskAccess middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := currentTask(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required,max=255"`
		Description *string             `json:"description"`
		DueDate     *string             `json:"due_date"`
		Priority    models.TaskPriority `json:"priority"`
		Status      models.TaskStatus   `json:"status"`
		ProjectID   uint64              `json:"project_id" binding:"required"`
		AssignedTo  *uint64             `json:"assigned_to"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := utils.ParseOptionalDueDate(req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid due_date")
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), user.ID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    req.Priority,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask merges the provided fields into the task. Null or absent fields are untouched.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := currentTask(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string              `json:"title" binding:"omitempty,max=255"`
		Description *string              `json:"description"`
		DueDate     *string              `json:"due_date"`
		Priority    *models.TaskPriority `json:"priority"`
		Status      *models.TaskStatus   `json:"status"`
		AssignedTo  *uint64              `json:"assigned_to"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := utils.ParseOptionalDueDate(req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid due_date")
		return
	}

	updated, err := h.taskService.Update(c.Request.Context(), &task, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    req.Priority,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// UpdateStatus sets the task status from the status query parameter or JSON body
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	task, ok := currentTask(c)
	if !ok {
		return
	}

	status := models.TaskStatus(c.Query("status"))
	if status == "" {
		var req struct {
			Status models.TaskStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "status is required")
			return
		}
		status = req.Status
	}

	updated, err := h.taskService.UpdateStatus(c.Request.Context(), &task, status)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// AssignTask delegates the task to the user in the path
func (h *TaskHandler) AssignTask(c *gin.Context) {
	task, ok := currentTask(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	updated, err := h.taskService.Assign(c.Request.Context(), &task, userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// CreateComment adds a comment to the task and notifies its assignee
func (h *TaskHandler) CreateComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	task, ok := currentTask(c)
	if !ok {
		return
	}

	type CreateCommentRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), task, user, req.Text)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments returns the task's comments, newest first
func (h *TaskHandler) ListComments(c *gin.Context) {
	task, ok := currentTask(c)
	if !ok {
		return
	}

	comments, err := h.commentService.List(c.Request.Context(), task.ID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}
