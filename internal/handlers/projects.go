package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/team-task-api/internal/dto"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *zap.Logger
}

func NewProjectHandler(projectService *services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, logger: logger}
}

// CreateProject creates a project managed by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Name   string  `json:"name" binding:"required,max=255"`
		TeamID *uint64 `json:"team_id"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), services.CreateProjectInput{
		Name:      req.Name,
		TeamID:    req.TeamID,
		ManagerID: user.ID,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns the projects the current user can access
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProject returns one accessible project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), user.ID, projectID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// AssignMember gives a user access to the project through its team (manager only)
func (h *ProjectHandler) AssignMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	project, err := h.projectService.AssignMember(c.Request.Context(), user.ID, projectID, userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}
