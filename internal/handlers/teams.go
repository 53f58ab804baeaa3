package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/team-task-api/internal/dto"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/services"
)

type TeamHandler struct {
	teamService *services.TeamService
	logger      *zap.Logger
}

func NewTeamHandler(teamService *services.TeamService, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{teamService: teamService, logger: logger}
}

// CreateTeam creates a team managed by the current user
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateTeamRequest struct {
		Name string `json:"name" binding:"required,max=255"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), services.CreateTeamInput{
		Name:      req.Name,
		ManagerID: user.ID,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// ListTeams returns the teams the current user manages or belongs to
func (h *TeamHandler) ListTeams(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	teams, err := h.teamService.List(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamDTOs(teams))
}

// GetTeam returns a team visible to the current user
func (h *TeamHandler) GetTeam(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}

	team, err := h.teamService.Get(c.Request.Context(), user, teamID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// AddMember adds the user named in the JSON body to the team
func (h *TeamHandler) AddMember(c *gin.Context) {
	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	h.addMember(c, req.UserID)
}

// AddMemberByPath adds the user named in the path to the team
func (h *TeamHandler) AddMemberByPath(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	h.addMember(c, userID)
}

func (h *TeamHandler) addMember(c *gin.Context, userID uint64) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}

	team, err := h.teamService.AddMember(c.Request.Context(), actor.ID, teamID, userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// RemoveMember removes a user from the team (manager only)
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	team, err := h.teamService.RemoveMember(c.Request.Context(), actor.ID, teamID, userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// DeleteTeam deletes the team with its projects, tasks and comments
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), actor, teamID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team deleted successfully",
	})
}
