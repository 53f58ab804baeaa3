package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/team-task-api/internal/dto"
	"github.com/yukikurage/team-task-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *services.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, logger: logger}
}

// TasksCompleted reports completion over every task
func (h *ReportHandler) TasksCompleted(c *gin.Context) {
	report, err := h.reportService.TasksCompleted(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTasksCompletedDTO(*report))
}

// UserPerformance reports completion over the tasks assigned to a user
func (h *ReportHandler) UserPerformance(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	report, err := h.reportService.UserPerformance(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserPerformanceDTO(userID, *report))
}

// ProjectProgress reports completion over an accessible project's tasks
func (h *ReportHandler) ProjectProgress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	report, err := h.reportService.ProjectProgress(c.Request.Context(), user.ID, projectID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectProgressDTO(projectID, *report))
}
