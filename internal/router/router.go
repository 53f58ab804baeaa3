package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/team-task-api/internal/handlers"
	"github.com/yukikurage/team-task-api/internal/middleware"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Teams         *services.TeamService
	Projects      *services.ProjectService
	Tasks         *services.TaskService
	Comments      *services.CommentService
	Notifications *services.NotificationService
	Reports       *services.ReportService
}

// New builds the gin engine with every route registered.
func New(svc Services, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger, "/health"),
		middleware.Recovery(logger),
	)

	authHandler := handlers.NewAuthHandler(svc.Auth, logger)
	userHandler := handlers.NewUserHandler(svc.Users, logger)
	teamHandler := handlers.NewTeamHandler(svc.Teams, logger)
	projectHandler := handlers.NewProjectHandler(svc.Projects, logger)
	taskHandler := handlers.NewTaskHandler(svc.Tasks, svc.Comments, logger)
	notificationHandler := handlers.NewNotificationHandler(svc.Notifications, logger)
	reportHandler := handlers.NewReportHandler(svc.Reports, logger)

	requireAuth := middleware.RequireAuth(svc.Auth, logger)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)
	requireTask := middleware.RequireTaskAccess(svc.Tasks, logger)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Task Manager API"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)
		auth.POST("/logout", requireAuth, authHandler.Logout)
		auth.POST("/refresh-token", requireAuth, authHandler.RefreshToken)
	}

	// User routes (protected, writes are admin only)
	users := r.Group("/users")
	users.Use(requireAuth)
	{
		users.GET("/", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PATCH("/:id", requireAdmin, userHandler.UpdateUser)
		users.DELETE("/:id", requireAdmin, userHandler.DeleteUser)
	}

	// Team routes (protected)
	teams := r.Group("/teams")
	teams.Use(requireAuth)
	{
		teams.POST("/", teamHandler.CreateTeam)
		teams.GET("/", teamHandler.ListTeams)
		teams.GET("/:id", teamHandler.GetTeam)
		teams.DELETE("/:id", teamHandler.DeleteTeam)
		teams.POST("/:id/members", teamHandler.AddMember)
		teams.POST("/:id/members/:user_id", teamHandler.AddMemberByPath)
		teams.DELETE("/:id/members/:user_id", teamHandler.RemoveMember)
	}

	// Project routes (protected)
	projects := r.Group("/projects")
	projects.Use(requireAuth)
	{
		projects.POST("/", projectHandler.CreateProject)
		projects.GET("/", projectHandler.ListProjects)
		projects.GET("/:id", projectHandler.GetProject)
		projects.POST("/:id/assign/:user_id", projectHandler.AssignMember)
	}

	// Task routes (protected)
	tasks := projects.Group("/tasks")
	{
		tasks.POST("/", taskHandler.CreateTask)
		tasks.GET("/", taskHandler.ListTasks)
		tasks.GET("/:id", requireTask, taskHandler.GetTask)
		tasks.PUT("/:id", requireTask, taskHandler.UpdateTask)
		tasks.PATCH("/:id/status", requireTask, taskHandler.UpdateStatus)
		tasks.POST("/:id/assign/:user_id", requireTask, taskHandler.AssignTask)
		tasks.GET("/:id/comments", requireTask, taskHandler.ListComments)
		tasks.POST("/:id/comments", requireTask, taskHandler.CreateComment)
	}

	// Legacy task URLs
	r.Any("/tasks", redirectTasks)
	r.Any("/tasks/*path", redirectTasks)

	// Notification routes (protected)
	notifications := r.Group("/notifications")
	notifications.Use(requireAuth)
	{
		notifications.GET("/", notificationHandler.ListNotifications)
		notifications.POST("/mark-read", notificationHandler.MarkReadByQuery)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
	}

	// Report routes (protected)
	reports := r.Group("/reports")
	reports.Use(requireAuth)
	{
		reports.GET("/tasks-completed", reportHandler.TasksCompleted)
		reports.GET("/user-performance/:user_id", reportHandler.UserPerformance)
		reports.GET("/project-progress/:project_id", reportHandler.ProjectProgress)
	}

	return r
}

// redirectTasks sends /tasks/... to /projects/tasks/... keeping method and body.
func redirectTasks(c *gin.Context) {
	path := c.Param("path")
	if path == "" {
		path = "/"
	}
	target := "/projects/tasks" + path
	if c.Request.URL.RawQuery != "" {
		target += "?" + c.Request.URL.RawQuery
	}
	c.Redirect(http.StatusTemporaryRedirect, target)
}
