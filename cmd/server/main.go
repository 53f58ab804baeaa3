package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/team-task-api/internal/auth"
	"github.com/yukikurage/team-task-api/internal/config"
	"github.com/yukikurage/team-task-api/internal/database"
	"github.com/yukikurage/team-task-api/internal/logger"
	"github.com/yukikurage/team-task-api/internal/messaging"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/router"
	"github.com/yukikurage/team-task-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: !cfg.IsRelease(),
	})
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Token revocation and notification fan-out use Redis when configured
	var (
		revocations auth.RevocationStore = auth.NewMemoryRevocationStore()
		publisher   messaging.Publisher  = messaging.NopPublisher{}
	)
	if cfg.RedisAddr != "" {
		client, err := messaging.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		redisPublisher := messaging.NewRedisPublisher(client)
		defer redisPublisher.Close()

		revocations = auth.NewRedisRevocationStore(client)
		publisher = redisPublisher
		log.Info("using redis", zap.String("addr", cfg.RedisAddr))
	} else {
		log.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration), revocations)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, teamRepo, userRepo)
	notificationService := services.NewNotificationService(repository.NewNotificationRepository(db), publisher, log)

	if cfg.AdminEmail != "" {
		created, err := authService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		if created {
			log.Info("admin user created", zap.String("email", cfg.AdminEmail))
		}
	}

	r := router.New(router.Services{
		Auth:          authService,
		Users:         userService,
		Teams:         services.NewTeamService(teamRepo, userRepo),
		Projects:      projectService,
		Tasks:         services.NewTaskService(taskRepo, projectRepo, userRepo),
		Comments:      services.NewCommentService(repository.NewCommentRepository(db), notificationService, log),
		Notifications: notificationService,
		Reports:       services.NewReportService(repository.NewReportRepository(db), projectService, userService),
	}, log)

	// Start server
	log.Info("server starting", zap.String("port", cfg.Port))
	return r.Run(":" + cfg.Port)
}
