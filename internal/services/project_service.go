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
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidProjectName  = errors.New("project name cannot be empty")
	ErrNotProjectManager   = errors.New("only the project manager can perform this action")
	ErrProjectHasNoTeam    = errors.New("project has no team to assign users to")
	ErrProjectAccessDenied = errors.New("you don't have access to this project")
	ErrNotTeamMember       = errors.New("you are not a member of this team")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
// Without TeamID the project goes under the manager's most recent team, if any.
type CreateProjectInput struct {
	Name      string
	TeamID    *uint64
	ManagerID uint64
}

// Create creates a project managed by input.ManagerID.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}

	teamID, err := s.resolveTeam(ctx, input)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:      name,
		TeamID:    teamID,
		ManagerID: input.ManagerID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.find(ctx, project.ID)
}

func (s *ProjectService) resolveTeam(ctx context.Context, input CreateProjectInput) (*uint64, error) {
	if input.TeamID == nil {
		team, err := s.teamRepo.LatestForUser(ctx, input.ManagerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to find team: %w", err)
		}
		return &team.ID, nil
	}

	team, err := s.teamRepo.FindByID(ctx, *input.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	if !access.IsTeamManager(input.ManagerID, *team) && !access.IsTeamMember(input.ManagerID, *team) {
		return nil, ErrNotTeamMember
	}
	return &team.ID, nil
}

// List returns the projects the user may access.
func (s *ProjectService) List(ctx context.Context, userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListAccessible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project the user may access. Inaccessible projects are reported as not found.
func (s *ProjectService) Get(ctx context.Context, userID, projectID uint64) (*models.Project, error) {
	project, err := s.find(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessProject(userID, *project) {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// AssignMember gives userID access to the project by adding them to the project's team.
// Only the project manager may assign users.
func (s *ProjectService) AssignMember(ctx context.Context, actorID, projectID, userID uint64) (*models.Project, error) {
	project, err := s.find(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !access.IsProjectManager(actorID, *project) {
		if !access.CanAccessProject(actorID, *project) {
			return nil, ErrProjectNotFound
		}
		return nil, ErrNotProjectManager
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if project.Team == nil {
		return nil, ErrProjectHasNoTeam
	}
	if access.IsTeamMember(userID, *project.Team) {
		return nil, ErrAlreadyTeamMember
	}

	member := &models.TeamMember{
		TeamID:   project.Team.ID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyTeamMember
		}
		return nil, fmt.Errorf("failed to assign user to project: %w", err)
	}

	return s.find(ctx, projectID)
}

func (s *ProjectService) find(ctx context.Context, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
