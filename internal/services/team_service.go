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
	ErrTeamNotFound       = errors.New("team not found")
	ErrInvalidTeamName    = errors.New("team name cannot be empty")
	ErrNotTeamManager     = errors.New("only the team manager can perform this action")
	ErrAlreadyTeamMember  = errors.New("user is already a member of this team")
	ErrTeamMemberNotFound = errors.New("user is not a member of this team")
)

// TeamService provides business logic for team operations.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	Name      string
	ManagerID uint64
}

// Create creates a team whose creator is both manager and first member.
func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidTeamName
	}

	team := &models.Team{
		Name:      name,
		ManagerID: input.ManagerID,
	}
	member := &models.TeamMember{JoinedAt: time.Now()}

	if err := s.teamRepo.CreateWithManager(ctx, team, member); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return s.find(ctx, team.ID)
}

// List returns the teams the user manages or belongs to.
func (s *TeamService) List(ctx context.Context, userID uint64) ([]models.Team, error) {
	teams, err := s.teamRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// Get returns a team the user may view. Teams the user cannot see are reported as not found.
func (s *TeamService) Get(ctx context.Context, user models.User, teamID uint64) (*models.Team, error) {
	team, err := s.find(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewTeam(user, *team) {
		return nil, ErrTeamNotFound
	}
	return team, nil
}

// AddMember adds userID to the team. Only the manager may add members.
func (s *TeamService) AddMember(ctx context.Context, actorID, teamID, userID uint64) (*models.Team, error) {
	team, err := s.find(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !access.IsTeamManager(actorID, *team) {
		return nil, ErrNotTeamManager
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if access.IsTeamMember(userID, *team) {
		return nil, ErrAlreadyTeamMember
	}

	member := &models.TeamMember{
		TeamID:   team.ID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyTeamMember
		}
		return nil, fmt.Errorf("failed to add member to team: %w", err)
	}

	return s.find(ctx, team.ID)
}

// RemoveMember removes userID from the team. Only the manager may remove members.
func (s *TeamService) RemoveMember(ctx context.Context, actorID, teamID, userID uint64) (*models.Team, error) {
	team, err := s.find(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !access.IsTeamManager(actorID, *team) {
		return nil, ErrNotTeamManager
	}

	if _, err := s.teamRepo.FindMember(ctx, teamID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}

	if err := s.teamRepo.RemoveMember(ctx, teamID, userID); err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}

	return s.find(ctx, team.ID)
}

// Delete removes the team with its projects, tasks and comments.
// The manager or an admin may delete a team.
func (s *TeamService) Delete(ctx context.Context, actor models.User, teamID uint64) error {
	team, err := s.find(ctx, teamID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && !access.IsTeamManager(actor.ID, *team) {
		if !access.IsTeamMember(actor.ID, *team) {
			return ErrTeamNotFound
		}
		return ErrNotTeamManager
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

func (s *TeamService) find(ctx context.Context, teamID uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}
