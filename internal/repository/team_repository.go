package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/database"
	"github.com/yukikurage/team-task-api/internal/models"
)

var (
	// ErrCreateTeam is returned when inserting the team fails inside the creation transaction.
	ErrCreateTeam = errors.New("team repository: create team failed")
	// ErrCreateTeamMember is returned when inserting the manager's membership fails inside the creation transaction.
	ErrCreateTeamMember = errors.New("team repository: create team member failed")
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithManager creates the team and the manager's membership atomically.
func (r *GormTeamRepository) CreateWithManager(ctx context.Context, team *models.Team, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Manager", "Members", "Projects").Create(team).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateTeam, err)
		}

		member.TeamID = team.ID
		member.UserID = team.ManagerID

		if err := tx.Omit("User").Create(member).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateTeamMember, err)
		}

		return nil
	})
}

// FindByID finds a team with its members and manager
func (r *GormTeamRepository) FindByID(ctx context.Context, id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).
		Preload("Manager").
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at, user_id") }).
		Preload("Members.User").
		First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// ListVisible lists teams the user manages or belongs to
func (r *GormTeamRepository) ListVisible(ctx context.Context, userID uint64) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).
		Scopes(database.VisibleTeams(userID)).
		Preload("Manager").
		Preload("Members.User").
		Order("teams.id").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// LatestForUser returns the most recently created team the user manages or belongs to
func (r *GormTeamRepository) LatestForUser(ctx context.Context, userID uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).
		Scopes(database.VisibleTeams(userID)).
		Order("teams.created_at DESC, teams.id DESC").
		Take(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// AddMember adds a member to a team
func (r *GormTeamRepository) AddMember(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Omit("User").Create(member).Error
}

// FindMember finds a specific team member
func (r *GormTeamRepository) FindMember(ctx context.Context, teamID, userID uint64) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveMember removes a member from a team
func (r *GormTeamRepository) RemoveMember(ctx context.Context, teamID, userID uint64) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{}).Error
}

// Delete deletes a team and everything under it in a transaction
func (r *GormTeamRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectIDs := tx.Model(&models.Project{}).Select("id").Where("team_id = ?", id)
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id IN (?)", projectIDs)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id IN (?)", projectIDs).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("team_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}

		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Team{}, id).Error; err != nil {
			return err
		}

		return nil
	})
}
