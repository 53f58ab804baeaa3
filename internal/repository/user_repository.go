package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/team-task-api/internal/models"
)

var (
	// ErrDetachUser is returned when nulling task or comment references fails during user deletion.
	ErrDetachUser = errors.New("user repository: detach references failed")
	// ErrDeleteUser is returned when removing the user's own rows fails during user deletion.
	ErrDeleteUser = errors.New("user repository: delete user failed")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user ordered by ID
func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists the user's columns
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

// ManagesResources reports whether the user still manages a team or project
func (r *GormUserRepository) ManagesResources(ctx context.Context, id uint64) (bool, error) {
	db := r.db.WithContext(ctx)

	var teams int64
	if err := db.Model(&models.Team{}).Where("manager_id = ?", id).Count(&teams).Error; err != nil {
		return false, err
	}
	if teams > 0 {
		return true, nil
	}

	var projects int64
	if err := db.Model(&models.Project{}).Where("manager_id = ?", id).Count(&projects).Error; err != nil {
		return false, err
	}
	return projects > 0, nil
}

// Delete removes the user atomically. Task assignments and comment authorship are nulled,
// memberships and notifications are deleted.
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("assigned_to = ?", id).Update("assigned_to", nil).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrDetachUser, err)
		}

		if err := tx.Model(&models.Comment{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrDetachUser, err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrDeleteUser, err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrDeleteUser, err)
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return fmt.Errorf("%w: %w", ErrDeleteUser, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
