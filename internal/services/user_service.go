package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
)

var (
	ErrInvalidRole          = errors.New("invalid role")
	ErrCannotDeleteSelf     = errors.New("cannot delete your own account")
	ErrUserManagesResources = errors.New("user still manages a team or project")
)

// UserService exposes user profiles and admin maintenance.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUserInput lists the fields an admin may change. Nil fields are left untouched.
type UpdateUserInput struct {
	FullName *string
	IsActive *bool
	Role     *models.Role
}

// Update applies input field by field.
func (s *UserService) Update(ctx context.Context, id uint64, input UpdateUserInput) (*models.User, error) {
	if input.Role != nil && !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes a user who no longer manages anything.
func (s *UserService) Delete(ctx context.Context, actorID, id uint64) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	managing, err := s.userRepo.ManagesResources(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check managed resources: %w", err)
	}
	if managing {
		return ErrUserManagesResources
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
