package dto

import (
	"time"

	"github.com/yukikurage/team-task-api/internal/models"
)

// UserDTO is the public profile of a user
type UserDTO struct {
	ID        uint64      `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	IsActive  bool        `json:"is_active"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// TokenDTO is returned by login and refresh
type TokenDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		IsActive:  user.IsActive,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

// optionalUser converts a preloaded association, returning nil when it was not loaded
func optionalUser(user *models.User) *UserDTO {
	if user == nil || user.ID == 0 {
		return nil
	}
	dto := ToUserDTO(*user)
	return &dto
}
