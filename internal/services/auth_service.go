package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/auth"
	"github.com/yukikurage/team-task-api/internal/constants"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrInactiveAccount      = errors.New("inactive user")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrPasswordTooLong      = errors.New("password too long")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// TokenResult is returned by login and refresh.
type TokenResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	userRepo    repository.UserRepository
	tokens      *auth.TokenService
	revocations auth.RevocationStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, revocations auth.RevocationStore) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		revocations: revocations,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

// Register creates an active user with the default role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	return s.createUser(ctx, input, models.RoleUser)
}

func (s *AuthService) createUser(ctx context.Context, input RegisterInput, role models.Role) (*models.User, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(input.Password) > constants.MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:          email,
		FullName:       strings.TrimSpace(input.FullName),
		HashedPassword: string(hashedPassword),
		IsActive:       true,
		Role:           role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// EnsureAdmin creates an admin account for email unless the email is already registered.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	user, err := s.createUser(ctx, RegisterInput{Email: email, FullName: "Administrator", Password: password}, models.RoleAdmin)
	if errors.Is(err, ErrEmailTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenResult, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, ErrInactiveAccount
	}

	result, err := s.issue(user.Email)
	if err != nil {
		return nil, nil, err
	}
	return result, user, nil
}

// Authenticate resolves a bearer token to its user.
// The user must still exist and be active; revoked tokens are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, nil, ErrInactiveAccount
	}

	return user, claims, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Refresh issues a new token for user and revokes the presented one.
func (s *AuthService) Refresh(ctx context.Context, user *models.User, claims *auth.Claims) (*TokenResult, error) {
	result, err := s.issue(user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.Logout(ctx, claims); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *AuthService) issue(email string) (*TokenResult, error) {
	token, claims, err := s.tokens.Issue(email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &TokenResult{
		AccessToken: token,
		TokenType:   constants.TokenType,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
