package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/scrum-board-api/internal/constants"
	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/repository"
	"github.com/yukikurage/scrum-board-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUsernameRequired     = errors.New("username is required")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInactiveUser         = errors.New("user account is disabled")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToCreateToken  = errors.New("failed to create token")
)

// AuthService handles authentication and account management.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// CreateUserInput represents the required information to create a new user.
type CreateUserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// CreateUser creates a new active user.
func (s *AuthService) CreateUser(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateUser, err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
// Inactive users cannot log in.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return user, nil
}

// ObtainToken verifies credentials and returns the user's API token,
// creating it on first use.
func (s *AuthService) ObtainToken(input LoginInput) (*models.Token, error) {
	user, err := s.Login(input)
	if err != nil {
		return nil, err
	}
	return s.tokenFor(user, false)
}

// CreateToken returns the token of the named user. rotate replaces an
// existing token with a new key.
func (s *AuthService) CreateToken(username string, rotate bool) (*models.Token, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return s.tokenFor(user, rotate)
}

func (s *AuthService) tokenFor(user *models.User, rotate bool) (*models.Token, error) {
	token, err := s.tokenRepo.FindByUserID(user.ID)
	switch {
	case err == nil && !rotate:
		return token, nil
	case err == nil:
		if err := s.tokenRepo.DeleteByUserID(user.ID); err != nil {
			return nil, fmt.Errorf("failed to revoke token: %w", err)
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to find token: %w", err)
	}

	key, err := utils.GenerateTokenKey()
	if err != nil {
		return nil, ErrFailedToCreateToken
	}

	token = &models.Token{Key: key, UserID: user.ID}
	if err := s.tokenRepo.Create(token); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateToken, err)
	}
	token.User = *user

	return token, nil
}

// AuthenticateToken returns the active user owning the token key.
func (s *AuthService) AuthenticateToken(key string) (*models.User, error) {
	token, err := s.tokenRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find token: %w", err)
	}

	if !token.User.IsActive {
		return nil, ErrInactiveUser
	}

	return &token.User, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// SetActive enables or disables the named user. Disabling also revokes the
// user's API token.
func (s *AuthService) SetActive(username string, active bool) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.IsActive = active
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if !active {
		if err := s.tokenRepo.DeleteByUserID(user.ID); err != nil {
			return nil, fmt.Errorf("failed to revoke token: %w", err)
		}
	}

	return user, nil
}
