package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/repository"
	"github.com/yukikurage/scrum-board-api/internal/utils"
	"gorm.io/gorm"
)

// UserService exposes users read-only
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns users matching the search, ordered by username
func (s *UserService) ListUsers(search string, pagination utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(repository.UserFilter{
		Search:     search,
		Pagination: pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser returns a user by username
func (s *UserService) GetUser(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
