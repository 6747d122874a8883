package repository

import (
	"github.com/yukikurage/scrum-board-api/internal/filters"
	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/utils"
)

// SprintRepository defines the interface for sprint data access
type SprintRepository interface {
	// Create creates a new sprint
	Create(sprint *models.Sprint) error

	// FindByID finds a sprint by ID
	FindByID(id uint64) (*models.Sprint, error)

	// List retrieves sprints with filtering, search, ordering and pagination
	List(filter SprintFilter) ([]models.Sprint, int64, error)

	// Update replaces the stored sprint
	Update(sprint *models.Sprint) error

	// Delete deletes a sprint together with its tasks
	Delete(id uint64) error
}

// SprintFilter holds the options for listing sprints
type SprintFilter struct {
	Clauses    filters.Clauses[models.Sprint]
	Search     string
	Ordering   string
	Pagination utils.PaginationParams
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering, search, ordering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update replaces the stored task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}

// TaskFilter holds the options for listing tasks
type TaskFilter struct {
	Clauses    filters.Clauses[models.Task]
	Search     string
	Ordering   string
	Pagination utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users ordered by username
	List(filter UserFilter) ([]models.User, int64, error)

	// Update replaces the stored user
	Update(user *models.User) error
}

// UserFilter holds the options for listing users
type UserFilter struct {
	Search     string
	Pagination utils.PaginationParams
}

// TokenRepository defines the interface for API token data access
type TokenRepository interface {
	// Create stores a new token
	Create(token *models.Token) error

	// FindByKey finds a token and its user by key
	FindByKey(key string) (*models.Token, error)

	// FindByUserID finds the token of a user
	FindByUserID(userID uint64) (*models.Token, error)

	// DeleteByUserID removes the token of a user
	DeleteByUserID(userID uint64) error
}
