package services

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/yukikurage/scrum-board-api/internal/constants"
	"github.com/yukikurage/scrum-board-api/internal/filters"
	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/repository"
	"github.com/yukikurage/scrum-board-api/internal/utils"
	"github.com/yukikurage/scrum-board-api/internal/validation"
	"gorm.io/gorm"
)

// SprintService handles sprint business logic
type SprintService struct {
	sprintRepo repository.SprintRepository
	validator  *validation.Validator
}

// NewSprintService creates a new SprintService
func NewSprintService(sprintRepo repository.SprintRepository, validator *validation.Validator) *SprintService {
	return &SprintService{
		sprintRepo: sprintRepo,
		validator:  validator,
	}
}

// ListSprintsInput represents the query of a sprint list request
type ListSprintsInput struct {
	Query      url.Values
	Pagination utils.PaginationParams
}

// SprintInput is the full writable representation of a sprint
type SprintInput struct {
	Name        string
	Description string
	End         models.Date
}

// SprintPatch holds the fields supplied by a partial update
type SprintPatch struct {
	Name        *string
	Description *string
	End         *models.Date
}

func (in SprintInput) patch() SprintPatch {
	return SprintPatch{Name: &in.Name, Description: &in.Description, End: &in.End}
}

// ListSprints returns the sprints matching the query and the total count
func (s *SprintService) ListSprints(input ListSprintsInput) ([]models.Sprint, int64, error) {
	clauses, err := filters.SprintFilters.Parse(input.Query)
	if err != nil {
		return nil, 0, err
	}

	sprints, total, err := s.sprintRepo.List(repository.SprintFilter{
		Clauses:    clauses,
		Search:     input.Query.Get(constants.QuerySearch),
		Ordering:   input.Query.Get(constants.QueryOrdering),
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sprints: %w", err)
	}

	return sprints, total, nil
}

// GetSprint returns a sprint by ID
func (s *SprintService) GetSprint(id uint64) (*models.Sprint, error) {
	sprint, err := s.sprintRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSprintNotFound
		}
		return nil, fmt.Errorf("failed to find sprint: %w", err)
	}
	return sprint, nil
}

// CreateSprint validates and stores a new sprint
func (s *SprintService) CreateSprint(input SprintInput) (*models.Sprint, error) {
	sprint := &models.Sprint{
		Name:        input.Name,
		Description: input.Description,
		End:         input.End,
	}

	if err := s.validate(nil, sprint); err != nil {
		return nil, err
	}

	if err := s.sprintRepo.Create(sprint); err != nil {
		return nil, fmt.Errorf("failed to create sprint: %w", err)
	}

	return sprint, nil
}

// ReplaceSprint overwrites every writable field of a sprint
func (s *SprintService) ReplaceSprint(id uint64, input SprintInput) (*models.Sprint, error) {
	return s.UpdateSprint(id, input.patch())
}

// UpdateSprint merges the supplied fields into the stored sprint and
// validates the result before saving it
func (s *SprintService) UpdateSprint(id uint64, patch SprintPatch) (*models.Sprint, error) {
	current, err := s.GetSprint(id)
	if err != nil {
		return nil, err
	}

	proposed := *current
	if patch.Name != nil {
		proposed.Name = *patch.Name
	}
	if patch.Description != nil {
		proposed.Description = *patch.Description
	}
	if patch.End != nil {
		proposed.End = *patch.End
	}

	if err := s.validate(current, &proposed); err != nil {
		return nil, err
	}

	if err := s.sprintRepo.Update(&proposed); err != nil {
		return nil, fmt.Errorf("failed to update sprint: %w", err)
	}

	return &proposed, nil
}

// DeleteSprint deletes a sprint and its tasks
func (s *SprintService) DeleteSprint(id uint64) error {
	if err := s.sprintRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSprintNotFound
		}
		return fmt.Errorf("failed to delete sprint: %w", err)
	}
	return nil
}

func (s *SprintService) validate(current, proposed *models.Sprint) error {
	if err := checkName(proposed.Name); err != nil {
		return err
	}
	if proposed.End.IsZero() {
		return &FieldError{Field: "end", Message: "This field is required."}
	}
	return s.validator.ValidateSprint(current, proposed)
}
