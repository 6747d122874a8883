package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/yukikurage/scrum-board-api/internal/constants"
	"github.com/yukikurage/scrum-board-api/internal/filters"
	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/repository"
	"github.com/yukikurage/scrum-board-api/internal/utils"
	"github.com/yukikurage/scrum-board-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo   repository.TaskRepository
	sprintRepo repository.SprintRepository
	userRepo   repository.UserRepository
	validator  *validation.Validator
	suggester  TaskSuggester
}

// NewTaskService creates a new TaskService. suggester may be nil when no AI
// backend is configured.
func NewTaskService(
	taskRepo repository.TaskRepository,
	sprintRepo repository.SprintRepository,
	userRepo repository.UserRepository,
	validator *validation.Validator,
	suggester TaskSuggester,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		sprintRepo: sprintRepo,
		userRepo:   userRepo,
		validator:  validator,
		suggester:  suggester,
	}
}

// Nullable is a patch value for a field that can be cleared. Set reports
// whether the field was supplied; a nil Value clears it.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Null returns a supplied, cleared value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Some returns a supplied value.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func (n Nullable[T]) apply(dst **T) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		*dst = nil
		return
	}
	v := *n.Value
	*dst = &v
}

// ListTasksInput represents the query of a task list request
type ListTasksInput struct {
	Query      url.Values
	Pagination utils.PaginationParams
}

// TaskInput is the full writable representation of a task.
// Assigned is the assignee's username.
type TaskInput struct {
	Name        string
	Description string
	Sprint      *uint64
	Status      models.TaskStatus
	Order       int
	Assigned    *string
	Started     *models.Date
	Due         *models.Date
	Completed   *models.Date
}

// TaskPatch holds the fields supplied by a partial update
type TaskPatch struct {
	Name        *string
	Description *string
	Sprint      Nullable[uint64]
	Status      *models.TaskStatus
	Order       *int
	Assigned    Nullable[string]
	Started     Nullable[models.Date]
	Due         Nullable[models.Date]
	Completed   Nullable[models.Date]
}

func (in TaskInput) patch() TaskPatch {
	status := in.Status
	if status == "" {
		status = models.TaskStatusNotStarted
	}
	return TaskPatch{
		Name:        &in.Name,
		Description: &in.Description,
		Sprint:      Nullable[uint64]{Set: true, Value: in.Sprint},
		Status:      &status,
		Order:       &in.Order,
		Assigned:    Nullable[string]{Set: true, Value: in.Assigned},
		Started:     Nullable[models.Date]{Set: true, Value: in.Started},
		Due:         Nullable[models.Date]{Set: true, Value: in.Due},
		Completed:   Nullable[models.Date]{Set: true, Value: in.Completed},
	}
}

// ListTasks returns the tasks matching the query and the total count.
// Sprint and assignee filters must reference existing objects.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	clauses, err := filters.TaskFilters.Parse(input.Query)
	if err != nil {
		return nil, 0, err
	}

	if value, ok := clauses.Value(filters.TaskSprint); ok {
		id, _ := strconv.ParseUint(value, 10, 64)
		if _, err := s.resolveSprint(id); err != nil {
			return nil, 0, err
		}
	}
	if username, ok := clauses.Value(filters.TaskAssigned); ok {
		if _, err := s.resolveUser(username); err != nil {
			return nil, 0, err
		}
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		Clauses:    clauses,
		Search:     input.Query.Get(constants.QuerySearch),
		Ordering:   input.Query.Get(constants.QueryOrdering),
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its assignee
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "Assigned")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates and stores a new task
func (s *TaskService) CreateTask(input TaskInput) (*models.Task, error) {
	proposed := &models.Task{}
	if err := s.merge(proposed, input.patch()); err != nil {
		return nil, err
	}

	if err := s.validate(nil, proposed); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(proposed); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(proposed.ID)
}

// ReplaceTask overwrites every writable field of a task
func (s *TaskService) ReplaceTask(id uint64, input TaskInput) (*models.Task, error) {
	return s.UpdateTask(id, input.patch())
}

// UpdateTask merges the supplied fields into the stored task and validates
// the merged state before saving it
func (s *TaskService) UpdateTask(id uint64, patch TaskPatch) (*models.Task, error) {
	current, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	proposed := *current
	if err := s.merge(&proposed, patch); err != nil {
		return nil, err
	}

	if err := s.validate(current, &proposed); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(&proposed); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(id)
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(id uint64) error {
	if err := s.taskRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// GenerateTasksInput represents input for AI task generation
type GenerateTasksInput struct {
	Text string
}

// GenerateTasks asks the suggester for backlog tasks described by the text.
// Suggestions are checked like new backlog tasks and are not stored.
func (s *TaskService) GenerateTasks(ctx context.Context, input GenerateTasksInput) ([]models.Task, error) {
	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	suggestions, err := s.suggester.SuggestTasks(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(suggestions) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(suggestions) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	today := s.validator.Today()
	tasks := make([]models.Task, 0, len(suggestions))
	for i, suggestion := range suggestions {
		task := models.Task{
			Name:        suggestion.Name,
			Description: suggestion.Description,
			Status:      models.TaskStatusNotStarted,
			Order:       i,
		}
		if suggestion.Due != nil && !suggestion.Due.Before(today) {
			task.Due = suggestion.Due
		}

		if err := s.validate(nil, &task); err != nil {
			continue
		}
		tasks = append(tasks, task)
	}

	if len(tasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return tasks, nil
}

// merge applies the patch to task, resolving the sprint and assignee references.
func (s *TaskService) merge(task *models.Task, patch TaskPatch) error {
	if patch.Name != nil {
		task.Name = *patch.Name
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Order != nil {
		task.Order = *patch.Order
	}
	patch.Sprint.apply(&task.SprintID)
	patch.Started.apply(&task.Started)
	patch.Due.apply(&task.Due)
	patch.Completed.apply(&task.Completed)

	task.Sprint = nil
	if task.SprintID != nil {
		sprint, err := s.resolveSprint(*task.SprintID)
		if err != nil {
			return err
		}
		task.Sprint = sprint
	}

	if patch.Assigned.Set {
		task.AssignedID = nil
		task.Assigned = nil
		if patch.Assigned.Value != nil {
			user, err := s.resolveUser(*patch.Assigned.Value)
			if err != nil {
				return err
			}
			task.AssignedID = &user.ID
			task.Assigned = user
		}
	}

	return nil
}

func (s *TaskService) validate(current, proposed *models.Task) error {
	if err := checkName(proposed.Name); err != nil {
		return err
	}
	if !proposed.Status.Valid() {
		return &FieldError{Field: "status", Message: fmt.Sprintf("%q is not a valid choice.", proposed.Status)}
	}
	return s.validator.ValidateTask(current, proposed)
}

func (s *TaskService) resolveSprint(id uint64) (*models.Sprint, error) {
	sprint, err := s.sprintRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ReferenceError{Field: filters.TaskSprint, Value: strconv.FormatUint(id, 10)}
		}
		return nil, fmt.Errorf("failed to find sprint: %w", err)
	}
	return sprint, nil
}

func (s *TaskService) resolveUser(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ReferenceError{Field: filters.TaskAssigned, Value: username}
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
