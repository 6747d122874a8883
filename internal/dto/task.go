package dto

import "github.com/yukikurage/scrum-board-api/internal/models"

// TaskLinksDTO holds the related resource URLs of a task
type TaskLinksDTO struct {
	Self     string  `json:"self"`
	Sprint   *string `json:"sprint"`
	Assigned *string `json:"assigned"`
}

// TaskDTO represents a task in API responses. Sprint is the sprint id and
// Assigned the assignee's username.
type TaskDTO struct {
	ID            uint64            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Sprint        *uint64           `json:"sprint"`
	Status        models.TaskStatus `json:"status"`
	StatusDisplay string            `json:"status_display"`
	Order         int               `json:"order"`
	Assigned      *string           `json:"assigned"`
	Started       *models.Date      `json:"started"`
	Due           *models.Date      `json:"due"`
	Completed     *models.Date      `json:"completed"`
	Links         TaskLinksDTO      `json:"links"`
}

// SuggestedTaskDTO represents an unsaved task proposed by the AI assistant
type SuggestedTaskDTO struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Status        models.TaskStatus `json:"status"`
	StatusDisplay string            `json:"status_display"`
	Order         int               `json:"order"`
	Due           *models.Date      `json:"due"`
}

// ToTaskDTO converts a Task model to TaskDTO. The Assigned relation must be
// loaded when the task has an assignee.
func ToTaskDTO(task models.Task, links Links) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Name:          task.Name,
		Description:   task.Description,
		Sprint:        task.SprintID,
		Status:        task.Status,
		StatusDisplay: task.Status.Display(),
		Order:         task.Order,
		Started:       task.Started,
		Due:           task.Due,
		Completed:     task.Completed,
		Links: TaskLinksDTO{
			Self: links.Task(task.ID),
		},
	}

	if task.SprintID != nil {
		sprint := links.Sprint(*task.SprintID)
		dto.Links.Sprint = &sprint
	}

	if task.Assigned != nil {
		username := task.Assigned.Username
		assigned := links.User(username)
		dto.Assigned = &username
		dto.Links.Assigned = &assigned
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task, links Links) []TaskDTO {
	result := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		result[i] = ToTaskDTO(task, links)
	}
	return result
}

// ToSuggestedTaskDTOs converts unsaved tasks
func ToSuggestedTaskDTOs(tasks []models.Task) []SuggestedTaskDTO {
	result := make([]SuggestedTaskDTO, len(tasks))
	for i, task := range tasks {
		result[i] = SuggestedTaskDTO{
			Name:          task.Name,
			Description:   task.Description,
			Status:        task.Status,
			StatusDisplay: task.Status.Display(),
			Order:         task.Order,
			Due:           task.Due,
		}
	}
	return result
}
