package dto

import "github.com/yukikurage/scrum-board-api/internal/models"

// SprintLinksDTO holds the related resource URLs of a sprint
type SprintLinksDTO struct {
	Self  string `json:"self"`
	Tasks string `json:"tasks"`
}

// SprintDTO represents a sprint in API responses
type SprintDTO struct {
	ID          uint64         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	End         models.Date    `json:"end"`
	Links       SprintLinksDTO `json:"links"`
}

// ToSprintDTO converts a Sprint model to SprintDTO
func ToSprintDTO(sprint models.Sprint, links Links) SprintDTO {
	return SprintDTO{
		ID:          sprint.ID,
		Name:        sprint.Name,
		Description: sprint.Description,
		End:         sprint.End,
		Links: SprintLinksDTO{
			Self:  links.Sprint(sprint.ID),
			Tasks: links.SprintTasks(sprint.ID),
		},
	}
}

// ToSprintDTOs converts a slice of Sprint models
func ToSprintDTOs(sprints []models.Sprint, links Links) []SprintDTO {
	result := make([]SprintDTO, len(sprints))
	for i, sprint := range sprints {
		result[i] = ToSprintDTO(sprint, links)
	}
	return result
}
