package dto

import "github.com/yukikurage/scrum-board-api/internal/models"

// UserLinksDTO holds the related resource URLs of a user
type UserLinksDTO struct {
	Self  string `json:"self"`
	Tasks string `json:"tasks"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64       `json:"id"`
	Username string       `json:"username"`
	FullName string       `json:"full_name"`
	IsActive bool         `json:"is_active"`
	Links    UserLinksDTO `json:"links"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User, links Links) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName(),
		IsActive: user.IsActive,
		Links: UserLinksDTO{
			Self:  links.User(user.Username),
			Tasks: links.UserTasks(user.Username),
		},
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User, links Links) []UserDTO {
	result := make([]UserDTO, len(users))
	for i, user := range users {
		result[i] = ToUserDTO(user, links)
	}
	return result
}

// TokenDTO is the response of a token request
type TokenDTO struct {
	Token string `json:"token"`
}
