package dto

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/utils"
)

var links = NewLinks("http://board.test/")

func TestToTaskDTO(t *testing.T) {
	sprintID := uint64(3)
	task := models.Task{
		ID:        7,
		Name:      "Ship it",
		SprintID:  &sprintID,
		Status:    models.TaskStatusDone,
		Completed: models.DatePtr(models.NewDate(2026, time.October, 17)),
		Assigned:  &models.User{ID: 2, Username: "alice"},
	}

	data, err := json.Marshal(ToTaskDTO(task, links))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 7,
		"name": "Ship it",
		"description": "",
		"sprint": 3,
		"status": "DONE",
		"status_display": "Done",
		"order": 0,
		"assigned": "alice",
		"started": null,
		"due": null,
		"completed": "2026-10-17",
		"links": {
			"self": "http://board.test/api/tasks/7",
			"sprint": "http://board.test/api/sprints/3",
			"assigned": "http://board.test/api/users/alice"
		}
	}`, string(data))
}

func TestToTaskDTOBacklog(t *testing.T) {
	dto := ToTaskDTO(models.Task{ID: 1, Name: "Idea", Status: models.TaskStatusNotStarted}, links)

	assert.Nil(t, dto.Sprint)
	assert.Nil(t, dto.Assigned)
	assert.Nil(t, dto.Links.Sprint)
	assert.Nil(t, dto.Links.Assigned)
	assert.Equal(t, "Not Started", dto.StatusDisplay)
}

func TestToSprintAndUserDTO(t *testing.T) {
	sprint := ToSprintDTO(models.Sprint{ID: 4, Name: "S4", End: models.NewDate(2026, time.November, 1)}, links)
	assert.Equal(t, "http://board.test/api/sprints/4", sprint.Links.Self)
	assert.Equal(t, "http://board.test/api/tasks?sprint=4", sprint.Links.Tasks)

	user := ToUserDTO(models.User{ID: 1, Username: "bob smith", FirstName: "Bob", IsActive: true}, links)
	assert.Equal(t, "Bob", user.FullName)
	assert.Equal(t, "http://board.test/api/users/bob%20smith", user.Links.Self)
	assert.Equal(t, "http://board.test/api/tasks?assigned=bob+smith", user.Links.Tasks)
}

func TestNewPage(t *testing.T) {
	requestURL, err := url.Parse("http://board.test/api/tasks?status=DONE&page=2&page_size=2")
	require.NoError(t, err)

	page := NewPage([]int{3, 4}, 5, utils.PaginationParams{Page: 2, Limit: 2, Offset: 2}, requestURL)
	assert.Equal(t, int64(5), page.Count)
	require.NotNil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://board.test/api/tasks?page=3&page_size=2&status=DONE", *page.Next)
	assert.Equal(t, "http://board.test/api/tasks?page_size=2&status=DONE", *page.Previous)

	last := NewPage[int](nil, 5, utils.PaginationParams{Page: 3, Limit: 2, Offset: 4}, requestURL)
	assert.Nil(t, last.Next)
	assert.NotNil(t, last.Results)
	assert.Empty(t, last.Results)
}
