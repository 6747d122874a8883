package filters

import (
	"github.com/yukikurage/scrum-board-api/internal/constants"
	"github.com/yukikurage/scrum-board-api/internal/models"
)

// Task filter parameters
const (
	TaskSprint   = "sprint"
	TaskStatus   = "status"
	TaskAssigned = "assigned"
	TaskBacklog  = "backlog"
)

// TaskFilters are the filters accepted by the task collection. The assigned
// filter compares the assignee's username, so in-memory matching needs the
// Assigned relation loaded.
var TaskFilters = FilterSet[models.Task]{
	Exact(TaskSprint, "tasks.sprint_id", ParseID, func(t models.Task) (uint64, bool) {
		if t.SprintID == nil {
			return 0, false
		}
		return *t.SprintID, true
	}),
	Exact(TaskStatus, "tasks.status", models.ParseTaskStatus, func(t models.Task) (models.TaskStatus, bool) {
		return t.Status, true
	}),
	Related(TaskAssigned, "tasks.assigned_id", "users", constants.UserIdentityField, func(t models.Task) (string, bool) {
		if t.Assigned == nil {
			return "", false
		}
		return t.Assigned.Username, true
	}),
	IsNull(TaskBacklog, "tasks.sprint_id", func(t models.Task) bool {
		return t.SprintID == nil
	}),
}

// TaskSearch covers the fields matched by ?search= on tasks.
var TaskSearch = Search{Columns: []string{"tasks.name", "tasks.description"}}

// TaskOrdering lists the fields accepted by ?ordering= on tasks.
var TaskOrdering = Ordering{
	Fields: map[string]string{
		"name":      "tasks.name",
		"order":     "tasks.sort_order",
		"started":   "tasks.started",
		"due":       "tasks.due",
		"completed": "tasks.completed",
	},
	Default:  "tasks.id",
	Tiebreak: "tasks.id",
}
