package filters

import "github.com/yukikurage/scrum-board-api/internal/models"

// Sprint filter parameters
const (
	SprintEndMin = "end_min"
	SprintEndMax = "end_max"
)

var SprintFilters = FilterSet[models.Sprint]{
	DateBound(SprintEndMin, "sprints.end_date", Min, sprintEnd),
	DateBound(SprintEndMax, "sprints.end_date", Max, sprintEnd),
}

var SprintSearch = Search{Columns: []string{"sprints.name"}}

var SprintOrdering = Ordering{
	Fields: map[string]string{
		"end":  "sprints.end_date",
		"name": "sprints.name",
	},
	Default:  "sprints.end_date",
	Tiebreak: "sprints.id",
}

func sprintEnd(s models.Sprint) (models.Date, bool) {
	return s.End, !s.End.IsZero()
}
