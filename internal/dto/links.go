package dto

import (
	"fmt"
	"net/url"
	"strings"
)

// Links builds absolute resource URLs from the public base URL of the API
type Links struct {
	Base string
}

// NewLinks trims a trailing slash so paths join cleanly
func NewLinks(base string) Links {
	return Links{Base: strings.TrimSuffix(base, "/")}
}

func (l Links) Sprint(id uint64) string {
	return fmt.Sprintf("%s/api/sprints/%d", l.Base, id)
}

func (l Links) Task(id uint64) string {
	return fmt.Sprintf("%s/api/tasks/%d", l.Base, id)
}

func (l Links) User(username string) string {
	return fmt.Sprintf("%s/api/users/%s", l.Base, url.PathEscape(username))
}

// SprintTasks lists the tasks of a sprint
func (l Links) SprintTasks(id uint64) string {
	return fmt.Sprintf("%s/api/tasks?sprint=%d", l.Base, id)
}

// UserTasks lists the tasks assigned to a user
func (l Links) UserTasks(username string) string {
	return fmt.Sprintf("%s/api/tasks?assigned=%s", l.Base, url.QueryEscape(username))
}
