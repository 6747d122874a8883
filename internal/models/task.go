package models

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

var taskStatusDisplay = map[TaskStatus]string{
	TaskStatusNotStarted: "Not Started",
	TaskStatusInProgress: "In Progress",
	TaskStatusDone:       "Done",
}

// ParseTaskStatus accepts the exact enumeration value.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%q is not a valid status", s)
	}
	return status, nil
}

func (s TaskStatus) Valid() bool {
	_, ok := taskStatusDisplay[s]
	return ok
}

// Display returns the human readable label of the status.
func (s TaskStatus) Display() string {
	if label, ok := taskStatusDisplay[s]; ok {
		return label
	}
	return string(s)
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	SprintID    *uint64    `gorm:"index" json:"sprint_id"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'NOT_STARTED';index" json:"status"`
	Order       int        `gorm:"column:sort_order;not null" json:"order"`
	AssignedID  *uint64    `gorm:"index" json:"assigned_id"`
	Started     *Date      `json:"started"`
	Due         *Date      `json:"due"`
	Completed   *Date      `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Sprint   *Sprint `gorm:"foreignKey:SprintID" json:"sprint,omitempty"`
	Assigned *User   `gorm:"foreignKey:AssignedID" json:"assigned,omitempty"`
}

// InBacklog reports whether the task has no sprint.
func (t Task) InBacklog() bool {
	return t.SprintID == nil
}
