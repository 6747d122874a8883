package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/scrum-board-api/internal/constants"
)

var (
	ErrSprintNotFound = errors.New("sprint not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrUserNotFound   = errors.New("user not found")

	// ErrReferenceNotFound is matched by every ReferenceError.
	ErrReferenceNotFound = errors.New("referenced object does not exist")
)

// FieldError reports a malformed field of a write request.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReferenceError reports a payload or filter value pointing at a missing sprint or user.
type ReferenceError struct {
	Field string
	Value string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Invalid %s %q - object does not exist.", e.Field, e.Value)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// checkName enforces the non-empty, bounded name shared by sprints and tasks.
func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "name", Message: "This field may not be blank."}
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLength {
		return &FieldError{
			Field:   "name",
			Message: fmt.Sprintf("Ensure this field has no more than %d characters.", constants.MaxNameLength),
		}
	}
	return nil
}
