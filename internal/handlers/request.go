package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/services"
)

var jsonNull = []byte("null")

// missingFieldError reports a required field absent from a full update.
type missingFieldError struct {
	Field string
}

func (e *missingFieldError) Error() string {
	return fmt.Sprintf("%s: This field is required.", e.Field)
}

// payload keeps the raw JSON of each supplied field so partial updates can
// tell an absent field from an explicit null. Unknown and read-only fields
// are ignored.
type payload map[string]json.RawMessage

func readPayload(c *gin.Context) (payload, error) {
	var p payload
	if err := c.ShouldBindJSON(&p); err != nil {
		return nil, err
	}
	if p == nil {
		p = payload{}
	}
	return p, nil
}

func (p payload) has(field string) bool {
	_, ok := p[field]
	return ok
}

func (p payload) isNull(field string) bool {
	return bytes.Equal(bytes.TrimSpace(p[field]), jsonNull)
}

func (p payload) require(fields ...string) error {
	for _, field := range fields {
		if !p.has(field) {
			return &missingFieldError{Field: field}
		}
	}
	return nil
}

// decode reads a non-nullable field into dst. It reports whether the field was supplied.
func decode[T any](p payload, field, kind string, dst *T) (bool, error) {
	if !p.has(field) {
		return false, nil
	}
	if p.isNull(field) {
		return false, &services.FieldError{Field: field, Message: "This field may not be null."}
	}
	if err := json.Unmarshal(p[field], dst); err != nil {
		return false, &services.FieldError{Field: field, Message: fmt.Sprintf("Not a valid %s.", kind)}
	}
	return true, nil
}

// decodeNullable reads a field that may be cleared with null.
func decodeNullable[T any](p payload, field, kind string) (services.Nullable[T], error) {
	if !p.has(field) {
		return services.Nullable[T]{}, nil
	}
	if p.isNull(field) {
		return services.Null[T](), nil
	}
	var v T
	if err := json.Unmarshal(p[field], &v); err != nil {
		return services.Nullable[T]{}, &services.FieldError{Field: field, Message: fmt.Sprintf("Not a valid %s.", kind)}
	}
	return services.Some(v), nil
}

func optional[T any](p payload, field, kind string) (*T, error) {
	var v T
	ok, err := decode(p, field, kind, &v)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func decodeStatus(p payload) (*models.TaskStatus, error) {
	raw, err := optional[string](p, "status", "string")
	if err != nil || raw == nil {
		return nil, err
	}
	status, err := models.ParseTaskStatus(*raw)
	if err != nil {
		return nil, &services.FieldError{Field: "status", Message: fmt.Sprintf("%q is not a valid choice.", *raw)}
	}
	return &status, nil
}

func parseSprintPatch(p payload) (services.SprintPatch, error) {
	var patch services.SprintPatch
	var err error

	if patch.Name, err = optional[string](p, "name", "string"); err != nil {
		return patch, err
	}
	if patch.Description, err = optional[string](p, "description", "string"); err != nil {
		return patch, err
	}
	if patch.End, err = optional[models.Date](p, "end", "date (YYYY-MM-DD)"); err != nil {
		return patch, err
	}
	return patch, nil
}

// parseSprintInput reads a full representation; omitted optional fields take their defaults.
func parseSprintInput(p payload) (services.SprintInput, error) {
	if err := p.require("name", "end"); err != nil {
		return services.SprintInput{}, err
	}
	patch, err := parseSprintPatch(p)
	if err != nil {
		return services.SprintInput{}, err
	}

	input := services.SprintInput{Name: *patch.Name, End: *patch.End}
	if patch.Description != nil {
		input.Description = *patch.Description
	}
	return input, nil
}

func parseTaskPatch(p payload) (services.TaskPatch, error) {
	var patch services.TaskPatch
	var err error

	if patch.Name, err = optional[string](p, "name", "string"); err != nil {
		return patch, err
	}
	if patch.Description, err = optional[string](p, "description", "string"); err != nil {
		return patch, err
	}
	if patch.Status, err = decodeStatus(p); err != nil {
		return patch, err
	}
	if patch.Order, err = optional[int](p, "order", "integer"); err != nil {
		return patch, err
	}
	if patch.Sprint, err = decodeNullable[uint64](p, "sprint", "sprint id"); err != nil {
		return patch, err
	}
	if patch.Assigned, err = decodeNullable[string](p, "assigned", "username"); err != nil {
		return patch, err
	}
	if patch.Started, err = decodeNullable[models.Date](p, "started", "date (YYYY-MM-DD)"); err != nil {
		return patch, err
	}
	if patch.Due, err = decodeNullable[models.Date](p, "due", "date (YYYY-MM-DD)"); err != nil {
		return patch, err
	}
	if patch.Completed, err = decodeNullable[models.Date](p, "completed", "date (YYYY-MM-DD)"); err != nil {
		return patch, err
	}
	return patch, nil
}

// parseTaskInput reads a full representation; omitted optional fields take their defaults.
func parseTaskInput(p payload) (services.TaskInput, error) {
	if err := p.require("name"); err != nil {
		return services.TaskInput{}, err
	}
	patch, err := parseTaskPatch(p)
	if err != nil {
		return services.TaskInput{}, err
	}

	input := services.TaskInput{
		Name:      *patch.Name,
		Sprint:    patch.Sprint.Value,
		Assigned:  patch.Assigned.Value,
		Started:   patch.Started.Value,
		Due:       patch.Due.Value,
		Completed: patch.Completed.Value,
	}
	if patch.Description != nil {
		input.Description = *patch.Description
	}
	if patch.Status != nil {
		input.Status = *patch.Status
	}
	if patch.Order != nil {
		input.Order = *patch.Order
	}
	return input, nil
}
