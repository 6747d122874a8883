package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/scrum-board-api/internal/validation"
)

func respond(t *testing.T, fn func(c *gin.Context)) (int, map[string]any) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestValidationFailed(t *testing.T) {
	status, body := respond(t, func(c *gin.Context) {
		ValidationFailed(c, validation.ErrDoneWithoutCompletedDate)
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "DONE_WITHOUT_COMPLETED_DATE", body["code"])
	assert.Equal(t, map[string]any{
		"non_field_errors": []any{"Completed tasks must have a completed date."},
	}, body["details"])
}

func TestReferenceNotFound(t *testing.T) {
	status, body := respond(t, func(c *gin.Context) {
		ReferenceNotFound(c, "assigned", "Invalid assigned \"ghost\" - object does not exist.")
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ErrCodeNotFound, body["code"])
	assert.Contains(t, body["details"], "assigned")
}

func TestDefaultMessages(t *testing.T) {
	status, body := respond(t, func(c *gin.Context) { NotFound(c, "") })
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found.", body["message"])
	assert.NotContains(t, body, "details")

	status, body = respond(t, func(c *gin.Context) { Unauthorized(c, "") })
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, ErrCodeUnauthorized, body["code"])
}
