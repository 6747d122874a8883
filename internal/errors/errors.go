package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/validation"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeMissingField = "MISSING_FIELD"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// FieldDetails keys a single message by field name
func FieldDetails(field, message string) map[string][]string {
	if field == "" {
		field = validation.NonFieldKey
	}
	return map[string][]string{field: {message}}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication credentials were not provided."
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// InvalidCredentials sends a 401 response for rejected credentials
func InvalidCredentials(c *gin.Context, message string) {
	if message == "" {
		message = "Unable to log in with provided credentials."
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeInvalidCredentials, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found."
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// MissingField sends a 400 response for a required field absent from the body
func MissingField(c *gin.Context, field string) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(
		ErrCodeMissingField, "This field is required.", FieldDetails(field, "This field is required.")))
}

// ReferenceNotFound sends a 400 response for a payload or filter value
// naming a sprint or user that does not exist
func ReferenceNotFound(c *gin.Context, field, message string) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(
		ErrCodeNotFound, message, FieldDetails(field, message)))
}

// ValidationFailed sends a 400 response carrying the violated rule as code
func ValidationFailed(c *gin.Context, err *validation.Error) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(
		string(err.Rule), err.Message, err.Details()))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}
