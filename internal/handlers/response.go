package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/constants"
	"github.com/yukikurage/scrum-board-api/internal/dto"
	apierrors "github.com/yukikurage/scrum-board-api/internal/errors"
	"github.com/yukikurage/scrum-board-api/internal/filters"
	"github.com/yukikurage/scrum-board-api/internal/logging"
	"github.com/yukikurage/scrum-board-api/internal/services"
	"github.com/yukikurage/scrum-board-api/internal/utils"
	"github.com/yukikurage/scrum-board-api/internal/validation"
)

// Listing holds the settings shared by list and detail responses
type Listing struct {
	// BaseURL overrides the scheme and host taken from the request
	BaseURL     string
	PageSize    int
	MaxPageSize int
}

// DefaultListing is used when no configuration is supplied
var DefaultListing = Listing{
	PageSize:    constants.DefaultPageSize,
	MaxPageSize: constants.MaxPageSize,
}

func (l Listing) baseURL(c *gin.Context) string {
	if l.BaseURL != "" {
		return l.BaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

func (l Listing) links(c *gin.Context) dto.Links {
	return dto.NewLinks(l.baseURL(c))
}

func (l Listing) pagination(c *gin.Context) utils.PaginationParams {
	return utils.GetPaginationParams(c, l.PageSize, l.MaxPageSize)
}

// requestURL is the absolute URL of the current request
func (l Listing) requestURL(c *gin.Context) *url.URL {
	u, err := url.Parse(dto.NewLinks(l.baseURL(c)).Base + c.Request.URL.RequestURI())
	if err != nil {
		return c.Request.URL
	}
	return u
}

func newPage[T any](l Listing, c *gin.Context, results []T, total int64, params utils.PaginationParams) dto.PageDTO[T] {
	return dto.NewPage(results, total, params, l.requestURL(c))
}

// respondError translates service, validation and filter errors into API errors
func respondError(c *gin.Context, err error) {
	var (
		validationErr *validation.Error
		fieldErr      *services.FieldError
		referenceErr  *services.ReferenceError
		filterErr     *filters.Error
		missingErr    *missingFieldError
	)

	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, validationErr)
	case errors.As(err, &fieldErr):
		apierrors.BadRequestWithDetails(c, fieldErr.Error(), apierrors.FieldDetails(fieldErr.Field, fieldErr.Message))
	case errors.As(err, &referenceErr):
		apierrors.ReferenceNotFound(c, referenceErr.Field, referenceErr.Error())
	case errors.As(err, &filterErr):
		apierrors.BadRequestWithDetails(c, filterErr.Error(), apierrors.FieldDetails(filterErr.Param, filterErr.Err.Error()))
	case errors.As(err, &missingErr):
		apierrors.MissingField(c, missingErr.Field)
	case errors.Is(err, services.ErrSprintNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAIUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.RespondWithError(c, http.StatusUnprocessableEntity, apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInactiveUser):
		apierrors.InvalidCredentials(c, "")
	default:
		logging.Logger.WithError(err).
			WithField("request_id", c.GetString(constants.ContextKeyRequest)).
			WithField("path", c.FullPath()).
			Error("request failed")
		apierrors.InternalError(c, "")
	}
}

// invalidBody answers a request whose body is not a JSON object
func invalidBody(c *gin.Context, err error) {
	apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.FieldDetails("", err.Error()))
}
