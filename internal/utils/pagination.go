package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// GetPaginationParams extracts page and page_size from the request.
// page_size falls back to defaultSize when missing or invalid and is capped at maxSize.
func GetPaginationParams(c *gin.Context, defaultSize, maxSize int) PaginationParams {
	page, err := strconv.Atoi(c.Query(constants.QueryPage))
	if err != nil || page < constants.MinPageSize {
		page = constants.MinPageSize
	}

	limit, err := strconv.Atoi(c.Query(constants.QueryPageSize))
	if err != nil || limit < constants.MinPageSize {
		limit = defaultSize
	}
	if limit > maxSize {
		limit = maxSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// HasNext reports whether another page follows for total results.
func (p PaginationParams) HasNext(total int64) bool {
	return int64(p.Offset+p.Limit) < total
}

// HasPrevious reports whether a page precedes this one.
func (p PaginationParams) HasPrevious() bool {
	return p.Page > constants.MinPageSize
}
