package dto

import (
	"net/url"
	"strconv"

	"github.com/yukikurage/scrum-board-api/internal/constants"
	"github.com/yukikurage/scrum-board-api/internal/utils"
)

// PageDTO is the envelope of every list response
type PageDTO[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage wraps one page of results. requestURL is the absolute URL of the
// current request; neighbour links keep its other query parameters.
func NewPage[T any](results []T, total int64, params utils.PaginationParams, requestURL *url.URL) PageDTO[T] {
	page := PageDTO[T]{
		Count:   total,
		Results: results,
	}
	if page.Results == nil {
		page.Results = []T{}
	}

	if params.HasNext(total) {
		next := pageURL(requestURL, params.Page+1)
		page.Next = &next
	}
	if params.HasPrevious() {
		previous := pageURL(requestURL, params.Page-1)
		page.Previous = &previous
	}

	return page
}

// pageURL points at another page; the first page drops the page parameter.
func pageURL(requestURL *url.URL, page int) string {
	u := *requestURL
	query := u.Query()
	if page <= constants.MinPageSize {
		query.Del(constants.QueryPage)
	} else {
		query.Set(constants.QueryPage, strconv.Itoa(page))
	}
	u.RawQuery = query.Encode()
	return u.String()
}
