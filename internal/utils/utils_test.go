package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginationFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/tasks?"+query, nil)
	return GetPaginationParams(c, 25, 100)
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, Limit: 25, Offset: 0}},
		{"page=3", PaginationParams{Page: 3, Limit: 25, Offset: 50}},
		{"page=2&page_size=10", PaginationParams{Page: 2, Limit: 10, Offset: 10}},
		{"page_size=1000", PaginationParams{Page: 1, Limit: 100, Offset: 0}},
		{"page_size=0", PaginationParams{Page: 1, Limit: 25, Offset: 0}},
		{"page=-4&page_size=abc", PaginationParams{Page: 1, Limit: 25, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, paginationFor(t, tt.query))
		})
	}
}

func TestPaginationParams_Neighbours(t *testing.T) {
	p := PaginationParams{Page: 2, Limit: 10, Offset: 10}

	assert.True(t, p.HasPrevious())
	assert.True(t, p.HasNext(21))
	assert.False(t, p.HasNext(20))
	assert.False(t, PaginationParams{Page: 1, Limit: 10}.HasPrevious())
}

func TestGenerateTokenKey(t *testing.T) {
	first, err := GenerateTokenKey()
	require.NoError(t, err)
	second, err := GenerateTokenKey()
	require.NoError(t, err)

	assert.Len(t, first, 40)
	assert.NotEqual(t, first, second)
}
