package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/constants"
	apierrors "github.com/yukikurage/scrum-board-api/internal/errors"
)

// RequireResourceID parses the :id path parameter. Identifiers that are not
// numbers cannot name a resource, so they are reported as not found.
func RequireResourceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.NotFound(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyID, id)
		c.Next()
	}
}

// GetResourceID retrieves the parsed :id parameter from context
func GetResourceID(c *gin.Context) (uint64, bool) {
	id, exists := c.Get(constants.ContextKeyID)
	if !exists {
		return 0, false
	}
	v, ok := id.(uint64)
	return v, ok
}
