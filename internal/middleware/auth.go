package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/constants"
	apierrors "github.com/yukikurage/scrum-board-api/internal/errors"
	"github.com/yukikurage/scrum-board-api/internal/logging"
	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/services"
)

const tokenScheme = "Token "

// Authenticator resolves request credentials to a user
type Authenticator interface {
	Login(input services.LoginInput) (*models.User, error)
	AuthenticateToken(key string) (*models.User, error)
	GetUser(id uint64) (*models.User, error)
}

// RequireAuth accepts a session cookie, an "Authorization: Token <key>"
// header or HTTP Basic credentials. Only active users pass.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, auth)
		if err != nil {
			logging.Logger.WithError(err).WithField(constants.ContextKeyRequest, c.GetString(constants.ContextKeyRequest)).
				Debug("authentication failed")
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if user == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// authenticate returns a nil user without error when no credentials are present.
func authenticate(c *gin.Context, auth Authenticator) (*models.User, error) {
	header := c.GetHeader("Authorization")

	if strings.HasPrefix(header, tokenScheme) {
		return auth.AuthenticateToken(strings.TrimSpace(strings.TrimPrefix(header, tokenScheme)))
	}

	if username, password, ok := c.Request.BasicAuth(); ok {
		return auth.Login(services.LoginInput{Username: username, Password: password})
	}

	session := sessions.Default(c)
	id, ok := sessionUserID(session.Get(constants.ContextKeyUserID))
	if !ok {
		return nil, nil
	}

	user, err := auth.GetUser(id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, services.ErrInactiveUser
	}
	return user, nil
}

func sessionUserID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return sessionUserID(userID)
}
