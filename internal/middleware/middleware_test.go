package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/scrum-board-api/internal/constants"
	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/services"
)

type fakeAuthenticator struct {
	users map[uint64]*models.User
}

func (f fakeAuthenticator) byName(username string) *models.User {
	for _, u := range f.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (f fakeAuthenticator) Login(input services.LoginInput) (*models.User, error) {
	user := f.byName(input.Username)
	if user == nil || input.Password != "secret-"+input.Username {
		return nil, services.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, services.ErrInactiveUser
	}
	return user, nil
}

func (f fakeAuthenticator) AuthenticateToken(key string) (*models.User, error) {
	user := f.byName(key)
	if user == nil {
		return nil, services.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, services.ErrInactiveUser
	}
	return user, nil
}

func (f fakeAuthenticator) GetUser(id uint64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return user, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	auth := fakeAuthenticator{users: map[uint64]*models.User{
		1: {ID: 1, Username: "alice", IsActive: true},
		2: {ID: 2, Username: "mallory", IsActive: false},
	}}

	router := gin.New()
	router.Use(RequestLogger())
	router.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("test-secret"))))

	// Test helper that starts a session for the user id in the path
	router.GET("/login/:id", func(c *gin.Context) {
		session := sessions.Default(c)
		if c.Param("id") == "1" {
			session.Set(constants.ContextKeyUserID, uint64(1))
		} else {
			session.Set(constants.ContextKeyUserID, uint64(2))
		}
		_ = session.Save()
		c.Status(http.StatusNoContent)
	})

	router.GET("/me", RequireAuth(auth), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	router.GET("/items/:id", RequireResourceID(), func(c *gin.Context) {
		id, _ := GetResourceID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	return router
}

func TestRequireAuthWithoutCredentials(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequireAuthWithToken(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token alice")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]uint64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint64(1), body["user_id"])

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token mallory")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthWithBasic(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.SetBasicAuth("alice", "secret-alice")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.SetBasicAuth("alice", "guess")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthWithSession(t *testing.T) {
	router := newRouter()

	for _, tt := range []struct {
		id   string
		want int
	}{
		{"1", http.StatusOK},
		{"2", http.StatusUnauthorized},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/"+tt.id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		for _, cookie := range w.Result().Cookies() {
			req.AddCookie(cookie)
		}
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "session user %s", tt.id)
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(requestIDHeader, "req-123")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
}

func TestRequireResourceID(t *testing.T) {
	router := newRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
