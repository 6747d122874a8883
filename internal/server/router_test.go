package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/scrum-board-api/internal/config"
	"github.com/yukikurage/scrum-board-api/internal/database"
	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/services"
	"github.com/yukikurage/scrum-board-api/internal/validation"
)

var now = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func day(offset int) string {
	return models.DateOf(now).AddDays(offset).String()
}

// APITestSuite drives the full router against an in-memory database
type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	svc    Services
	token  string
}

type response struct {
	Code int
	Body map[string]any
	Raw  *httptest.ResponseRecorder
}

func (suite *APITestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(database.MigrateDatabase(suite.db))

	cfg := &config.Config{TimeZone: "UTC", PageSize: 2, MaxPageSize: 3}
	suite.svc, err = NewServices(suite.db, cfg, validation.FixedClock(now))
	suite.Require().NoError(err)

	gin.SetMode(gin.TestMode)
	suite.router = NewRouter(suite.svc, cookie.NewStore([]byte("test-secret")), ListingFromConfig(cfg))

	for _, username := range []string{"alice", "bob"} {
		_, err := suite.svc.Auth.CreateUser(services.CreateUserInput{
			Username:  username,
			Password:  "password-" + username,
			FirstName: "First",
			LastName:  username,
		})
		suite.Require().NoError(err)
	}

	token, err := suite.svc.Auth.CreateToken("alice", false)
	suite.Require().NoError(err)
	suite.token = token.Key
}

func (suite *APITestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *APITestSuite) request(method, path string, body any, headers map[string]string) response {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, "http://board.test"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	res := response{Code: w.Code, Raw: w}
	if w.Body.Len() > 0 {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res.Body), w.Body.String())
	}
	return res
}

func (suite *APITestSuite) do(method, path string, body any) response {
	return suite.request(method, path, body, map[string]string{"Authorization": "Token " + suite.token})
}

func (suite *APITestSuite) createSprint(name string, endOffset int) uint64 {
	res := suite.do(http.MethodPost, "/api/sprints", map[string]any{"name": name, "end": day(endOffset)})
	suite.Require().Equal(http.StatusCreated, res.Code, res.Body)
	return uint64(res.Body["id"].(float64))
}

// insertEndedSprint bypasses validation to store a sprint that already ended.
func (suite *APITestSuite) insertEndedSprint(name string) uint64 {
	sprint := &models.Sprint{Name: name, End: models.DateOf(now).AddDays(-3)}
	suite.Require().NoError(suite.db.Create(sprint).Error)
	return sprint.ID
}

func (suite *APITestSuite) createTask(body map[string]any) map[string]any {
	res := suite.do(http.MethodPost, "/api/tasks", body)
	suite.Require().Equal(http.StatusCreated, res.Code, res.Body)
	return res.Body
}

func (suite *APITestSuite) assertRejected(res response, code, field string) {
	suite.Equal(http.StatusBadRequest, res.Code, res.Body)
	suite.Equal(code, res.Body["code"])
	details, ok := res.Body["details"].(map[string]any)
	suite.Require().True(ok, res.Body)
	suite.Contains(details, field)
}

func results(res response) []map[string]any {
	raw, _ := res.Body["results"].([]any)
	items := make([]map[string]any, len(raw))
	for i, r := range raw {
		items[i] = r.(map[string]any)
	}
	return items
}

func names(res response) []string {
	var out []string
	for _, item := range results(res) {
		out = append(out, item["name"].(string))
	}
	return out
}

func (suite *APITestSuite) TestHealth() {
	res := suite.request(http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, res.Code)
	suite.Equal("ok", res.Body["status"])
}

func (suite *APITestSuite) TestAuthenticationRequired() {
	res := suite.request(http.MethodGet, "/api/sprints", nil, nil)
	suite.Equal(http.StatusUnauthorized, res.Code)

	res = suite.request(http.MethodGet, "/api/sprints", nil, map[string]string{"Authorization": "Token nope"})
	suite.Equal(http.StatusUnauthorized, res.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.SetBasicAuth("bob", "password-bob")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestObtainToken() {
	res := suite.request(http.MethodPost, "/api/token", map[string]string{"username": "alice", "password": "password-alice"}, nil)
	suite.Require().Equal(http.StatusOK, res.Code)
	suite.Equal(suite.token, res.Body["token"])

	res = suite.request(http.MethodPost, "/api/token", map[string]string{"username": "alice", "password": "wrong"}, nil)
	suite.Equal(http.StatusUnauthorized, res.Code)

	_, err := suite.svc.Auth.SetActive("bob", false)
	suite.Require().NoError(err)
	res = suite.request(http.MethodPost, "/api/token", map[string]string{"username": "bob", "password": "password-bob"}, nil)
	suite.Equal(http.StatusUnauthorized, res.Code)
}

func (suite *APITestSuite) TestSessionLogin() {
	res := suite.request(http.MethodPost, "/api/auth/login", map[string]string{"username": "bob", "password": "password-bob"}, nil)
	suite.Require().Equal(http.StatusOK, res.Code)
	suite.Equal("bob", res.Body["username"])

	cookies := res.Raw.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"full_name":"First bob"`)
}

func (suite *APITestSuite) TestCreateSprintInPastRejected() {
	res := suite.do(http.MethodPost, "/api/sprints", map[string]any{"name": "Late", "end": day(-1)})
	suite.assertRejected(res, "END_DATE_IN_PAST", "end")

	res = suite.do(http.MethodGet, "/api/sprints", nil)
	suite.Equal(float64(0), res.Body["count"])
}

func (suite *APITestSuite) TestSprintRepresentation() {
	id := suite.createSprint("Sprint 1", 7)

	res := suite.do(http.MethodGet, fmt.Sprintf("/api/sprints/%d", id), nil)
	suite.Require().Equal(http.StatusOK, res.Code)
	suite.Equal("Sprint 1", res.Body["name"])
	suite.Equal(day(7), res.Body["end"])
	suite.Equal(map[string]any{
		"self":  fmt.Sprintf("http://board.test/api/sprints/%d", id),
		"tasks": fmt.Sprintf("http://board.test/api/tasks?sprint=%d", id),
	}, res.Body["links"])

	res = suite.do(http.MethodGet, "/api/sprints/999", nil)
	suite.Equal(http.StatusNotFound, res.Code)
	res = suite.do(http.MethodGet, "/api/sprints/abc", nil)
	suite.Equal(http.StatusNotFound, res.Code)
}

func (suite *APITestSuite) TestSprintUpdateKeepingPastEnd() {
	id := suite.insertEndedSprint("Old")

	res := suite.do(http.MethodPatch, fmt.Sprintf("/api/sprints/%d", id), map[string]any{"description": "retro notes"})
	suite.Require().Equal(http.StatusOK, res.Code, res.Body)
	suite.Equal("retro notes", res.Body["description"])

	res = suite.do(http.MethodPut, fmt.Sprintf("/api/sprints/%d", id), map[string]any{"name": "Old", "end": day(-3)})
	suite.Equal(http.StatusOK, res.Code, res.Body)
	suite.Equal("", res.Body["description"])

	res = suite.do(http.MethodPatch, fmt.Sprintf("/api/sprints/%d", id), map[string]any{"end": day(-2)})
	suite.assertRejected(res, "END_DATE_IN_PAST", "end")

	res = suite.do(http.MethodPut, fmt.Sprintf("/api/sprints/%d", id), map[string]any{"name": "Old"})
	suite.assertRejected(res, "MISSING_FIELD", "end")
}

func (suite *APITestSuite) TestSprintDateRangeFilter() {
	suite.createSprint("A", 1)
	suite.createSprint("B", 5)
	suite.createSprint("C", 10)

	res := suite.do(http.MethodGet, fmt.Sprintf("/api/sprints?end_min=%s&end_max=%s", day(2), day(10)), nil)
	suite.Require().Equal(http.StatusOK, res.Code)
	suite.Equal([]string{"B", "C"}, names(res))

	res = suite.do(http.MethodGet, "/api/sprints?end_min=yesterday", nil)
	suite.assertRejected(res, "INVALID_INPUT", "end_min")
}

func (suite *APITestSuite) TestSprintDeleteRemovesTasks() {
	id := suite.createSprint("Doomed", 3)
	task := suite.createTask(map[string]any{"name": "Inside", "sprint": id})

	res := suite.do(http.MethodDelete, fmt.Sprintf("/api/sprints/%d", id), nil)
	suite.Equal(http.StatusNoContent, res.Code)

	res = suite.do(http.MethodGet, fmt.Sprintf("/api/tasks/%.0f", task["id"]), nil)
	suite.Equal(http.StatusNotFound, res.Code)

	res = suite.do(http.MethodDelete, fmt.Sprintf("/api/sprints/%d", id), nil)
	suite.Equal(http.StatusNotFound, res.Code)
}

func (suite *APITestSuite) TestBacklogTaskMustNotStart() {
	res := suite.do(http.MethodPost, "/api/tasks", map[string]any{"name": "Idea", "status": "IN_PROGRESS"})
	suite.assertRejected(res, "BACKLOG_MUST_BE_NOT_STARTED", "non_field_errors")

	res = suite.do(http.MethodGet, "/api/tasks", nil)
	suite.Equal(float64(0), res.Body["count"])
}

func (suite *APITestSuite) TestDoneTaskLifecycle() {
	s1 := suite.createSprint("S1", 7)
	s2 := suite.createSprint("S2", 14)

	task := suite.createTask(map[string]any{
		"name":      "Ship",
		"sprint":    s1,
		"status":    "DONE",
		"completed": day(0),
		"assigned":  "alice",
	})
	suite.Equal("Done", task["status_display"])
	suite.Equal("alice", task["assigned"])
	links := task["links"].(map[string]any)
	suite.Equal(fmt.Sprintf("http://board.test/api/sprints/%d", s1), links["sprint"])
	suite.Equal("http://board.test/api/users/alice", links["assigned"])

	path := fmt.Sprintf("/api/tasks/%.0f", task["id"])

	res := suite.do(http.MethodPatch, path, map[string]any{"sprint": s2})
	suite.assertRejected(res, "SPRINT_CHANGE_AFTER_COMPLETION", "sprint")

	res = suite.do(http.MethodPatch, path, map[string]any{"completed": nil})
	suite.assertRejected(res, "DONE_WITHOUT_COMPLETED_DATE", "non_field_errors")

	res = suite.do(http.MethodGet, path, nil)
	suite.Equal(float64(s1), res.Body["sprint"])
	suite.Equal(day(0), res.Body["completed"])

	res = suite.do(http.MethodPatch, path, map[string]any{"status": "IN_PROGRESS", "completed": nil, "started": day(0)})
	suite.Require().Equal(http.StatusOK, res.Code, res.Body)
	suite.Equal("In Progress", res.Body["status_display"])
}

func (suite *APITestSuite) TestTaskInEndedSprintRejected() {
	ended := suite.insertEndedSprint("Ended")

	res := suite.do(http.MethodPost, "/api/tasks", map[string]any{"name": "Late", "sprint": ended})
	suite.assertRejected(res, "SPRINT_ENDED", "sprint")
}

func (suite *APITestSuite) TestUnknownReferences() {
	res := suite.do(http.MethodPost, "/api/tasks", map[string]any{"name": "Orphan", "sprint": 404})
	suite.assertRejected(res, "NOT_FOUND", "sprint")

	res = suite.do(http.MethodPost, "/api/tasks", map[string]any{"name": "Orphan", "assigned": "ghost"})
	suite.assertRejected(res, "NOT_FOUND", "assigned")

	res = suite.do(http.MethodGet, "/api/tasks?assigned=ghost", nil)
	suite.assertRejected(res, "NOT_FOUND", "assigned")
}

func (suite *APITestSuite) TestMalformedPayloads() {
	res := suite.do(http.MethodPost, "/api/tasks", "not json")
	suite.Equal(http.StatusBadRequest, res.Code)
	suite.Equal("INVALID_INPUT", res.Body["code"])

	res = suite.do(http.MethodPost, "/api/tasks", map[string]any{"description": "no name"})
	suite.assertRejected(res, "MISSING_FIELD", "name")

	res = suite.do(http.MethodPost, "/api/tasks", map[string]any{"name": "x", "status": "BLOCKED"})
	suite.assertRejected(res, "INVALID_INPUT", "status")

	res = suite.do(http.MethodPost, "/api/tasks", map[string]any{"name": "x", "due": "next week"})
	suite.assertRejected(res, "INVALID_INPUT", "due")

	res = suite.do(http.MethodPost, "/api/tasks", map[string]any{"name": ""})
	suite.assertRejected(res, "INVALID_INPUT", "name")
}

func (suite *APITestSuite) TestTaskFilters() {
	s1 := suite.createSprint("S1", 7)
	suite.createTask(map[string]any{"name": "alpha", "sprint": s1, "assigned": "alice", "order": 2})
	suite.createTask(map[string]any{"name": "beta", "sprint": s1, "assigned": "bob", "order": 1})
	suite.createTask(map[string]any{"name": "gamma", "assigned": "alice"})

	res := suite.do(http.MethodGet, "/api/tasks?assigned=alice", nil)
	suite.ElementsMatch([]string{"alpha", "gamma"}, names(res))

	res = suite.do(http.MethodGet, "/api/tasks?backlog=true", nil)
	suite.Equal([]string{"gamma"}, names(res))

	res = suite.do(http.MethodGet, "/api/tasks?backlog=false&ordering=order", nil)
	suite.Equal([]string{"beta", "alpha"}, names(res))

	res = suite.do(http.MethodGet, fmt.Sprintf("/api/tasks?sprint=%d&assigned=bob", s1), nil)
	suite.Equal([]string{"beta"}, names(res))

	res = suite.do(http.MethodGet, "/api/tasks?search=AMM&unknown=1", nil)
	suite.Equal([]string{"gamma"}, names(res))

	res = suite.do(http.MethodGet, "/api/tasks?backlog=maybe", nil)
	suite.assertRejected(res, "INVALID_INPUT", "backlog")
}

func (suite *APITestSuite) TestPagination() {
	for _, name := range []string{"t1", "t2", "t3"} {
		suite.createTask(map[string]any{"name": name})
	}

	res := suite.do(http.MethodGet, "/api/tasks?search=t", nil)
	suite.Equal(float64(3), res.Body["count"])
	suite.Equal([]string{"t1", "t2"}, names(res))
	suite.Equal("http://board.test/api/tasks?page=2&search=t", res.Body["next"])
	suite.Nil(res.Body["previous"])

	res = suite.do(http.MethodGet, "/api/tasks?page=2&search=t", nil)
	suite.Equal([]string{"t3"}, names(res))
	suite.Nil(res.Body["next"])
	suite.Equal("http://board.test/api/tasks?search=t", res.Body["previous"])

	res = suite.do(http.MethodGet, "/api/tasks?page_size=50", nil)
	suite.Len(results(res), 3)

	res = suite.do(http.MethodGet, "/api/tasks?page=9", nil)
	suite.Equal(http.StatusOK, res.Code)
	suite.Empty(results(res))
}

func (suite *APITestSuite) TestUsers() {
	res := suite.do(http.MethodGet, "/api/users", nil)
	suite.Require().Equal(http.StatusOK, res.Code)
	users := results(res)
	suite.Require().Len(users, 2)
	suite.Equal("alice", users[0]["username"])
	suite.Equal("First alice", users[0]["full_name"])
	suite.NotContains(users[0], "password_hash")
	suite.Equal("http://board.test/api/tasks?assigned=alice", users[0]["links"].(map[string]any)["tasks"])

	res = suite.do(http.MethodGet, "/api/users/bob", nil)
	suite.Equal(http.StatusOK, res.Code)
	suite.Equal("bob", res.Body["username"])

	res = suite.do(http.MethodGet, "/api/users/carol", nil)
	suite.Equal(http.StatusNotFound, res.Code)
}

func (suite *APITestSuite) TestGenerateTasksWithoutAI() {
	res := suite.do(http.MethodPost, "/api/tasks/generate", map[string]any{"text": "plan the release"})
	suite.Equal(http.StatusServiceUnavailable, res.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
