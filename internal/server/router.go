package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/constants"
	"github.com/yukikurage/scrum-board-api/internal/handlers"
	"github.com/yukikurage/scrum-board-api/internal/middleware"
	"github.com/yukikurage/scrum-board-api/internal/services"
)

// Services groups the business services served over HTTP.
type Services struct {
	Sprints *services.SprintService
	Tasks   *services.TaskService
	Users   *services.UserService
	Auth    *services.AuthService
}

// NewRouter constructs the gin engine with middleware and every route configured.
func NewRouter(svc Services, store sessions.Store, listing handlers.Listing) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	authHandler := handlers.NewAuthHandler(svc.Auth, listing)
	sprintHandler := handlers.NewSprintHandler(svc.Sprints, listing)
	taskHandler := handlers.NewTaskHandler(svc.Tasks, listing)
	userHandler := handlers.NewUserHandler(svc.Users, listing)

	requireAuth := middleware.RequireAuth(svc.Auth)
	requireID := middleware.RequireResourceID()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Scrum Board API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/token", authHandler.ObtainToken)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		sprints := api.Group("/sprints")
		sprints.Use(requireAuth)
		{
			sprints.GET("", sprintHandler.ListSprints)
			sprints.POST("", sprintHandler.CreateSprint)
			sprints.GET("/:id", requireID, sprintHandler.GetSprint)
			sprints.PUT("/:id", requireID, sprintHandler.ReplaceSprint)
			sprints.PATCH("/:id", requireID, sprintHandler.UpdateSprint)
			sprints.DELETE("/:id", requireID, sprintHandler.DeleteSprint)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.GET("/:id", requireID, taskHandler.GetTask)
			tasks.PUT("/:id", requireID, taskHandler.ReplaceTask)
			tasks.PATCH("/:id", requireID, taskHandler.UpdateTask)
			tasks.DELETE("/:id", requireID, taskHandler.DeleteTask)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:"+constants.UserIdentityField, userHandler.GetUser)
		}
	}

	return r
}
