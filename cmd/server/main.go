package main

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/config"
	"github.com/yukikurage/scrum-board-api/internal/database"
	"github.com/yukikurage/scrum-board-api/internal/logging"
	"github.com/yukikurage/scrum-board-api/internal/server"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Init(cfg.LogFile, cfg.GinMode == gin.DebugMode)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logging.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logging.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		logging.Logger.Fatalf("Failed to create session store: %v", err)
	}

	svc, err := server.NewServices(database.GetDB(), cfg, nil)
	if err != nil {
		logging.Logger.Fatalf("Failed to initialize services: %v", err)
	}

	r := server.NewRouter(svc, store, server.ListingFromConfig(cfg))

	// Start server
	logging.Logger.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logging.Logger.Fatalf("Failed to start server: %v", err)
	}
}

// newSessionStore keeps sessions in Redis when REDIS_HOST is set and in
// signed cookies otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
		logging.Logger.WithField("addr", redisAddr).Info("using redis session store")
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
		logging.Logger.Info("REDIS_HOST not set, using cookie session store")
	}

	// Configure session options based on environment
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	return store, nil
}
