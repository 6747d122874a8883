package server

import (
	"fmt"
	"time"

	"github.com/yukikurage/scrum-board-api/internal/config"
	"github.com/yukikurage/scrum-board-api/internal/handlers"
	"github.com/yukikurage/scrum-board-api/internal/repository"
	"github.com/yukikurage/scrum-board-api/internal/services"
	"github.com/yukikurage/scrum-board-api/internal/validation"
	"gorm.io/gorm"
)

// NewServices wires repositories and services over db. clock may be nil to
// use the system clock.
func NewServices(db *gorm.DB, cfg *config.Config, clock validation.Clock) (Services, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return Services{}, fmt.Errorf("invalid TIME_ZONE %q: %w", cfg.TimeZone, err)
	}
	validator := validation.NewValidator(clock, loc)

	sprintRepo := repository.NewSprintRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Initialize AI service
	var suggester services.TaskSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = services.NewAIService(cfg.OpenAIAPIKey)
	}

	return Services{
		Sprints: services.NewSprintService(sprintRepo, validator),
		Tasks:   services.NewTaskService(taskRepo, sprintRepo, userRepo, validator, suggester),
		Users:   services.NewUserService(userRepo),
		Auth:    services.NewAuthService(userRepo, tokenRepo),
	}, nil
}

// ListingFromConfig reads the response settings from the configuration
func ListingFromConfig(cfg *config.Config) handlers.Listing {
	return handlers.Listing{
		BaseURL:     cfg.BaseURL,
		PageSize:    cfg.PageSize,
		MaxPageSize: cfg.MaxPageSize,
	}
}
