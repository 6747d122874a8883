package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/scrum-board-api/internal/config"
	"github.com/yukikurage/scrum-board-api/internal/database"
	"github.com/yukikurage/scrum-board-api/internal/logging"
	"github.com/yukikurage/scrum-board-api/internal/output"
	"github.com/yukikurage/scrum-board-api/internal/repository"
	"github.com/yukikurage/scrum-board-api/internal/services"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	cfg *config.Config
	ui  *output.UI
)

var rootCmd = &cobra.Command{
	Use:   "scrumctl",
	Short: "Administer the scrum board: schema, users and API tokens",
	Long: `scrumctl manages the accounts of the scrum board API.
Users are read-only over HTTP; create, list and deactivate them here,
and issue the API tokens clients send as "Authorization: Token <key>".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initDeps)
}

func initDeps() {
	cfg = config.Load()
	// SQL statement logging is for the server only
	cfg.GinMode = "release"
	ui = output.New()
	// keep stdout for command output
	logging.Logger.SetOutput(os.Stderr)
	logging.Logger.SetLevel(logrus.WarnLevel)
}

// connect opens the configured database.
func connect() error {
	if database.GetDB() != nil {
		return nil
	}
	if err := database.Connect(cfg); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	return nil
}

func authService() (*services.AuthService, error) {
	if err := connect(); err != nil {
		return nil, err
	}
	db := database.GetDB()
	return services.NewAuthService(repository.NewUserRepository(db), repository.NewTokenRepository(db)), nil
}
