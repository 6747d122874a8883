package main

import (
	"github.com/spf13/cobra"
	"github.com/yukikurage/scrum-board-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		if err := database.Migrate(); err != nil {
			return err
		}
		ui.Success("Database schema is up to date (%s)", cfg.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
