package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/scrum-board-api/internal/output"
)

var tokenRotate bool

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens",
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Print the API token of a user, creating it if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := authService()
		if err != nil {
			return err
		}

		token, err := auth.CreateToken(args[0], tokenRotate)
		if err != nil {
			return err
		}

		ui.Success("Token for %s:", output.Cyan(args[0]))
		fmt.Fprintln(cmd.OutOrStdout(), token.Key)
		return nil
	},
}

func init() {
	tokenCreateCmd.Flags().BoolVar(&tokenRotate, "rotate", false, "Replace an existing token with a new key")
	tokenCmd.AddCommand(tokenCreateCmd)
	rootCmd.AddCommand(tokenCmd)
}
